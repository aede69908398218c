package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"oauth": map[string]any{
			"google": map[string]any{"clientId": ""},
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "OAUTH_GOOGLE_CLIENTID", want: "oauth.google.clientId"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsOptionalSections(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.HTTP.MaxRequestBodySize != defaultMaxRequestBodySize {
		t.Fatalf("MaxRequestBodySize = %q", cfg.HTTP.MaxRequestBodySize)
	}
	if cfg.PasswordStrength.MinLength != 6 {
		t.Fatalf("PasswordStrength.MinLength = %d, want 6", cfg.PasswordStrength.MinLength)
	}
	if cfg.Auth.OAuthStateTTL != defaultOAuthStateTTL {
		t.Fatalf("Auth.OAuthStateTTL = %s", cfg.Auth.OAuthStateTTL)
	}
	if cfg.Redis == nil || cfg.PubSub == nil || cfg.OAuth == nil || cfg.Migrations == nil {
		t.Fatal("optional sections must not be nil")
	}
	if cfg.RateLimit.AuthPerMinute != defaultAuthPerMinute || cfg.RateLimit.Burst != defaultAuthBurst {
		t.Fatalf("RateLimit = %+v", cfg.RateLimit)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Auth:             &AuthConfig{AccessTokenTTL: defaultResetTokenTTL * 2},
		PasswordStrength: &PasswordStrengthConfig{MinLength: 12},
	}
	applyDefaults(cfg)

	if cfg.Auth.AccessTokenTTL != defaultResetTokenTTL*2 {
		t.Fatalf("AccessTokenTTL overwritten: %s", cfg.Auth.AccessTokenTTL)
	}
	if cfg.PasswordStrength.MinLength != 12 {
		t.Fatalf("MinLength overwritten: %d", cfg.PasswordStrength.MinLength)
	}
}
