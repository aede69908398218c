package oauth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"agora/config"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// newProviderServer serves a token endpoint plus the given API routes.
func newProviderServer(t *testing.T, tokenStatus int, routes map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if tokenStatus != http.StatusOK {
			writeJSON(w, tokenStatus, map[string]string{"error": "bad_verification_code"})

			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "provider-access-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})
	for path, body := range routes {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer provider-access-token" {
				w.WriteHeader(http.StatusUnauthorized)

				return
			}
			writeJSON(w, http.StatusOK, body)
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func testEndpoint(server *httptest.Server) oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   server.URL + "/authorize",
		TokenURL:  server.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func TestGitHubProvider_Exchange(t *testing.T) {
	server := newProviderServer(t, http.StatusOK, map[string]any{
		"/user": map[string]any{"id": 42, "login": "octocat", "avatar_url": "https://avatars.example/42"},
		"/user/emails": []map[string]any{
			{"email": "secondary@example.com", "primary": false, "verified": true},
			{"email": "octo@example.com", "primary": true, "verified": true},
		},
	})

	provider := NewGitHubProvider(config.OAuthClientConfig{ClientID: "id", ClientSecret: "secret"})
	provider.cfg.Endpoint = testEndpoint(server)
	provider.apiURL = server.URL

	user, err := provider.Exchange(context.Background(), "code")
	require.NoError(t, err)

	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "octocat", user.Name)
	assert.Equal(t, "octo@example.com", user.Email)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, entity.ProviderTypeGitHub, user.Provider)
	assert.Equal(t, "https://avatars.example/42", user.AvatarURL)
}

func TestGitHubProvider_RejectedCode(t *testing.T) {
	server := newProviderServer(t, http.StatusBadRequest, nil)

	provider := NewGitHubProvider(config.OAuthClientConfig{ClientID: "id", ClientSecret: "secret"})
	provider.cfg.Endpoint = testEndpoint(server)
	provider.apiURL = server.URL

	_, err := provider.Exchange(context.Background(), "stale-code")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthCodeInvalid)
}

func TestFacebookProvider_Exchange(t *testing.T) {
	server := newProviderServer(t, http.StatusOK, map[string]any{
		"/me": map[string]any{
			"id":      "fb-7",
			"name":    "Mark Example",
			"email":   "mark@example.com",
			"picture": map[string]any{"data": map[string]any{"url": "https://fb.example/7.jpg"}},
		},
	})

	provider := NewFacebookProvider(config.OAuthClientConfig{ClientID: "id", ClientSecret: "secret"})
	provider.cfg.Endpoint = testEndpoint(server)
	provider.graphURL = server.URL

	user, err := provider.Exchange(context.Background(), "code")
	require.NoError(t, err)

	assert.Equal(t, "fb-7", user.ID)
	assert.Equal(t, "Mark Example", user.Name)
	assert.Equal(t, "https://fb.example/7.jpg", user.AvatarURL)
	assert.True(t, user.EmailVerified)
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	provider := NewGoogleProvider(config.OAuthClientConfig{
		ClientID:     "google-client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/auth/callback/google",
	})

	raw := provider.AuthCodeURL("state-123")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "state-123", query.Get("state"))
	assert.Equal(t, "google-client", query.Get("client_id"))
	assert.Equal(t, "openid profile email", query.Get("scope"))
	assert.Equal(t, "http://localhost:8080/auth/callback/google", query.Get("redirect_uri"))
}

func TestGoogleProvider_MissingIDToken(t *testing.T) {
	server := newProviderServer(t, http.StatusOK, nil)

	provider := NewGoogleProvider(config.OAuthClientConfig{ClientID: "id", ClientSecret: "secret"})
	provider.cfg.Endpoint = testEndpoint(server)

	_, err := provider.Exchange(context.Background(), "code")
	assert.ErrorIs(t, err, domainerrors.ErrOAuthFailed)
}

func TestNewRegistry(t *testing.T) {
	cfg := &config.Config{OAuth: &config.OAuthConfig{
		Google: config.OAuthClientConfig{ClientID: "g", ClientSecret: "s"},
		GitHub: config.OAuthClientConfig{ClientID: "gh"},
	}}

	registry := NewRegistry(RegistryParams{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	google, ok := registry.Get(entity.ProviderTypeGoogle)
	require.True(t, ok)
	assert.Equal(t, entity.ProviderTypeGoogle, google.Provider())

	_, ok = registry.Get(entity.ProviderTypeGitHub)
	assert.False(t, ok, "client without secret stays disabled")

	_, ok = registry.Get(entity.ProviderTypeFacebook)
	assert.False(t, ok)
}
