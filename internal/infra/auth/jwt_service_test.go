package auth

import (
	"testing"
	"time"

	"agora/config"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	tokens, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	identityID := uuid.New()
	pair, err := tokens.GenerateTokens(identityID, "ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), pair.AccessExpiresAt, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), pair.RefreshExpiresAt, 5*time.Second)

	accessClaims, err := tokens.ValidateToken(pair.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, identityID, accessClaims.IdentityID)
	assert.Equal(t, "ada@example.com", accessClaims.Email)
	assert.Equal(t, service.TokenTypeAccess, accessClaims.Type)

	refreshClaims, err := tokens.ValidateToken(pair.RefreshToken, service.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, identityID, refreshClaims.IdentityID)
	assert.Empty(t, refreshClaims.Email)
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	tokens, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	identityID := uuid.New()
	first, err := tokens.GenerateTokens(identityID, "")
	require.NoError(t, err)
	second, err := tokens.GenerateTokens(identityID, "")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestJWTService_WrongType(t *testing.T) {
	tokens, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	pair, err := tokens.GenerateTokens(uuid.New(), "")
	require.NoError(t, err)

	_, err = tokens.ValidateToken(pair.RefreshToken, service.TokenTypeAccess)
	assert.Error(t, err, "refresh token must not validate with the access secret")
}

func TestJWTService_InvalidToken(t *testing.T) {
	tokens, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	claims, err := tokens.ValidateToken("clearly-not-a-jwt-token-format", service.TokenTypeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_ExpiredToken(t *testing.T) {
	tokens, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	impl := tokens.(*jwtService)
	impl.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := impl.GenerateTokens(uuid.New(), "")
	require.NoError(t, err)

	impl.now = time.Now
	_, err = impl.ValidateToken(pair.AccessToken, service.TokenTypeAccess)
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
}

func TestNewJWTService_MissingSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}
