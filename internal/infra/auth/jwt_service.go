// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"agora/config"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/service"
	"agora/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	fallbackAccessTTL  = time.Hour
	fallbackRefreshTTL = 7 * 24 * time.Hour
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	accessTTL, refreshTTL := fallbackAccessTTL, fallbackRefreshTTL
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// GenerateTokens creates a new access token and refresh token for an identity.
func (s *jwtService) GenerateTokens(identityID uuid.UUID, email string) (*service.TokenPair, error) {
	issuedAt := s.now()

	accessExpiresAt := issuedAt.Add(s.accessTTL)
	accessToken, err := s.generateToken(identityID, email, service.TokenTypeAccess, issuedAt, accessExpiresAt, s.accessSecret)
	if err != nil {
		return nil, err
	}

	refreshExpiresAt := issuedAt.Add(s.refreshTTL)
	refreshToken, err := s.generateToken(identityID, "", service.TokenTypeRefresh, issuedAt, refreshExpiresAt, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &service.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// ValidateToken parses tokenString, checks its signature and expiry and that
// it carries the expected type.
func (s *jwtService) ValidateToken(tokenString, tokenType string) (*service.Claims, error) {
	secret := s.accessSecret
	if tokenType == service.TokenTypeRefresh {
		secret = s.refreshSecret
	}

	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrSessionExpired
		}

		return nil, errors.Wrap(err, "failed to parse token")
	}

	if claims.Type != tokenType {
		return nil, errors.Errorf("unexpected token type %q", claims.Type)
	}

	identityID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token subject")
	}
	claims.IdentityID = identityID

	return claims, nil
}

// generateToken is a private helper to create a JWT with specific claims.
// Every token gets a random id so two tokens issued in the same second differ.
func (s *jwtService) generateToken(
	identityID uuid.UUID,
	email, tokenType string,
	issuedAt, expiresAt time.Time,
	secret []byte,
) (string, error) {
	claims := &service.Claims{
		Email: email,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identityID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}
