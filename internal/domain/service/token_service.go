package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	IdentityID uuid.UUID `json:"-"`
	Email      string    `json:"email,omitempty"`
	Type       string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for an identity.
	GenerateTokens(identityID uuid.UUID, email string) (*TokenPair, error)

	// ValidateToken checks the validity of a token string of the given type.
	ValidateToken(tokenString, tokenType string) (*Claims, error)
}
