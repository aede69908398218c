package repository

import (
	"context"
	"errors"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for refresh token persistence.
var (
	// ErrRefreshTokenNotFound is returned when a refresh token is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenExpired is returned when a refresh token has expired.
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// RefreshTokenRepository stores the hashed refresh tokens backing sessions.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token record by its securely stored hash.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash deletes a refresh token by its hash, effectively ending a session.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error

	// DeleteRefreshTokensByIdentityID removes all refresh tokens of an identity.
	// Used after a password reset so older sessions cannot be refreshed.
	DeleteRefreshTokensByIdentityID(ctx context.Context, identityID uuid.UUID) error

	// DeleteExpiredRefreshTokens removes all expired refresh tokens from the database.
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}
