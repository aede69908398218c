package repository

import (
	"context"
	"errors"
	"time"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for identity persistence.
var (
	// ErrIdentityNotFound is returned when an identity is not found.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrIdentityExists is returned when the email is already registered.
	ErrIdentityExists = errors.New("identity already exists")
	// ErrAuthNotFound is returned when an authentication method is not found.
	ErrAuthNotFound = errors.New("authentication method not found")
)

// IdentityRepository persists identities and the credentials linked to them.
type IdentityRepository interface {
	// CreateIdentity persists a new identity.
	CreateIdentity(ctx context.Context, identity *entity.Identity) error

	// FindIdentityByID retrieves an identity by id.
	FindIdentityByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// FindIdentityByEmail retrieves an identity by its (case-insensitive) email.
	FindIdentityByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// TouchLastSignIn records a successful sign-in.
	TouchLastSignIn(ctx context.Context, id uuid.UUID, provider entity.ProviderType, at time.Time) error

	// CreateAuthentication persists a new authentication method (e.g., email/password, social login).
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves an authentication method by its provider and provider-specific ID.
	FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error)

	// UpdatePasswordHash replaces the email credential hash of an identity.
	UpdatePasswordHash(ctx context.Context, identityID uuid.UUID, passwordHash string) error
}
