// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for profile persistence.
var (
	// ErrProfileNotFound is returned when no profile row exists for the id.
	// Apart from ErrUsernameTaken and ErrProfileInvalid, any other failure from a
	// ProfileRepository is a transport failure.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrUsernameTaken is returned when the username unique constraint is violated.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrProfileInvalid is returned when the store rejects a field value, such as
	// a value longer than its column or one failing a check constraint.
	ErrProfileInvalid = errors.New("profile value rejected by store")
)

// ProfileRepository is the profile store over the "users" record type.
type ProfileRepository interface {
	// FindByID retrieves the profile keyed by the identity id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// Upsert inserts the profile or, when a row with the same id exists, keeps the
	// stored row and only refreshes its updated timestamp. Returns the stored record.
	Upsert(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)

	// UpdateByID applies the non-nil fields of update plus updatedAt and returns the stored record.
	UpdateByID(ctx context.Context, id uuid.UUID, update *entity.ProfileUpdate, updatedAt time.Time) (*entity.Profile, error)
}
