// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"agora/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionView is the read-only side of the session, handed to consumers that only observe it.
type SessionView interface {
	// Snapshot returns the current reconciled state. The value is never mutated
	// after publication; callers must treat it as read-only.
	Snapshot() *entity.AuthState

	// Ready is closed once bootstrap has completed.
	Ready() <-chan struct{}

	// WaitReady blocks until bootstrap has completed or ctx is done.
	WaitReady(ctx context.Context) error
}

// SessionUsecase keeps the {session, identity, profile} triple consistent with
// the identity provider and the profile store, and exposes the account operations.
type SessionUsecase interface {
	SessionView

	// Start begins bootstrap and subscribes to session events. It does not block.
	Start(ctx context.Context) error
	// Close unsubscribes and stops processing once queued work has drained.
	Close(ctx context.Context) error
	// Sync waits until every reconciliation queued so far has finished.
	Sync(ctx context.Context) error

	SignUp(ctx context.Context, input *SignUpInput) error
	SignIn(ctx context.Context, input *SignInInput) error
	SignInWithOAuth(ctx context.Context, provider string) (string, error)
	CompleteOAuth(ctx context.Context, input *OAuthCallbackInput) error
	SignOut(ctx context.Context) error
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
	ConfirmPasswordReset(ctx context.Context, input *ConfirmPasswordResetInput) error

	// UpdateProfile applies a validated partial update to the current identity's profile.
	UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) (*entity.Profile, error)
	// RefreshProfile re-fetches the current profile; it is a no-op when signed out.
	RefreshProfile(ctx context.Context) error
	// HandleProfileChanged refreshes the cache when profileID is the current identity.
	HandleProfileChanged(ctx context.Context, profileID uuid.UUID) error
}

// --- Input DTOs ---

// SignUpInput defines the data required to create an email account.
type SignUpInput struct {
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Username        string `json:"username" validate:"omitempty,min=3,max=30"`
	FullName        string `json:"fullName" validate:"omitempty,max=100"`
}

// Metadata returns the provider metadata recorded with the identity.
func (in *SignUpInput) Metadata() map[string]any {
	metadata := map[string]any{}
	if in.Username != "" {
		metadata[entity.MetadataUsername] = in.Username
	}
	if in.FullName != "" {
		metadata[entity.MetadataFullName] = in.FullName
	}

	return metadata
}

// SignInInput defines email/password credentials.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OAuthCallbackInput carries the provider redirect parameters.
type OAuthCallbackInput struct {
	Provider string `param:"provider" validate:"required"`
	Code     string `query:"code" validate:"required"`
	State    string `query:"state" validate:"required"`
}

// ResetPasswordInput requests a reset link.
type ResetPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmPasswordResetInput sets a new password with a reset token.
type ConfirmPasswordResetInput struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}
