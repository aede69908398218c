package service

import (
	"context"

	"agora/internal/domain/entity"
)

// AuthListener receives session lifecycle events. Listeners are invoked one at a
// time in emission order and must not block for long.
type AuthListener func(event entity.AuthEvent)

// IdentityProvider issues sessions, authenticates credentials and OAuth
// callbacks, and notifies subscribers of every session change.
type IdentityProvider interface {
	// CurrentSession returns the live session, or nil when signed out.
	CurrentSession(ctx context.Context) (*entity.Session, error)

	// Subscribe registers listener and returns the function that unregisters it.
	Subscribe(listener AuthListener) (unsubscribe func())

	// SignUp creates an identity with an email credential and opens a session.
	SignUp(ctx context.Context, email, password string, metadata map[string]any) error

	// SignIn opens a session for an email credential.
	SignIn(ctx context.Context, email, password string) error

	// SignInWithOAuth returns the provider consent URL. Completion arrives through
	// the subscription once CompleteOAuth runs for the redirect.
	SignInWithOAuth(ctx context.Context, provider entity.ProviderType) (string, error)

	// CompleteOAuth finishes the redirect flow started by SignInWithOAuth.
	CompleteOAuth(ctx context.Context, provider entity.ProviderType, code, state string) error

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// RequestPasswordReset sends a reset link when the email is registered.
	RequestPasswordReset(ctx context.Context, email string) error

	// CompletePasswordReset sets a new password for the reset token and opens a session.
	CompletePasswordReset(ctx context.Context, token, newPassword string) error
}
