package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType names a way of signing in.
type ProviderType string

const (
	// ProviderTypeEmail is email/password sign-in.
	ProviderTypeEmail ProviderType = "email"
	// ProviderTypeGoogle is Google OAuth/OIDC.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeGitHub is GitHub OAuth.
	ProviderTypeGitHub ProviderType = "github"
	// ProviderTypeFacebook is Facebook OAuth.
	ProviderTypeFacebook ProviderType = "facebook"
)

// String returns the string representation of the ProviderType.
func (p ProviderType) String() string {
	return string(p)
}

// IsOAuth reports whether the provider is redirect based.
func (p ProviderType) IsOAuth() bool {
	switch p {
	case ProviderTypeGoogle, ProviderTypeGitHub, ProviderTypeFacebook:
		return true
	default:
		return false
	}
}

// Authentication represents a single method of logging in (a credential).
// For example, an identity's email/password is one record, while a linked Google account is another.
type Authentication struct {
	ID             uuid.UUID    // The unique ID for this specific authentication record itself.
	IdentityID     uuid.UUID    // Links this authentication method to the Identity it belongs to.
	Provider       ProviderType // The authentication provider, e.g., "email", "google".
	ProviderUserID string       // The user's unique ID from the external provider (e.g., Google's 'sub' claim).
	PasswordHash   string       // Stores the bcrypt-hashed password, only used when the Provider is "email".
	CreatedAt      time.Time    // Timestamp of when this authentication method was linked to the identity.
}

// RefreshToken represents a long-lived, authorized session.
// It is used to obtain a new Access Token after the old one expires, without requiring credentials.
type RefreshToken struct {
	ID         uuid.UUID // The unique ID for this specific refresh token record.
	IdentityID uuid.UUID // Links this session to the Identity it belongs to.
	TokenHash  string    // Stores a SHA-256 hash of the raw refresh token for secure comparison in the database.
	ExpiresAt  time.Time // The exact time when this refresh token will expire and become invalid.
	CreatedAt  time.Time // Timestamp of when this session was created (i.e., when the user logged in).
}

// AccountEventType names an account lifecycle event published to the event bus.
type AccountEventType string

const (
	// AccountEventProfileCreated is published after the first-login profile upsert.
	AccountEventProfileCreated AccountEventType = "profile_created"
	// AccountEventPasswordResetRequested carries the reset link for the mailer.
	AccountEventPasswordResetRequested AccountEventType = "password_reset_requested"
	// AccountEventIdentityCreated is published after sign-up or first OAuth sign-in.
	AccountEventIdentityCreated AccountEventType = "identity_created"
	// AccountEventProfileChanged is published by other writers of the users table
	// (moderation, point awards) so running daemons re-fetch the profile.
	AccountEventProfileChanged AccountEventType = "profile_changed"
)

// TouchesProfile reports whether consumers holding a cached profile should re-fetch it.
func (t AccountEventType) TouchesProfile() bool {
	return t == AccountEventProfileCreated || t == AccountEventProfileChanged
}

// AccountEvent is the payload published for downstream consumers (mailer, analytics).
type AccountEvent struct {
	Type       AccountEventType  `json:"type"`
	IdentityID uuid.UUID         `json:"identityId"`
	Email      string            `json:"email,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	RequestID  string            `json:"requestId,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}
