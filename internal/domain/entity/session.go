package entity

import "time"

// TokenTypeBearer is the only token type issued by the identity provider.
const TokenTypeBearer = "bearer"

// Session is a live, time-bounded authentication credential tied to an Identity.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
	Identity     *Identity
}

// IsExpired reports whether the access token has expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// ExpiresWithin reports whether the access token expires within d of now.
func (s *Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	return s == nil || !now.Add(d).Before(s.ExpiresAt)
}

// Clone returns a copy of the session with its own identity.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	clone := *s
	clone.Identity = s.Identity.Clone()

	return &clone
}

// AuthEventKind enumerates session lifecycle events emitted by the identity provider.
type AuthEventKind string

const (
	// AuthEventSignedIn is emitted after a password sign-in or a sign-up.
	AuthEventSignedIn AuthEventKind = "SIGNED_IN"
	// AuthEventSignedOut is emitted when the session ends, by request or on refresh failure.
	AuthEventSignedOut AuthEventKind = "SIGNED_OUT"
	// AuthEventTokenRefreshed is emitted when the access token is rotated.
	AuthEventTokenRefreshed AuthEventKind = "TOKEN_REFRESHED"
	// AuthEventOAuthCallback is emitted after an OAuth redirect completes.
	AuthEventOAuthCallback AuthEventKind = "OAUTH_CALLBACK"
	// AuthEventPasswordRecovery is emitted after a password reset opened a session.
	AuthEventPasswordRecovery AuthEventKind = "PASSWORD_RECOVERY"
)

// String returns the string representation of the AuthEventKind.
func (k AuthEventKind) String() string {
	return string(k)
}

// AuthEvent is a single notification delivered to subscribed listeners.
type AuthEvent struct {
	Kind       AuthEventKind
	Session    *Session // nil when the session ended
	OccurredAt time.Time
}
