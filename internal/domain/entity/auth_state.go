package entity

// AuthStatus is the reconciler state machine position.
type AuthStatus string

const (
	// AuthStatusUninitialized is the state before Start.
	AuthStatusUninitialized AuthStatus = "uninitialized"
	// AuthStatusBootstrapping lasts until the first session query and its reconcile finished.
	AuthStatusBootstrapping AuthStatus = "bootstrapping"
	// AuthStatusAuthenticated means a session is cached.
	AuthStatusAuthenticated AuthStatus = "authenticated"
	// AuthStatusUnauthenticated means no session is cached.
	AuthStatusUnauthenticated AuthStatus = "unauthenticated"
)

// String returns the string representation of the AuthStatus.
func (s AuthStatus) String() string {
	return string(s)
}

// AuthState is the reconciled {session, identity, profile, loading} value.
// Instances are immutable once published; writers swap in a new value.
type AuthState struct {
	Status   AuthStatus
	Session  *Session
	Identity *Identity
	Profile  *Profile
	Loading  bool
}

// IdentityID returns the cached identity id as a string, or "" when signed out.
func (s *AuthState) IdentityID() string {
	if s == nil || s.Identity == nil {
		return ""
	}

	return s.Identity.ID.String()
}
