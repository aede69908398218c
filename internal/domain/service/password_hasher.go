// Package service declares the collaborators the account daemon talks to:
// the identity provider, credential primitives, session storage, OAuth
// providers, the event bus and metrics.
package service

// PasswordHasher turns email credentials into stored digests and checks
// sign-in and reset passwords against them.
type PasswordHasher interface {
	// Hash returns a salted digest. It fails for passwords the algorithm cannot accept.
	Hash(password string) (string, error)

	// Check reports whether password matches a digest produced by Hash.
	// A malformed digest is a mismatch.
	Check(password, hash string) bool
}
