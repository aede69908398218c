// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Metadata keys the identity provider stores at sign-up or OAuth callback.
const (
	MetadataUsername  = "username"
	MetadataFullName  = "full_name"
	MetadataName      = "name"
	MetadataAvatarURL = "avatar_url"
	MetadataProvider  = "provider"
)

// Identity is the provider-issued, stable identifier for an authenticated person.
type Identity struct {
	ID           uuid.UUID      // Stable unique id; Profile.ID always equals this value.
	Email        string         // Primary email, may be empty for some OAuth providers.
	Provider     ProviderType   // Provider used for the most recent sign-in.
	Metadata     map[string]any // Arbitrary key/value bag supplied at sign-up or OAuth callback.
	CreatedAt    time.Time
	LastSignInAt time.Time
}

// MetadataString returns the metadata value under key when it is a non-blank string.
func (i *Identity) MetadataString(key string) (string, bool) {
	if i == nil || i.Metadata == nil {
		return "", false
	}

	raw, ok := i.Metadata[key]
	if !ok {
		return "", false
	}

	value, ok := raw.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}

	return value, true
}

// EmailLocalPart returns the part of the email before '@'.
func (i *Identity) EmailLocalPart() string {
	if i == nil {
		return ""
	}

	local, _, _ := strings.Cut(i.Email, "@")

	return local
}

// Clone returns a deep copy so cached snapshots never share the metadata map.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}

	clone := *i
	if i.Metadata != nil {
		clone.Metadata = make(map[string]any, len(i.Metadata))
		for k, v := range i.Metadata {
			clone.Metadata[k] = v
		}
	}

	return &clone
}
