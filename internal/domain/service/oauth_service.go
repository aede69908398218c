package service

import (
	"context"

	"agora/internal/domain/entity"
)

// OAuthUser represents user information from OAuth providers
type OAuthUser struct {
	ID            string              // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email         string              // User's email address
	Name          string              // User's display name
	Provider      entity.ProviderType // The OAuth provider (google, github, facebook)
	AvatarURL     string              // URL to user's profile picture
	EmailVerified bool                // Whether the email is verified by the provider
}

// OAuthProvider runs the authorization-code flow against one provider.
type OAuthProvider interface {
	// Provider returns the OAuth provider type
	Provider() entity.ProviderType

	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for the provider's view of the user.
	Exchange(ctx context.Context, code string) (*OAuthUser, error)
}

// OAuthRegistry looks up configured providers by type.
type OAuthRegistry interface {
	Get(provider entity.ProviderType) (OAuthProvider, bool)
}
