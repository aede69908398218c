// Package oauth implements the authorization-code flow for the supported social providers.
package oauth

import (
	"log/slog"

	"agora/config"
	"agora/internal/domain/entity"
	"agora/internal/domain/service"

	"go.uber.org/fx"
)

// RegistryParams holds dependencies for NewRegistry.
type RegistryParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Registry holds the providers that have client credentials configured.
type Registry struct {
	providers map[entity.ProviderType]service.OAuthProvider
}

// NewRegistry builds a provider for every configured OAuth client.
func NewRegistry(params RegistryParams) service.OAuthRegistry {
	registry := &Registry{providers: make(map[entity.ProviderType]service.OAuthProvider)}
	if params.Config.OAuth == nil {
		return registry
	}

	clients := params.Config.OAuth
	if clients.Google.Enabled() {
		registry.Register(NewGoogleProvider(clients.Google))
	}
	if clients.GitHub.Enabled() {
		registry.Register(NewGitHubProvider(clients.GitHub))
	}
	if clients.Facebook.Enabled() {
		registry.Register(NewFacebookProvider(clients.Facebook))
	}

	enabled := make([]string, 0, len(registry.providers))
	for provider := range registry.providers {
		enabled = append(enabled, provider.String())
	}
	params.Logger.Info("OAuth providers configured", slog.Any("providers", enabled))

	return registry
}

// Register adds or replaces a provider.
func (r *Registry) Register(provider service.OAuthProvider) {
	r.providers[provider.Provider()] = provider
}

// Get looks up a configured provider.
func (r *Registry) Get(provider entity.ProviderType) (service.OAuthProvider, bool) {
	p, ok := r.providers[provider]

	return p, ok
}
