package oauth

import (
	"context"

	"agora/config"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/service"
	"agora/internal/errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	googleIssuer  = "https://accounts.google.com"
	googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

	googleScopeEmail   = "email"
	googleScopeProfile = "profile"
)

type googleClaims struct {
	Sub      string `json:"sub"`
	Email    string `json:"email"`
	Verified bool   `json:"email_verified"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

// GoogleProvider signs in with Google OpenID Connect. The id token of the
// exchange is verified against Google's published keys.
type GoogleProvider struct {
	cfg      *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewGoogleProvider builds the provider. Keys are fetched lazily on first verification.
func NewGoogleProvider(client config.OAuthClientConfig) *GoogleProvider {
	keySet := oidc.NewRemoteKeySet(context.Background(), googleJWKSURL)

	return &GoogleProvider{
		cfg: &oauth2.Config{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
			RedirectURL:  client.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, googleScopeProfile, googleScopeEmail},
			Endpoint:     endpoints.Google,
		},
		verifier: oidc.NewVerifier(googleIssuer, keySet, &oidc.Config{ClientID: client.ClientID}),
	}
}

// Provider returns entity.ProviderTypeGoogle.
func (g *GoogleProvider) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// AuthCodeURL returns the Google consent page URL.
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the code and reads the user from the verified id token.
func (g *GoogleProvider) Exchange(ctx context.Context, code string) (*service.OAuthUser, error) {
	token, err := exchangeCode(ctx, g.cfg, code)
	if err != nil {
		return nil, err
	}

	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil, domainerrors.ErrOAuthFailed.WithDetails("token response carries no id_token")
	}

	idToken, err := g.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, domainerrors.ErrOAuthFailed.WithDetails(errors.Wrap(err, "verify id token").Error())
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrap(err, "failed to read id token claims")
	}

	return &service.OAuthUser{
		ID:            claims.Sub,
		Email:         claims.Email,
		Name:          claims.Name,
		Provider:      entity.ProviderTypeGoogle,
		AvatarURL:     claims.Picture,
		EmailVerified: claims.Verified,
	}, nil
}
