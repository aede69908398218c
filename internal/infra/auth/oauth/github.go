package oauth

import (
	"context"
	"strconv"

	"agora/config"
	"agora/internal/domain/entity"
	"agora/internal/domain/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const githubAPIURL = "https://api.github.com"

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// GitHubProvider signs in with GitHub OAuth apps.
type GitHubProvider struct {
	cfg    *oauth2.Config
	apiURL string
}

// NewGitHubProvider builds the provider.
func NewGitHubProvider(client config.OAuthClientConfig) *GitHubProvider {
	return &GitHubProvider{
		cfg: &oauth2.Config{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
			RedirectURL:  client.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoints.GitHub,
		},
		apiURL: githubAPIURL,
	}
}

// Provider returns entity.ProviderTypeGitHub.
func (g *GitHubProvider) Provider() entity.ProviderType {
	return entity.ProviderTypeGitHub
}

// AuthCodeURL returns the GitHub authorize URL.
func (g *GitHubProvider) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// Exchange trades the code and reads the user from the REST API. A private
// profile email is resolved from the primary verified address.
func (g *GitHubProvider) Exchange(ctx context.Context, code string) (*service.OAuthUser, error) {
	token, err := exchangeCode(ctx, g.cfg, code)
	if err != nil {
		return nil, err
	}

	client := g.cfg.Client(ctx, token)

	var user githubUser
	if err := fetchJSON(ctx, client, g.apiURL+"/user", &user); err != nil {
		return nil, err
	}

	oauthUser := &service.OAuthUser{
		ID:        strconv.FormatInt(user.ID, 10),
		Email:     user.Email,
		Name:      user.Name,
		Provider:  entity.ProviderTypeGitHub,
		AvatarURL: user.AvatarURL,
	}
	if oauthUser.Name == "" {
		oauthUser.Name = user.Login
	}

	var emails []githubEmail
	if err := fetchJSON(ctx, client, g.apiURL+"/user/emails", &emails); err != nil {
		return nil, err
	}
	for _, email := range emails {
		if email.Primary && email.Verified {
			oauthUser.Email = email.Email
			oauthUser.EmailVerified = true

			break
		}
	}

	return oauthUser, nil
}
