package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	domainerrors "agora/internal/domain/errors"
	"agora/internal/errors"

	"golang.org/x/oauth2"
)

const maxUserInfoBytes = 1 << 20

// exchangeCode trades the code for a token. A 400 or 401 from the token
// endpoint means the code itself was rejected.
func exchangeCode(ctx context.Context, cfg *oauth2.Config, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	token, err := cfg.Exchange(ctx, code, opts...)
	if err == nil {
		return token, nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		switch retrieveErr.Response.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return nil, domainerrors.ErrOAuthCodeInvalid
		}
	}

	return nil, domainerrors.NewTransportError(err, "failed to exchange authorization code")
}

// fetchJSON GETs url with the token's client and decodes the body into out.
func fetchJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return domainerrors.NewTransportError(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return domainerrors.ErrOAuthFailed.WithDetails(
			fmt.Sprintf("user info request failed with status %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserInfoBytes)).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode user info response")
	}

	return nil
}
