package handler

import (
	"net/http"

	"agora/internal/delivery/http/response"
	"agora/internal/errors"
	"agora/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler holds dependencies for the sign-in family of handlers.
type AuthHandler struct {
	uc usecase.SessionUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.SessionUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// SignUp creates an email account and signs it in.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var input usecase.SignUpInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-up input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SignUp(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newStateView(h.uc.Snapshot()), "Signed up successfully")
}

// SignIn handles the email/password sign-in request.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var input usecase.SignInInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SignIn(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newStateView(h.uc.Snapshot()), "Signed in successfully")
}

// OAuthURL returns the provider consent URL, or redirects to it when ?redirect=true.
func (h *AuthHandler) OAuthURL(c echo.Context) error {
	url, err := h.uc.SignInWithOAuth(c.Request().Context(), c.Param("provider"))
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("redirect") == "true" {
		return c.Redirect(http.StatusTemporaryRedirect, url)
	}

	return response.Success(c, http.StatusOK, map[string]string{"url": url}, "")
}

// OAuthCallback completes the OAuth flow with the code and state from the provider redirect.
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	var input usecase.OAuthCallbackInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid OAuth callback")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.CompleteOAuth(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newStateView(h.uc.Snapshot()), "Signed in successfully")
}

// SignOut ends the current session. Signing out while signed out succeeds.
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.uc.SignOut(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newStateView(h.uc.Snapshot()), "Signed out successfully")
}

// ResetPassword requests a reset link. The response does not reveal whether the email exists.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var input usecase.ResetPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset request")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ResetPassword(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, nil, "If the account exists, a reset link has been sent")
}

// ConfirmPasswordReset sets the new password and opens a recovery session.
func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var input usecase.ConfirmPasswordResetInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset confirmation")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ConfirmPasswordReset(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newStateView(h.uc.Snapshot()), "Password updated")
}
