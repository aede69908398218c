package handler

import (
	"io"
	"net/http"

	"agora/internal/delivery/http/response"
	"agora/internal/errors"
	"agora/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	uc usecase.SessionUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.SessionUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// UpdateProfile applies a partial update. The body is validated field by field
// before anything reaches the store.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Failed to read request body")
	}

	update, err := usecase.ParseProfileUpdate(body)
	if err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), update)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProfileView(profile), "Profile updated successfully")
}

// RefreshProfile re-fetches the cached profile from the store.
func (h *ProfileHandler) RefreshProfile(c echo.Context) error {
	if err := h.uc.RefreshProfile(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProfileView(h.uc.Snapshot().Profile), "")
}
