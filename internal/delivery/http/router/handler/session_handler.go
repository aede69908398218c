package handler

import (
	"net/http"

	"agora/internal/delivery/http/response"
	"agora/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// SessionHandler exposes the reconciled session snapshot.
type SessionHandler struct {
	session usecase.SessionView
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(session usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{session: session}
}

// GetSession returns {session, identity, profile, loading, state}.
func (h *SessionHandler) GetSession(c echo.Context) error {
	return response.Success(c, http.StatusOK, newStateView(h.session.Snapshot()), "")
}
