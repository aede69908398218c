package middleware

import (
	domainerrors "agora/internal/domain/errors"
	"agora/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware gates routes on the reconciled session.
type SessionMiddleware struct {
	session usecase.SessionView
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(session usecase.SessionUsecase) *SessionMiddleware {
	return &SessionMiddleware{session: session}
}

// WaitReady holds the request until bootstrap has finished so handlers never
// observe the loading state.
func (m *SessionMiddleware) WaitReady(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := m.session.WaitReady(c.Request().Context()); err != nil {
			return domainerrors.NewTransportError(err, "session bootstrap did not finish")
		}

		return next(c)
	}
}

// RequireSession rejects the request when no identity is signed in.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.session.Snapshot().Identity == nil {
			return domainerrors.ErrNoAuthenticatedUser
		}

		return next(c)
	}
}
