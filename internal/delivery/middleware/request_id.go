// Package middleware holds the echo middleware shared by every route: request
// ids and the access log.
package middleware

import (
	"log/slog"

	deliverycontext "agora/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware tags each API call with an id so one sign-in or profile
// update can be followed from the access log through reconcile and publishing.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates the middleware around the process logger.
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process reuses a client supplied X-Request-Id or mints one, echoes it on the
// response and places it with a tagged logger on the request context.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		ctx, _ := deliverycontext.WithRequest(c.Request().Context(), requestID, m.logger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// maxRequestIDLength bounds client ids copied into logs and published events.
const maxRequestIDLength = 128
