// Package context carries the request id and the request-scoped logger from
// the HTTP edge and Pub/Sub pushes down to the reconciler, the repositories
// and the account events they publish.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type ctxKey string

const (
	keyRequestID ctxKey = "request_id"
	keyLogger    ctxKey = "logger"

	// echoRequestIDKey is where the id is kept on echo.Context for response envelopes.
	echoRequestIDKey = "request_id"

	// HeaderXRequestID is echoed back on every response and read from clients.
	HeaderXRequestID = echo.HeaderXRequestID
)

// RequestID returns the id stored on c, or "" before the request id middleware ran.
func RequestID(c echo.Context) string {
	id, _ := c.Get(echoRequestIDKey).(string)

	return id
}

// SetRequestID stores requestID on c.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

// WithRequest attaches requestID and a logger tagged with it to ctx.
func WithRequest(ctx context.Context, requestID string, base *slog.Logger) (context.Context, *slog.Logger) {
	logger := base.With(slog.String("request_id", requestID))
	ctx = WithRequestID(ctx, requestID)

	return WithLogger(ctx, logger), logger
}

// RequestIDFromContext returns the id attached to ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

// WithRequestID returns ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// LoggerFrom returns the request logger on ctx, falling back to fallback.
func LoggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
