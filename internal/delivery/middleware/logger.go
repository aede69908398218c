package middleware

import (
	"log/slog"

	"agora/config"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
)

// Paths polled by probes and scrapers; only logged in debug mode.
var quietPaths = []string{"/health", "/metrics"}

// NewLoggerMiddleware returns the access log middleware. It must run after the
// request id middleware so the X-Request-Id response header is set.
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) echo.MiddlewareFunc {
	logCfg := slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		WithUserAgent:    cfg.Env.Debug,
	}
	if !cfg.Env.Debug {
		logCfg.Filters = []slogecho.Filter{slogecho.IgnorePath(quietPaths...)}
	}

	return slogecho.NewWithConfig(logger, logCfg)
}
