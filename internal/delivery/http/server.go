// Package http serves the local account API consumed by the UI.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"agora/config"
	"agora/internal/delivery"
	httpmiddleware "agora/internal/delivery/http/middleware"
	"agora/internal/delivery/http/router"
	"agora/internal/delivery/http/router/handler"
	"agora/internal/delivery/http/validator"
	"agora/internal/delivery/middleware"
	"agora/internal/domain/lifecycle"
	"agora/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams
}

// NewEcho builds the echo instance with the middleware chain and routes.
func NewEcho(params ServerParams) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = params.Cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = params.Cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = params.Cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = params.Cfg.HTTP.Timeouts.IdleTimeout

	// 1. Recover middleware first (to catch panics early)
	echoServer.Use(echomiddleware.Recover())

	// 2. Request ID middleware (must be before logger to include in logs)
	requestIDMiddleware := middleware.NewRequestIDMiddleware(params.Logger)
	echoServer.Use(requestIDMiddleware.Process)

	// 3. Access log
	echoServer.Use(middleware.NewLoggerMiddleware(params.Logger, params.Cfg))

	// 4. CORS middleware
	corsCfg := echomiddleware.DefaultCORSConfig
	if len(params.Cfg.HTTP.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = params.Cfg.HTTP.AllowOrigins
		corsCfg.AllowCredentials = true
	}
	echoServer.Use(echomiddleware.CORSWithConfig(corsCfg))

	// 5. Request body size limit
	echoServer.Use(echomiddleware.BodyLimit(params.Cfg.HTTP.MaxRequestBodySize))

	errorMiddleware := httpmiddleware.NewErrorMiddleware(params.Logger)
	echoServer.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	echoServer.Validator = validator.New()

	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	return echoServer
}

// NewServer wraps the echo instance as the process delivery.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &httpServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: NewEcho(params),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

// Module provides the HTTP handlers and middleware. The server itself is
// provided by the command so it can join the deliveries group.
var Module = fx.Options(
	fx.Provide(
		handler.NewSessionHandler,
		handler.NewAuthHandler,
		handler.NewProfileHandler,
		handler.NewPushHandler,
		httpmiddleware.NewSessionMiddleware,
		httpmiddleware.NewRateLimiter,
	),
)
