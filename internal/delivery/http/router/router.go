// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"agora/internal/delivery/http/middleware"
	"agora/internal/delivery/http/router/handler"
	"agora/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler    *handler.SessionHandler
	AuthHandler       *handler.AuthHandler
	ProfileHandler    *handler.ProfileHandler
	PushHandler       *handler.PushHandler
	SessionMiddleware *middleware.SessionMiddleware
	RateLimiter       *middleware.RateLimiter
	Registry          *prometheus.Registry
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler    *handler.SessionHandler
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	pushHandler       *handler.PushHandler
	sessionMiddleware *middleware.SessionMiddleware
	rateLimiter       *middleware.RateLimiter
	registry          *prometheus.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler:    params.SessionHandler,
		authHandler:       params.AuthHandler,
		profileHandler:    params.ProfileHandler,
		pushHandler:       params.PushHandler,
		sessionMiddleware: params.SessionMiddleware,
		rateLimiter:       params.RateLimiter,
		registry:          params.Registry,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(r.registry)))

	// Routes that observe the session wait for bootstrap first.
	wait := r.sessionMiddleware.WaitReady

	e.GET("/session", r.sessionHandler.GetSession, wait)

	authGroup := e.Group("/auth", r.rateLimiter.Limit, wait)
	{
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/signin", r.authHandler.SignIn)
		authGroup.GET("/oauth/:provider", r.authHandler.OAuthURL)
		authGroup.GET("/callback/:provider", r.authHandler.OAuthCallback)
		authGroup.POST("/signout", r.authHandler.SignOut)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
		authGroup.POST("/reset-password/confirm", r.authHandler.ConfirmPasswordReset)
	}

	profileGroup := e.Group("/profile", wait)
	{
		profileGroup.PATCH("", r.profileHandler.UpdateProfile, r.sessionMiddleware.RequireSession)
		profileGroup.POST("/refresh", r.profileHandler.RefreshProfile)
	}

	e.POST("/push/profile-changed", r.pushHandler.HandleProfileChanged, wait)
}
