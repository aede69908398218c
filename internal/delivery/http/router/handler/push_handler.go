package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"agora/config"
	deliverycontext "agora/internal/delivery/context"
	"agora/internal/domain/constants"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/errors"
	"agora/internal/infra/pubsub"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// TokenValidator checks a push request OIDC token against an audience.
type TokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler receives Pub/Sub pushes announcing profile changes made
// outside this process.
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	validate       TokenValidator
	logger         *slog.Logger
	session        usecase.SessionUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Session usecase.SessionUsecase
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only Google signs its pushes; the local publisher is trusted.
	pubsubCfg := params.Config.PubSub
	verifyPushAuth := pubsubCfg != nil &&
		pubsubCfg.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	audience := ""
	if pubsubCfg != nil {
		audience = pubsubCfg.PushAudience
	}

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		audience:       audience,
		validate:       idtoken.Validate,
		logger:         params.Logger,
		session:        params.Session,
	}
}

// HandleProfileChanged refreshes the cached profile when the pushed event
// concerns the current identity. Transport failures answer 503 so Pub/Sub
// redelivers; every other outcome acks with 200.
func (h *PushHandler) HandleProfileChanged(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event entity.AccountEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("Failed to parse account event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := extractRequestID(ctx, &pushMsg, &event)
	ctx, reqLogger := deliverycontext.WithRequest(ctx, requestID, h.logger)

	if !event.Type.TouchesProfile() || event.IdentityID == uuid.Nil {
		reqLogger.Debug("Ignoring account event",
			slog.String("event_type", string(event.Type)),
			slog.String("message_id", pushMsg.Message.MessageID),
		)

		return c.NoContent(http.StatusOK)
	}

	if err := h.session.HandleProfileChanged(ctx, event.IdentityID); err != nil {
		retryable := domainerrors.IsTransport(err)
		reqLogger.Error("Failed to apply profile change",
			slog.String("profile_id", event.IdentityID.String()),
			slog.Bool("retryable", retryable),
			slog.Any("error", err),
		)
		if retryable {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers message attributes, then the event payload, then
// the request header, and finally generates one.
func extractRequestID(ctx context.Context, pushMsg *pubsub.PushMessage, event *entity.AccountEvent) string {
	if requestID := pushMsg.Message.Attributes[pubsub.AttributeRequestID]; requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.RequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
