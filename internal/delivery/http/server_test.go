package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"agora/config"
	httpmiddleware "agora/internal/delivery/http/middleware"
	"agora/internal/delivery/http/response"
	"agora/internal/delivery/http/router"
	"agora/internal/delivery/http/router/handler"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/service"
	"agora/internal/infra/metrics"
	"agora/internal/infra/pubsub"
	mockRepo "agora/internal/mocks/repository"
	mockService "agora/internal/mocks/service"
	"agora/internal/usecase"
	"agora/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testIdentityID = uuid.MustParse("abcdef12-0000-4000-8000-000000000001")

type envelope[T any] struct {
	Success bool                `json:"success"`
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    T                   `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
}

type apiFixture struct {
	e        *echo.Echo
	provider *mockService.MockIdentityProvider
	profiles *mockRepo.MockProfileRepository
	session  usecase.SessionUsecase

	mu       sync.Mutex
	listener service.AuthListener
}

func newAPIFixture(t *testing.T, rateLimit *config.RateLimitConfig) *apiFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.RateLimit = rateLimit

	f := &apiFixture{
		provider: mockService.NewMockIdentityProvider(t),
		profiles: mockRepo.NewMockProfileRepository(t),
	}

	f.provider.EXPECT().CurrentSession(mock.Anything).Return(nil, nil).Once()
	f.provider.EXPECT().Subscribe(mock.Anything).RunAndReturn(func(listener service.AuthListener) func() {
		f.mu.Lock()
		f.listener = listener
		f.mu.Unlock()

		return func() {}
	}).Once()

	registry := metrics.NewRegistry()
	f.session = impl.NewSessionReconciler(impl.SessionReconcilerParams{
		Provider: f.provider,
		Profiles: f.profiles,
		Metrics:  metrics.NewCollector(registry),
		Logger:   logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.session.Start(ctx))
	require.NoError(t, f.session.WaitReady(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		assert.NoError(t, f.session.Close(ctx))
	})

	f.e = NewEcho(ServerParams{
		Cfg:    cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			SessionHandler:    handler.NewSessionHandler(f.session),
			AuthHandler:       handler.NewAuthHandler(f.session),
			ProfileHandler:    handler.NewProfileHandler(f.session),
			PushHandler:       handler.NewPushHandler(handler.PushHandlerParams{Config: cfg, Logger: logger, Session: f.session}),
			SessionMiddleware: httpmiddleware.NewSessionMiddleware(f.session),
			RateLimiter:       httpmiddleware.NewRateLimiter(cfg, logger),
			Registry:          registry,
		},
	})

	return f
}

func (f *apiFixture) emit(kind entity.AuthEventKind, session *entity.Session) {
	f.mu.Lock()
	listener := f.listener
	f.mu.Unlock()

	listener(entity.AuthEvent{Kind: kind, Session: session, OccurredAt: time.Now()})
}

func (f *apiFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	return rec
}

// signIn drives a successful password sign-in for the test identity.
func (f *apiFixture) signIn(t *testing.T) *entity.Profile {
	t.Helper()

	identity := &entity.Identity{ID: testIdentityID, Email: "jane@example.com", Provider: entity.ProviderTypeEmail}
	stored := &entity.Profile{ID: testIdentityID, Email: identity.Email, Username: "jane", Rank: entity.DefaultRank, IsActive: true}

	f.provider.EXPECT().SignIn(mock.Anything, "jane@example.com", "Secret#123").RunAndReturn(func(context.Context, string, string) error {
		f.emit(entity.AuthEventSignedIn, &entity.Session{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    entity.TokenTypeBearer,
			ExpiresAt:    time.Now().Add(time.Hour),
			Identity:     identity,
		})

		return nil
	}).Once()
	f.profiles.EXPECT().FindByID(mock.Anything, testIdentityID).Return(stored, nil).Once()

	rec := f.do(http.MethodPost, "/auth/signin", `{"email":"Jane@Example.com","password":"Secret#123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return stored
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func TestAPI_Health(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	env := decode[map[string]string](t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Data["status"])
}

func TestAPI_Metrics(t *testing.T) {
	f := newAPIFixture(t, nil)
	f.signIn(t)

	rec := f.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `agora_auth_events_total{kind="SIGNED_IN"} 1`)
}

func TestAPI_SessionSignedOut(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.do(http.MethodGet, "/session", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[handler.StateView](t, rec)
	assert.Equal(t, entity.AuthStatusUnauthenticated.String(), env.Data.State)
	assert.False(t, env.Data.Loading)
	assert.Nil(t, env.Data.Session)
	assert.Nil(t, env.Data.Identity)
	assert.Nil(t, env.Data.Profile)
}

func TestAPI_SignInReturnsReconciledState(t *testing.T) {
	f := newAPIFixture(t, nil)
	f.signIn(t)

	rec := f.do(http.MethodGet, "/session", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[handler.StateView](t, rec)
	assert.Equal(t, entity.AuthStatusAuthenticated.String(), env.Data.State)
	require.NotNil(t, env.Data.Session)
	assert.Equal(t, "access", env.Data.Session.AccessToken)
	assert.NotContains(t, rec.Body.String(), "refresh")
	require.NotNil(t, env.Data.Profile)
	assert.Equal(t, testIdentityID, env.Data.Profile.ID)
	assert.Equal(t, "jane", env.Data.Profile.Username)
}

func TestAPI_SignInInvalidCredentials(t *testing.T) {
	f := newAPIFixture(t, nil)
	f.provider.EXPECT().SignIn(mock.Anything, "jane@example.com", "wrong").Return(domainerrors.ErrInvalidCredentials).Once()

	rec := f.do(http.MethodPost, "/auth/signin", `{"email":"jane@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode[any](t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestAPI_SignUpValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{
			name: "password mismatch",
			body: `{"email":"jane@example.com","password":"Secret#123","confirmPassword":"Secret#124"}`,
			code: "PASSWORD_MISMATCH",
		},
		{
			name: "invalid email",
			body: `{"email":"jane","password":"Secret#123","confirmPassword":"Secret#123"}`,
			code: "VALIDATION_FAILED",
		},
		{
			name: "missing password",
			body: `{"email":"jane@example.com"}`,
			code: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t, nil)

			rec := f.do(http.MethodPost, "/auth/signup", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decode[any](t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestAPI_OAuthURL(t *testing.T) {
	f := newAPIFixture(t, nil)
	consent := "https://accounts.google.com/o/oauth2/auth?state=abc"
	f.provider.EXPECT().SignInWithOAuth(mock.Anything, entity.ProviderTypeGoogle).Return(consent, nil).Twice()

	rec := f.do(http.MethodGet, "/auth/oauth/google", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[map[string]string](t, rec)
	assert.Equal(t, consent, env.Data["url"])

	rec = f.do(http.MethodGet, "/auth/oauth/google?redirect=true", "")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, consent, rec.Header().Get(echo.HeaderLocation))
}

func TestAPI_OAuthUnsupportedProvider(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.do(http.MethodGet, "/auth/oauth/myspace", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode[any](t, rec)
	assert.Equal(t, "OAUTH_PROVIDER_UNSUPPORTED", env.Error.Code)
}

func TestAPI_OAuthCallbackRequiresCodeAndState(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.do(http.MethodGet, "/auth/callback/google?code=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode[any](t, rec)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestAPI_UpdateProfile(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		f := newAPIFixture(t, nil)

		rec := f.do(http.MethodPatch, "/profile", `{"bio":"hello"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "NO_AUTHENTICATED_USER", decode[any](t, rec).Error.Code)
	})

	t.Run("immutable field", func(t *testing.T) {
		f := newAPIFixture(t, nil)
		f.signIn(t)

		rec := f.do(http.MethodPatch, "/profile", `{"points":9000}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode[any](t, rec)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Equal(t, `field "points" is immutable`, env.Error.Details)
	})

	t.Run("ok", func(t *testing.T) {
		f := newAPIFixture(t, nil)
		stored := f.signIn(t)

		bio := "hello"
		updated := *stored
		updated.Bio = &bio
		f.profiles.EXPECT().
			UpdateByID(mock.Anything, testIdentityID, mock.MatchedBy(func(u *entity.ProfileUpdate) bool {
				return u.Bio != nil && *u.Bio == "hello" && u.Username == nil
			}), mock.Anything).
			Return(&updated, nil).Once()

		rec := f.do(http.MethodPatch, "/profile", `{"bio":"hello"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		env := decode[handler.ProfileView](t, rec)
		require.NotNil(t, env.Data.Bio)
		assert.Equal(t, "hello", *env.Data.Bio)
		require.NotNil(t, f.session.Snapshot().Profile.Bio)
		assert.Equal(t, "hello", *f.session.Snapshot().Profile.Bio)
	})
}

func TestAPI_PushProfileChanged(t *testing.T) {
	f := newAPIFixture(t, nil)
	stored := f.signIn(t)

	refreshed := *stored
	refreshed.Points = 250
	f.profiles.EXPECT().FindByID(mock.Anything, testIdentityID).Return(&refreshed, nil).Once()

	push := func(event entity.AccountEvent) *httptest.ResponseRecorder {
		data, err := json.Marshal(event)
		require.NoError(t, err)

		var msg pubsub.PushMessage
		msg.Message.Data = base64.StdEncoding.EncodeToString(data)
		msg.Message.MessageID = uuid.NewString()
		body, err := json.Marshal(msg)
		require.NoError(t, err)

		return f.do(http.MethodPost, "/push/profile-changed", string(body))
	}

	// Another identity's change and non-profile events are acked without a fetch.
	assert.Equal(t, http.StatusOK, push(entity.AccountEvent{Type: entity.AccountEventProfileChanged, IdentityID: uuid.New()}).Code)
	assert.Equal(t, http.StatusOK, push(entity.AccountEvent{Type: entity.AccountEventPasswordResetRequested, IdentityID: testIdentityID}).Code)

	rec := push(entity.AccountEvent{Type: entity.AccountEventProfileChanged, IdentityID: testIdentityID})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 250, f.session.Snapshot().Profile.Points)
}

func TestAPI_PushMalformed(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.do(http.MethodPost, "/push/profile-changed", `{"message":{"data":"%%%"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_AuthRateLimit(t *testing.T) {
	f := newAPIFixture(t, &config.RateLimitConfig{AuthPerMinute: 1, Burst: 2})

	for range 2 {
		rec := f.do(http.MethodPost, "/auth/signup", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}

	rec := f.do(http.MethodPost, "/auth/signup", `{}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "TOO_MANY_REQUESTS", decode[any](t, rec).Error.Code)

	// Non-auth routes are not throttled.
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/session", "").Code)
}
