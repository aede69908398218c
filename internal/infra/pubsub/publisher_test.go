package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agora/config"
	deliverycontext "agora/internal/delivery/context"
	"agora/internal/domain/constants"
	"agora/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PublishAccountEvent(t *testing.T) {
	var received PushMessage
	var requestIDHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestIDHeader = r.Header.Get("X-Request-Id")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)

			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())

	identityID := uuid.New()
	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")
	err := publisher.PublishAccountEvent(ctx, &entity.AccountEvent{
		Type:       entity.AccountEventProfileCreated,
		IdentityID: identityID,
		Email:      "ada@example.com",
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, "req-42", requestIDHeader)
	assert.Equal(t, localSubscription, received.Subscription)
	assert.NotEmpty(t, received.Message.MessageID)
	assert.Equal(t, "profile_created", received.Message.Attributes[AttributeEventType])
	assert.Equal(t, identityID.String(), received.Message.Attributes[AttributeIdentityID])
	assert.Equal(t, "req-42", received.Message.Attributes[AttributeRequestID])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var event entity.AccountEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, identityID, event.IdentityID)
	assert.Equal(t, "ada@example.com", event.Email)
	assert.Equal(t, "req-42", event.RequestID)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())

	err := publisher.PublishAccountEvent(context.Background(), &entity.AccountEvent{
		Type:       entity.AccountEventPasswordResetRequested,
		IdentityID: uuid.New(),
	})
	assert.ErrorContains(t, err, "503")
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name     string
		pubsub   *config.PubSubConfig
		wantNoop bool
		wantErr  string
	}{
		{name: "not configured", pubsub: nil, wantNoop: true},
		{name: "noop", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderNoop}, wantNoop: true},
		{name: "local", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:8080/push/profile-changed"}},
		{name: "local without endpoint", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, wantErr: "local endpoint is required"},
		{name: "google without project", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, TopicID: "t"}, wantErr: "project ID is required"},
		{name: "google without topic", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}, wantErr: "topic ID is required"},
		{name: "unknown", pubsub: &config.PubSubConfig{Provider: "kafka"}, wantErr: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)

			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Config: &config.Config{PubSub: tt.pubsub},
				Logger: newDiscardLogger(),
			})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)

			_, isNoop := publisher.(*noopPublisher)
			assert.Equal(t, tt.wantNoop, isNoop)

			lc.RequireStart().RequireStop()
		})
	}
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher(newDiscardLogger())

	assert.NoError(t, publisher.PublishAccountEvent(context.Background(), &entity.AccountEvent{Type: entity.AccountEventIdentityCreated}))
	assert.NoError(t, publisher.Close())
}
