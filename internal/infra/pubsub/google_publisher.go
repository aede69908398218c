package pubsub

import (
	"context"
	"fmt"
	"log/slog"

	"agora/internal/domain/entity"
	"agora/internal/domain/service"
	"agora/internal/errors"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
)

// googlePubSubPublisher implements EventPublisher using Google Cloud Pub/Sub
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher creates a publisher for an existing topic
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicPath}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &googlePubSubPublisher{
		client:    client,
		publisher: client.Publisher(topicID),
		logger:    logger,
	}, nil
}

// PublishAccountEvent publishes the event and waits for the server ack
func (p *googlePubSubPublisher) PublishAccountEvent(ctx context.Context, event *entity.AccountEvent) error {
	data, attributes, err := encodeEvent(ctx, event)
	if err != nil {
		return err
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to publish %s", event.Type)
	}

	p.logger.DebugContext(ctx, "[GooglePubSub] Event published",
		slog.String("event_type", string(event.Type)),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close flushes pending messages and releases client resources
func (p *googlePubSubPublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}
