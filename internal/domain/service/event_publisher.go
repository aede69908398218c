package service

import (
	"context"

	"agora/internal/domain/entity"
)

// EventPublisher defines the interface for publishing account events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account lifecycle event for async processing
	PublishAccountEvent(ctx context.Context, event *entity.AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
