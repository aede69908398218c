package pubsub

import (
	"context"
	"encoding/json"

	deliverycontext "agora/internal/delivery/context"
	"agora/internal/domain/entity"
	"agora/internal/errors"
)

// Message attributes set on every published account event.
const (
	AttributeEventType  = "event_type"
	AttributeIdentityID = "identity_id"
	AttributeRequestID  = "request_id"
)

// PushMessage is the envelope Google Pub/Sub uses when pushing to HTTP endpoints.
// The local publisher sends the same shape so one handler serves both.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// encodeEvent fills the request id from ctx when the event has none and
// returns the JSON payload plus the routing attributes.
func encodeEvent(ctx context.Context, event *entity.AccountEvent) ([]byte, map[string]string, error) {
	if event.RequestID == "" {
		event.RequestID = deliverycontext.RequestIDFromContext(ctx)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	attributes := map[string]string{
		AttributeEventType:  string(event.Type),
		AttributeIdentityID: event.IdentityID.String(),
	}
	if event.RequestID != "" {
		attributes[AttributeRequestID] = event.RequestID
	}

	return data, attributes, nil
}
