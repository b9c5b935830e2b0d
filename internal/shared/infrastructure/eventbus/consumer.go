package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

// AllEvents is the routing key a consumer declares to receive every event.
// It matches the AMQP topic wildcard so the same key binds a queue to the
// whole exchange.
const AllEvents = "#"

// EventConsumer handles specific event types.
type EventConsumer interface {
	// EventTypes returns the routing keys this consumer handles,
	// e.g. ["task.created", "energy.recorded"].
	EventTypes() []string

	// Handle processes the event.
	Handle(ctx context.Context, event *ConsumedEvent) error
}

// ConsumedEvent is the envelope every published event travels in.
type ConsumedEvent struct {
	EventID       uuid.UUID            `json:"event_id"`
	AggregateID   uuid.UUID            `json:"aggregate_id"`
	AggregateType string               `json:"aggregate_type"`
	RoutingKey    string               `json:"routing_key"`
	OccurredAt    time.Time            `json:"occurred_at"`
	Payload       json.RawMessage      `json:"payload"`
	Metadata      domain.EventMetadata `json:"metadata,omitempty"`
}

// NewEnvelope wraps a domain event for publishing.
func NewEnvelope(event domain.DomainEvent) (*ConsumedEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return &ConsumedEvent{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
		Metadata:      event.Metadata(),
	}, nil
}

// Encode serialises the envelope for the wire.
func (e *ConsumedEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Consumer reads envelopes from a broker and dispatches them.
type Consumer interface {
	// Subscribe routes the consumer's event types to this subscriber.
	Subscribe(consumer EventConsumer) error
	// Run blocks until ctx is cancelled or the delivery stream ends.
	Run(ctx context.Context) error
	Close() error
}
