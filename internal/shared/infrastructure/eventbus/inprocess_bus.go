package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
)

// InProcessEventBus is the always-present Publisher: it delivers each
// envelope synchronously to consumers living in the same process, such as
// the recommendation cache invalidator. Consumer failures are logged and
// never fail the relay.
type InProcessEventBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
	// serialises deliveries so consumers observe events in relay order
	mu sync.Mutex
}

// NewInProcessEventBus returns a bus with no consumers.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{registry: NewConsumerRegistry(logger), logger: logger}
}

// RegisterConsumer subscribes consumer to its event types.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish decodes an encoded envelope and delivers it. Undecodable payloads
// are dropped.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var event ConsumedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		b.logger.Warn("dropping undecodable envelope", "routing_key", routingKey, "error", err)
		return nil
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}
	b.Deliver(ctx, &event)
	return nil
}

// PublishDomainEvent wraps event in an envelope and delivers it.
func (b *InProcessEventBus) PublishDomainEvent(ctx context.Context, event domain.DomainEvent) error {
	envelope, err := NewEnvelope(event)
	if err != nil {
		return err
	}
	b.Deliver(ctx, envelope)
	return nil
}

// Deliver dispatches an already decoded envelope.
func (b *InProcessEventBus) Deliver(ctx context.Context, event *ConsumedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.registry.Dispatch(ctx, event); err != nil {
		b.logger.Warn("in-process delivery incomplete", "routing_key", event.RoutingKey, "error", err)
		return
	}
	b.logger.Debug("event delivered", "routing_key", event.RoutingKey, "event_id", event.EventID)
}

// Close implements Publisher.
func (b *InProcessEventBus) Close() error {
	return nil
}
