package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// ConsumerRegistry routes envelopes to the consumers subscribed to their
// routing key. Consumers subscribed to AllEvents see every envelope after
// the specific ones.
type ConsumerRegistry struct {
	mu     sync.RWMutex
	routes map[string][]EventConsumer
	logger *slog.Logger
}

// NewConsumerRegistry returns an empty registry.
func NewConsumerRegistry(logger *slog.Logger) *ConsumerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsumerRegistry{routes: make(map[string][]EventConsumer), logger: logger}
}

// Register subscribes consumer to each of its event types.
func (r *ConsumerRegistry) Register(consumer EventConsumer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range consumer.EventTypes() {
		r.routes[key] = append(r.routes[key], consumer)
	}
}

// Routes lists the subscribed routing keys in order.
func (r *ConsumerRegistry) Routes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.routes))
	for key := range r.routes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Len counts subscriptions; a consumer with two event types counts twice.
func (r *ConsumerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, consumers := range r.routes {
		n += len(consumers)
	}
	return n
}

// Match returns the consumers an envelope with routingKey reaches.
func (r *ConsumerRegistry) Match(routingKey string) []EventConsumer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if routingKey == AllEvents {
		return slices.Clone(r.routes[AllEvents])
	}
	return slices.Concat(r.routes[routingKey], r.routes[AllEvents])
}

// Dispatch hands event to every matching consumer. A failing consumer does
// not stop the others; all failures are joined into the result.
func (r *ConsumerRegistry) Dispatch(ctx context.Context, event *ConsumedEvent) error {
	var errs []error
	for _, consumer := range r.Match(event.RoutingKey) {
		if err := consumer.Handle(ctx, event); err != nil {
			r.logger.Error("consumer failed",
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				"consumer", fmt.Sprintf("%T", consumer),
				"error", err,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
