package eventbus

import (
	"context"
	"errors"
	"log/slog"
)

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// MultiPublisher fans every message out to several publishers. Delivery is
// attempted on all of them; the joined error reports every failure.
type MultiPublisher struct {
	publishers []Publisher
}

// NewMultiPublisher combines publishers. Nil entries are ignored.
func NewMultiPublisher(publishers ...Publisher) *MultiPublisher {
	m := &MultiPublisher{}
	for _, p := range publishers {
		if p != nil {
			m.publishers = append(m.publishers, p)
		}
	}
	return m
}

// Publish sends the message to every publisher.
func (m *MultiPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, routingKey, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every publisher.
func (m *MultiPublisher) Close() error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NoopPublisher accepts and discards every message.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher returns a publisher that only logs at debug level.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish implements Publisher.
func (p *NoopPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("discarding event", "routing_key", routingKey, "bytes", len(payload))
	return nil
}

// Close implements Publisher.
func (p *NoopPublisher) Close() error {
	return nil
}
