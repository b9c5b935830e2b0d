package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName is the durable topic exchange every envelope goes to,
	// keyed by its routing key.
	ExchangeName = "tempo.domain.events"
	// SharedQueueName is the durable queue consumers share when they want
	// each envelope handled once.
	SharedQueueName = "tempo.consumer"
)

var (
	_ Publisher = (*RabbitMQPublisher)(nil)
	_ Consumer  = (*RabbitMQConsumer)(nil)
)

// errStreamClosed is returned by Run when the broker ends the delivery
// stream before ctx is cancelled.
var errStreamClosed = errors.New("rabbitmq: delivery stream closed")

// amqpSession is one connection and channel with the exchange declared.
type amqpSession struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func openSession(url, exchange string) (*amqpSession, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	// durable, not auto-deleted, not internal
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &amqpSession{conn: conn, ch: ch, exchange: exchange}, nil
}

func (s *amqpSession) close() error {
	if s.conn.IsClosed() {
		return nil
	}
	return s.conn.Close()
}

// RabbitMQPublisher sends envelopes to ExchangeName as persistent messages.
type RabbitMQPublisher struct {
	mu      sync.Mutex
	session *amqpSession
	logger  *slog.Logger
}

// NewRabbitMQPublisher connects to url and declares the exchange.
func NewRabbitMQPublisher(url string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	session, err := openSession(url, ExchangeName)
	if err != nil {
		return nil, err
	}
	logger.Info("rabbitmq publisher ready", "exchange", ExchangeName)
	return &RabbitMQPublisher{session: session, logger: logger}, nil
}

// Publish implements Publisher.
func (p *RabbitMQPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.session.ch.PublishWithContext(ctx, p.session.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         routingKey,
		AppId:        "tempo",
		Timestamp:    time.Now(),
		Body:         payload,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	p.logger.Debug("event sent to broker", "routing_key", routingKey, "bytes", len(payload))
	return nil
}

// Close implements Publisher.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.close()
}

// RabbitMQConsumerConfig configures NewRabbitMQConsumer.
type RabbitMQConsumerConfig struct {
	URL string
	// QueueName defaults to SharedQueueName unless Transient is set.
	QueueName string
	// Exchange defaults to ExchangeName.
	Exchange string
	// Transient declares a server-named, exclusive, auto-deleted queue so
	// a watcher sees every envelope without stealing from the shared queue.
	Transient bool
	// Prefetch bounds unacknowledged deliveries. Defaults to 1.
	Prefetch int
	Logger   *slog.Logger
}

// RabbitMQConsumer dispatches deliveries from one queue through a
// ConsumerRegistry. A delivery whose handling fails is requeued once and
// dropped on the second failure; undecodable bodies are dropped at once.
type RabbitMQConsumer struct {
	session  *amqpSession
	queue    string
	prefetch int
	registry *ConsumerRegistry
	logger   *slog.Logger
}

// NewRabbitMQConsumer connects and declares the queue. Bindings are added
// by Subscribe.
func NewRabbitMQConsumer(cfg RabbitMQConsumerConfig, registry *ConsumerRegistry) (*RabbitMQConsumer, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Exchange == "" {
		cfg.Exchange = ExchangeName
	}
	if cfg.QueueName == "" && !cfg.Transient {
		cfg.QueueName = SharedQueueName
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 1
	}
	if registry == nil {
		registry = NewConsumerRegistry(cfg.Logger)
	}

	session, err := openSession(cfg.URL, cfg.Exchange)
	if err != nil {
		return nil, err
	}
	durable := !cfg.Transient
	q, err := session.ch.QueueDeclare(cfg.QueueName, durable, cfg.Transient, cfg.Transient, false, nil)
	if err != nil {
		_ = session.close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	cfg.Logger.Info("rabbitmq consumer ready", "queue", q.Name, "exchange", cfg.Exchange, "transient", cfg.Transient)
	return &RabbitMQConsumer{
		session:  session,
		queue:    q.Name,
		prefetch: cfg.Prefetch,
		registry: registry,
		logger:   cfg.Logger.With("queue", q.Name),
	}, nil
}

// Subscribe registers consumer and binds the queue to each of its event
// types. AllEvents binds the whole exchange.
func (c *RabbitMQConsumer) Subscribe(consumer EventConsumer) error {
	c.registry.Register(consumer)
	var errs []error
	for _, key := range consumer.EventTypes() {
		if err := c.session.ch.QueueBind(c.queue, key, c.session.exchange, false, nil); err != nil {
			errs = append(errs, fmt.Errorf("bind %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Run consumes until ctx is cancelled. It returns ctx.Err() on
// cancellation.
func (c *RabbitMQConsumer) Run(ctx context.Context) error {
	if err := c.session.ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("set prefetch: %w", err)
	}
	deliveries, err := c.session.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	c.logger.Info("consuming events")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errStreamClosed
			}
			c.settle(d, c.handle(ctx, d))
		}
	}
}

func (c *RabbitMQConsumer) handle(ctx context.Context, d amqp.Delivery) error {
	var event ConsumedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		return fmt.Errorf("%w: %v", errUndecodable, err)
	}
	if event.RoutingKey == "" {
		event.RoutingKey = d.RoutingKey
	}
	return c.registry.Dispatch(ctx, &event)
}

var errUndecodable = errors.New("undecodable envelope")

func (c *RabbitMQConsumer) settle(d amqp.Delivery, err error) {
	var ackErr error
	switch {
	case err == nil:
		ackErr = d.Ack(false)
	case errors.Is(err, errUndecodable) || d.Redelivered:
		c.logger.Error("dropping delivery", "routing_key", d.RoutingKey, "redelivered", d.Redelivered, "error", err)
		ackErr = d.Nack(false, false)
	default:
		c.logger.Warn("requeueing delivery", "routing_key", d.RoutingKey, "error", err)
		ackErr = d.Nack(false, true)
	}
	if ackErr != nil {
		c.logger.Error("could not settle delivery", "routing_key", d.RoutingKey, "error", ackErr)
	}
}

// Close closes the connection, which also ends Run.
func (c *RabbitMQConsumer) Close() error {
	return c.session.close()
}
