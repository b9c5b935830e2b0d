package outbox

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
)

// ProcessorConfig tunes the relay loop.
type ProcessorConfig struct {
	PollInterval  time.Duration
	BatchSize     int
	MaxRetries    int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
}

// DefaultProcessorConfig polls ten times a second and gives up on a message
// after five attempts.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		PollInterval:  100 * time.Millisecond,
		BatchSize:     100,
		MaxRetries:    5,
		RetryDelay:    time.Second,
		MaxRetryDelay: time.Minute,
	}
}

// Processor relays stored messages to a publisher. Long-running transports
// start its polling loop; one-shot commands drain it with ProcessOnce.
// Both paths share one lock so a message is never relayed twice at once.
type Processor struct {
	repo      Repository
	publisher eventbus.Publisher
	config    ProcessorConfig
	logger    *slog.Logger

	relayMu sync.Mutex

	lifeMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	stats relayStats
}

// NewProcessor wires a processor. A nil logger falls back to slog.Default.
func NewProcessor(repo Repository, publisher eventbus.Publisher, config ProcessorConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		repo:      repo,
		publisher: publisher,
		config:    config,
		logger:    logger.With("component", "outbox"),
	}
}

// Start launches the polling loop. Calling it on a running processor is a
// no-op.
func (p *Processor) Start(ctx context.Context) error {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	if p.cancel != nil {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(loopCtx, p.done)

	p.logger.Info("relay started", "poll_interval", p.config.PollInterval, "batch_size", p.config.BatchSize)
	return nil
}

// Stop ends the polling loop and waits for the batch in flight.
func (p *Processor) Stop() {
	p.lifeMu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.lifeMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Info("relay stopped")
}

// IsRunning reports whether the polling loop is active.
func (p *Processor) IsRunning() bool {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	return p.cancel != nil
}

// ProcessOnce relays one batch synchronously.
func (p *Processor) ProcessOnce(ctx context.Context) error {
	return p.drain(ctx)
}

func (p *Processor) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	interval := p.config.PollInterval
	if interval <= 0 {
		interval = DefaultProcessorConfig().PollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.drain(ctx); err != nil && ctx.Err() == nil {
				p.logger.Error("relay batch failed", "error", err)
			}
		}
	}
}

func (p *Processor) drain(ctx context.Context) error {
	p.relayMu.Lock()
	defer p.relayMu.Unlock()

	batch, err := p.repo.GetUnpublished(ctx, p.config.BatchSize)
	if err != nil {
		p.stats.fail(err)
		return err
	}
	p.stats.polled(batch)

	for _, msg := range batch {
		p.settle(ctx, msg, p.relay(ctx, msg))
	}
	return nil
}

func (p *Processor) relay(ctx context.Context, msg *Message) error {
	body, err := msg.Envelope().Encode()
	if err != nil {
		return err
	}
	return p.publisher.Publish(ctx, msg.RoutingKey, body)
}

// settle records the outcome of one relay attempt in the store.
func (p *Processor) settle(ctx context.Context, msg *Message, relayErr error) {
	log := p.logger.With("id", msg.ID, "routing_key", msg.RoutingKey, "event_id", msg.EventID)

	if relayErr == nil {
		if err := p.repo.MarkPublished(ctx, msg.ID); err != nil {
			log.Error("could not mark message published", "error", err)
			return
		}
		p.stats.published(msg.RoutingKey)
		return
	}

	log.Warn("relay attempt failed",
		"attempt", msg.RetryCount+1,
		"correlation_id", msg.Metadata.CorrelationID,
		"error", relayErr,
	)

	attempt := msg.RetryCount + 1
	if p.config.MaxRetries <= 0 || attempt >= p.config.MaxRetries {
		p.stats.deadLettered(relayErr)
		if err := p.repo.MarkDead(ctx, msg.ID, relayErr.Error()); err != nil {
			log.Error("could not dead-letter message", "error", err)
		}
		return
	}

	p.stats.retried(relayErr)
	retryAt := time.Now().Add(p.delayFor(attempt))
	if err := p.repo.MarkFailed(ctx, msg.ID, relayErr.Error(), retryAt); err != nil {
		log.Error("could not schedule retry", "error", err)
	}
}

// delayFor doubles RetryDelay per attempt, capped at MaxRetryDelay.
func (p *Processor) delayFor(attempt int) time.Duration {
	delay, ceiling := p.config.RetryDelay, p.config.MaxRetryDelay
	if delay <= 0 {
		delay = time.Second
	}
	if ceiling <= 0 {
		ceiling = time.Minute
	}
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= ceiling {
			return ceiling
		}
	}
	return min(delay, ceiling)
}

// Stats is a snapshot of the relay counters.
type Stats struct {
	Running      bool
	Published    uint64
	Retried      uint64
	DeadLettered uint64
	// ByRoutingKey counts published messages per event type.
	ByRoutingKey map[string]uint64
	// Backlog is the size of the last polled batch and Lag the age of its
	// oldest message.
	Backlog     int
	Lag         time.Duration
	Oldest      *time.Time
	LastRunAt   *time.Time
	LastError   string
	LastErrorAt *time.Time
}

// GetStats returns a copy of the current counters.
func (p *Processor) GetStats() Stats {
	s := p.stats.snapshot()
	s.Running = p.IsRunning()
	return s
}

type relayStats struct {
	mu sync.Mutex
	s  Stats
}

func (r *relayStats) snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.s
	out.ByRoutingKey = maps.Clone(r.s.ByRoutingKey)
	return out
}

func (r *relayStats) polled(batch []*Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.s.LastRunAt = &now
	r.s.Backlog = len(batch)
	r.s.Oldest, r.s.Lag = nil, 0
	for _, msg := range batch {
		if r.s.Oldest == nil || msg.CreatedAt.Before(*r.s.Oldest) {
			created := msg.CreatedAt
			r.s.Oldest = &created
		}
	}
	if r.s.Oldest != nil {
		r.s.Lag = now.Sub(*r.s.Oldest)
	}
}

func (r *relayStats) published(routingKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.Published++
	if r.s.ByRoutingKey == nil {
		r.s.ByRoutingKey = make(map[string]uint64)
	}
	r.s.ByRoutingKey[routingKey]++
}

func (r *relayStats) retried(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.Retried++
	r.setError(err)
}

func (r *relayStats) deadLettered(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.DeadLettered++
	r.setError(err)
}

func (r *relayStats) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setError(err)
}

func (r *relayStats) setError(err error) {
	now := time.Now()
	r.s.LastError = err.Error()
	r.s.LastErrorAt = &now
}
