package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned while the breaker for a host is open.
var ErrUnavailable = errors.New("calendar source temporarily unavailable")

const maxExportSize = 5 << 20

// FetcherConfig tunes remote export downloads.
type FetcherConfig struct {
	Timeout          time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// DefaultFetcherConfig returns conservative defaults.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:          10 * time.Second,
		FailureThreshold: 3,
		OpenTimeout:      time.Minute,
	}
}

// Fetcher downloads published calendar exports. Each host gets its own
// circuit breaker so a dead feed stops being hammered.
type Fetcher struct {
	client   *http.Client
	config   FetcherConfig
	logger   *slog.Logger
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[[]byte]
}

// NewFetcher creates a fetcher. A nil client uses one with cfg.Timeout.
func NewFetcher(client *http.Client, cfg FetcherConfig, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultFetcherConfig().FailureThreshold
	}
	return &Fetcher{
		client:   client,
		config:   cfg,
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker[[]byte]),
	}
}

func (f *Fetcher) breaker(host string) *gobreaker.CircuitBreaker[[]byte] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if b, ok := f.breakers[host]; ok {
		return b
	}
	b := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Timeout:     f.config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= f.config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			f.logger.Warn("calendar fetch breaker state changed",
				"host", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	f.breakers[host] = b
	return b
}

// Fetch downloads the export at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", sharedDomain.InvalidInputf("calendar url %q must be an absolute http(s) url", rawURL)
	}

	body, err := f.breaker(u.Host).Execute(func() ([]byte, error) {
		return f.get(ctx, u.String())
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Host)
	}
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch calendar: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxExportSize))
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	return body, nil
}
