package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/tempo/internal/app"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("worker failed", "error", err)
		os.Exit(1)
	}
}

// run relays the outbox until ctx is cancelled. The worker always relays,
// whatever OUTBOX_PROCESSOR_ENABLED says for the interactive transports.
func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, w := range cfg.Warnings {
		logger.Warn("config", "problem", w)
	}
	workerCfg := *cfg
	workerCfg.OutboxProcessorEnabled = true

	container, err := app.NewContainer(ctx, &workerCfg, logger)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}
	defer container.Close()

	logger.Info("tempo worker starting",
		"poll_interval", workerCfg.OutboxPollInterval,
		"batch_size", workerCfg.OutboxBatchSize,
		"max_retries", workerCfg.OutboxMaxRetries,
	)
	if err := container.StartBackground(ctx); err != nil {
		return fmt.Errorf("start relay: %w", err)
	}

	if workerCfg.WorkerHealthAddr != "" {
		go serveHealth(ctx, logger, workerCfg.WorkerHealthAddr, container)
	}
	if workerCfg.OutboxStatsInterval > 0 {
		go reportStats(ctx, logger, workerCfg.OutboxStatsInterval, container)
	}

	<-ctx.Done()
	logger.Info("tempo worker stopping")
	container.OutboxProcessor.Stop()
	return nil
}

func serveHealth(ctx context.Context, logger *slog.Logger, addr string, container *app.Container) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           healthMux(container),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("health server shutdown", "error", err)
		}
	}()

	logger.Info("health server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("health server", "error", err)
	}
}

func reportStats(ctx context.Context, logger *slog.Logger, every time.Duration, container *app.Container) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logStats(logger, container)
		}
	}
}

// healthMux serves /healthz with the relay statistics and /readyz with the
// component checks.
func healthMux(container *app.Container) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		stats := container.OutboxProcessor.GetStats()
		writeJSON(w, http.StatusOK, map[string]any{
			"status":            "ok",
			"running":       stats.Running,
			"published":     stats.Published,
			"retried":       stats.Retried,
			"dead_lettered": stats.DeadLettered,
			"by_event":      stats.ByRoutingKey,
			"backlog":       stats.Backlog,
			"last_run_at":   stats.LastRunAt,
			"last_error_at": stats.LastErrorAt,
			"last_error":    stats.LastError,
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		overall := container.Health.Check(checkCtx)
		status := http.StatusOK
		if overall.Status == observability.HealthStatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, overall)
	})

	return mux
}

func logStats(logger *slog.Logger, container *app.Container) {
	stats := container.OutboxProcessor.GetStats()
	logger.Info("outbox stats",
		"running", stats.Running,
		"published", stats.Published,
		"retried", stats.Retried,
		"dead_lettered", stats.DeadLettered,
		"backlog", stats.Backlog,
		"lag", stats.Lag,
		"oldest", stats.Oldest,
		"last_run_at", stats.LastRunAt,
		"last_error_at", stats.LastErrorAt,
		"last_error", stats.LastError,
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
