package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/adapter/cli/calendar"
	"github.com/felixgeelhaar/tempo/adapter/cli/events"
	"github.com/felixgeelhaar/tempo/adapter/cli/insights"
	"github.com/felixgeelhaar/tempo/adapter/cli/mcp"
	"github.com/felixgeelhaar/tempo/adapter/cli/schedule"
	"github.com/felixgeelhaar/tempo/adapter/cli/server"
	"github.com/felixgeelhaar/tempo/adapter/cli/task"
	"github.com/felixgeelhaar/tempo/adapter/cli/wellness"
	"github.com/felixgeelhaar/tempo/internal/app"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	cli.SetLogger(logger)
	for _, w := range cfg.Warnings {
		logger.Warn("config", "problem", w)
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	cli.SetApp(container)

	// Register commands
	cli.AddCommand(task.Cmd)
	cli.AddCommand(wellness.EnergyCmd)
	cli.AddCommand(wellness.SessionCmd)
	cli.AddCommand(calendar.EventCmd)
	cli.AddCommand(calendar.Cmd)
	cli.AddCommand(schedule.Cmd)
	cli.AddCommand(schedule.SleepCmd)
	cli.AddCommand(insights.Cmd)
	cli.AddCommand(server.Cmd)
	cli.AddCommand(mcp.Cmd)
	cli.AddCommand(events.Cmd)

	code := cli.Execute(ctx)
	container.Close()
	os.Exit(code)
}

func newLogger(cfg *config.Config) *slog.Logger {
	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	if cfg.LogLevel != "" {
		logCfg.Level = observability.LogLevel(cfg.LogLevel)
	}
	logCfg.ServiceVersion = cli.Version
	return observability.NewLogger(logCfg)
}
