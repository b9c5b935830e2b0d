package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/tempo/internal/app"
)

// ToolDependencies provides handlers and context for MCP tools.
type ToolDependencies struct {
	App *app.Container
}

// toolset holds the tool implementations so they can be called without a
// transport.
type toolset struct {
	app *app.Container
}

// RegisterTools registers MCP tools that mirror the CLI and HTTP API.
func RegisterTools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	t := toolset{app: deps.App}

	srv.Tool("tempo.health").
		Description("Report the health of the database and cache").
		Handler(t.health)

	registerTaskTools(srv, t)
	registerWellnessTools(srv, t)
	registerCalendarTools(srv, t)
	registerScheduleTools(srv, t)

	return nil
}

func (t toolset) health(ctx context.Context, _ struct{}) (map[string]any, error) {
	overall := t.app.Health.Check(ctx)
	return map[string]any{
		"status": overall.Status,
		"checks": overall.Checks,
	}, nil
}

// flush relays pending domain events after a write. Failures stay in the
// outbox for the next run.
func (t toolset) flush(ctx context.Context) {
	if err := t.app.Flush(ctx); err != nil {
		t.app.Logger.Warn("failed to relay domain events", "error", err)
	}
}
