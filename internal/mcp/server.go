// Package mcp exposes the planner to MCP clients over streamable HTTP.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/middleware"
	mcptools "github.com/felixgeelhaar/tempo/adapter/mcp"
	"github.com/felixgeelhaar/tempo/internal/app"
	"github.com/felixgeelhaar/tempo/pkg/config"
)

// NewServer registers the planner tools, resources and prompts on a fresh
// MCP server.
func NewServer(container *app.Container, version string, logger *slog.Logger) (*mcpgo.Server, error) {
	if container == nil {
		return nil, errors.New("mcp: container is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv := mcpgo.NewServer(mcpgo.ServerInfo{
		Name:    "tempo",
		Version: version,
		Capabilities: mcpgo.Capabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
	})

	deps := mcptools.ToolDependencies{App: container}
	steps := []struct {
		name     string
		register func(*mcpgo.Server, mcptools.ToolDependencies) error
	}{
		{"tools", mcptools.RegisterTools},
		{"resources", mcptools.RegisterResources},
		{"prompts", mcptools.RegisterPrompts},
	}
	for _, step := range steps {
		if err := step.register(srv, deps); err != nil {
			return nil, fmt.Errorf("mcp: register %s: %w", step.name, err)
		}
	}
	logger.Debug("mcp server assembled", "version", version)
	return srv, nil
}

// Serve listens on cfg.MCPAddr until ctx is cancelled. When MCPAuthToken is
// set every request must carry it as a bearer token.
func Serve(ctx context.Context, cfg *config.Config, container *app.Container, version string, logger *slog.Logger) error {
	if cfg == nil {
		return errors.New("mcp: config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv, err := NewServer(container, version, logger)
	if err != nil {
		return err
	}

	logger.Info("mcp server listening", "addr", cfg.MCPAddr, "auth", cfg.MCPAuthToken != "")
	return mcpgo.ServeHTTPWithMiddleware(ctx, srv, cfg.MCPAddr, nil,
		mcpgo.WithMiddleware(middlewareStack(cfg.MCPAuthToken, logger)...))
}

// middlewareStack is the default mcp-go stack, preceded by bearer auth when
// a token is configured.
func middlewareStack(token string, logger *slog.Logger) []middleware.Middleware {
	log := slogAdapter{logger}
	stack := middleware.DefaultStack(log)
	if token == "" {
		logger.Warn("MCP_AUTH_TOKEN not set, mcp requests are unauthenticated")
		return stack
	}
	auth := middleware.BearerTokenAuthenticator(middleware.StaticTokens(map[string]*middleware.Identity{
		token: {ID: "tempo-client", Name: "tempo-client"},
	}))
	return append([]middleware.Middleware{middleware.Auth(auth, middleware.WithAuthLogger(log))}, stack...)
}

// slogAdapter lets mcp-go middleware log through slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Debug(msg string, fields ...middleware.Field) {
	a.log(slog.LevelDebug, msg, fields)
}

func (a slogAdapter) Info(msg string, fields ...middleware.Field) {
	a.log(slog.LevelInfo, msg, fields)
}

func (a slogAdapter) Warn(msg string, fields ...middleware.Field) {
	a.log(slog.LevelWarn, msg, fields)
}

func (a slogAdapter) Error(msg string, fields ...middleware.Field) {
	a.log(slog.LevelError, msg, fields)
}

func (a slogAdapter) log(level slog.Level, msg string, fields []middleware.Field) {
	a.logger.Log(context.Background(), level, msg, fieldsToArgs(fields)...)
}

func fieldsToArgs(fields []middleware.Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		args = append(args, field.Key, field.Value)
	}
	return args
}
