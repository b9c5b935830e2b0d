// Package clitest builds a container on a throwaway SQLite database for
// command tests.
package clitest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/app"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// Setup installs a fresh container as the CLI app and removes it when the
// test ends.
func Setup(t *testing.T) *app.Container {
	t.Helper()

	cfg := &config.Config{
		AppEnv:                 "test",
		Timezone:               "UTC",
		SQLitePath:             filepath.Join(t.TempDir(), "tempo.db"),
		RecommendationCacheTTL: time.Hour,
		CalendarFetchTimeout:   time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := app.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)

	cli.SetApp(container)
	cli.SetLogger(logger)
	t.Cleanup(func() {
		cli.SetApp(nil)
		cli.SetJSON(false)
		container.Close()
	})
	return container
}

// Run invokes cmd's RunE with args and returns what it printed.
func Run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	err := cmd.RunE(cmd, args)
	return out.String(), err
}
