package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/tempo/internal/app"
	"github.com/spf13/cobra"
)

// ErrNotInitialized is returned by commands run without a container.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

var current *app.Container

// SetApp sets the global CLI application instance.
func SetApp(c *app.Container) {
	current = c
}

// GetApp returns the global CLI application instance.
func GetApp() *app.Container {
	return current
}

// RequireApp returns the container or ErrNotInitialized.
func RequireApp() (*app.Container, error) {
	if current == nil {
		return nil, ErrNotInitialized
	}
	return current, nil
}

// Flush relays the events written by a one-shot command. Failures are
// logged; the write itself already succeeded.
func Flush(cmd *cobra.Command) {
	if current == nil {
		return
	}
	if err := current.Flush(cmd.Context()); err != nil {
		Logger().Warn("failed to relay events", "error", err)
	}
}

// JSON reports whether --json was given.
func JSON() bool {
	return jsonOutput
}

// SetJSON overrides --json. Used by tests.
func SetJSON(v bool) {
	jsonOutput = v
}

// PrintJSON writes v as indented JSON to the command's output.
func PrintJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
