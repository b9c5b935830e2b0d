// Package mcp holds the "tempo mcp" commands.
package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/tempo/internal/mcp"
	"github.com/spf13/cobra"
)

// Cmd groups the MCP commands.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve Tempo to MCP clients",
}

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start an MCP server over HTTP exposing the planner as tools, resources
and prompts. Set MCP_AUTH_TOKEN to require a bearer token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		cfg := *app.Config
		if serveAddr != "" {
			cfg.MCPAddr = serveAddr
		}

		if err := app.StartBackground(ctx); err != nil {
			return err
		}

		err = mcpinternal.Serve(ctx, &cfg, app, cli.Version, cli.Logger())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	Cmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default MCP_ADDR)")
}
