package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/api"
	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var addr string

// Cmd starts the HTTP JSON API.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP JSON API used by the web front end. The server stops
gracefully on SIGINT or SIGTERM.

Examples:
  tempo serve
  tempo serve --addr :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if err := app.StartBackground(ctx); err != nil {
			return err
		}

		cfg := api.DefaultServerConfig()
		cfg.Addr = app.Config.HTTPAddr
		if addr != "" {
			cfg.Addr = addr
		}
		if len(app.Config.CORSAllowedOrigins) > 0 {
			cfg.AllowedOrigins = app.Config.CORSAllowedOrigins
		}

		srv := api.NewServer(cfg, app, cli.Logger())
		return run(ctx, srv)
	},
}

type startStopper interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// run blocks until srv fails or ctx is done, then shuts srv down.
func run(ctx context.Context, srv startStopper) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "listen address (default HTTP_ADDR)")
}
