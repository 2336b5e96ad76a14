package cmd

import (
	"fmt"

	"nlterm/internal/app"

	"github.com/spf13/cobra"
)

// serveAddr overrides web.addr from the configuration.
var serveAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the terminal to browsers over HTTP and websockets",
		Long: `Starts the web backend. Each websocket connection on /ws/terminal drives
its own terminal session; page loads on / record visits, /api/visits reports
them and /metrics exposes Prometheus metrics.

The storage file is watched, so visits recorded by 'nlterm open' on the same
data directory show up without a restart.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from web.addr, :8080)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(true, debug, false)
	cfg.ConfigPath = configPath

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Serve(commandContext(cmd), serveAddr)
}
