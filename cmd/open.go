package cmd

import (
	"fmt"

	"nlterm/internal/app"

	"github.com/spf13/cobra"
)

// openPlain runs the line REPL instead of the full-screen TUI.
// It is meant for dumb terminals, pipes and screen readers.
var openPlain bool

// openElevated opens the terminal straight into elevated mode.
var openElevated bool

func newOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open the portfolio terminal",
		Long: `Opens the portfolio terminal and records a visit.
It can run in two modes:

1. Interactive TUI Mode (default):
   - A full-screen landing page; press ctrl+t or type the secret phrase
     to open the terminal, ctrl+o to open it in elevated mode.
   - The application log is available with ctrl+l.

2. Plain Mode (using --plain flag):
   - A readline prompt on stdin and stdout with history and completion.
   - Useful for dumb terminals or when a TUI is not desired.

Configuration:
  nlterm loads configuration from .nlterm/config.yaml in the current directory or
  ~/.config/nlterm/config.yaml. Use --config to load a single file instead.`,
		Args: cobra.NoArgs,
		RunE: runOpen,
	}

	cmd.Flags().BoolVar(&openPlain, "plain", false, "Use the line-oriented REPL instead of the TUI")
	cmd.Flags().BoolVar(&openElevated, "elevated", false, "Open the terminal in elevated mode")
	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(openPlain, debug, openElevated)
	cfg.ConfigPath = configPath

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(commandContext(cmd))
}
