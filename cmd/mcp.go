package cmd

import (
	"fmt"
	"os"

	"nlterm/internal/app"

	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the terminal as an MCP server over stdio",
		Long: `Runs an MCP server on stdin and stdout. Assistants can list the terminal's
commands, run scripted sessions and read the visit log.

Add it to an MCP client configuration as:

  {"command": "nlterm", "args": ["mcp"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.NewConfig(true, debug, false)
			cfg.ConfigPath = configPath

			application, err := app.NewApplication(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.ServeMCP(commandContext(cmd), rootCmd.Version, os.Stdin, os.Stdout)
		},
	}
}
