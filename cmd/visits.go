package cmd

import (
	"fmt"
	"time"

	"nlterm/internal/app"
	"nlterm/internal/terminal"
	"nlterm/internal/visitor"

	"github.com/spf13/cobra"
)

// visitsRecord records a visit before printing the log.
var visitsRecord bool

func newVisitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visits",
		Short: "Print the visitor log",
		Long:  `Prints the same visitor log the terminal's visits command shows.`,
		Args:  cobra.NoArgs,
		RunE:  runVisits,
	}

	cmd.Flags().BoolVar(&visitsRecord, "record", false, "Record a visit first")
	return cmd
}

func runVisits(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(true, debug, false)
	cfg.ConfigPath = configPath

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	if visitsRecord {
		application.RecordVisit()
	}

	log := visitor.Load(application.Services().Store)
	fmt.Fprintln(cmd.OutOrStdout(), terminal.VisitsText(log, time.Local))
	return nil
}
