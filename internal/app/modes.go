package app

import (
	"context"
	"os"
	"path/filepath"

	"nlterm/internal/color"
	"nlterm/internal/repl"
	"nlterm/internal/tui/controller"
	"nlterm/internal/tui/model"
	"nlterm/pkg/logging"
)

const historyFileName = "history"

// runREPLMode executes the line-oriented terminal on stdin and stdout
func runREPLMode(ctx context.Context, config *Config, services *Services) error {
	logging.Debug("CLI", "Starting plain terminal...")

	historyFile := ""
	if dir, err := config.NltermConfig.ResolveDataDir(); err == nil {
		historyFile = filepath.Join(dir, historyFileName)
	}

	r := repl.New(repl.Options{
		Terminal:    services.TerminalOptions(config),
		Elevated:    config.Elevated,
		HistoryFile: historyFile,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
	})
	return r.Run(ctx)
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, config *Config, services *Services) error {
	logging.Info("CLI", "Starting TUI mode...")

	dark := color.Setup(color.ParseTheme(config.NltermConfig.Terminal.Theme))
	logging.Debug("CLI", "Dark background: %t", dark)

	// Switch logging to channel-based system for TUI integration
	logChan := logging.InitForTUI(config.LogLevel())
	defer logging.CloseTUIChannel()

	p := controller.NewProgram(model.Options{
		Terminal:      services.TerminalOptions(config),
		SecretPhrase:  config.NltermConfig.Terminal.SecretPhrase,
		LogChannel:    logChan,
		Debug:         config.Debug,
		StartOpen:     config.Elevated,
		StartElevated: config.Elevated,
	})

	// Quit the program when the command context ends.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	// Run the TUI until user exits
	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")

	return nil
}
