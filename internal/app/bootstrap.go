package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"nlterm/internal/config"
	"nlterm/internal/mcpserver"
	"nlterm/internal/metrics"
	"nlterm/internal/visitor"
	"nlterm/internal/web"
	"nlterm/pkg/logging"

	"golang.org/x/term"
)

// For mocking in tests
var terminalSize = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Application is the main application structure that bootstraps and runs nlterm
type Application struct {
	config   *Config
	services *Services
}

// NewApplication loads the configuration, initialises logging and opens
// the shared services.
func NewApplication(cfg *Config) (*Application, error) {
	// Logs go to stderr: stdout belongs to the REPL and the MCP transport.
	logging.InitForCLI(logging.LevelInfo, os.Stderr)

	var nltermCfg config.NltermConfig
	var err error
	if cfg.ConfigPath != "" {
		nltermCfg, err = config.LoadConfigWithPath(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load nlterm configuration from path: %s", cfg.ConfigPath)
			return nil, fmt.Errorf("failed to load nlterm configuration from path %s: %w", cfg.ConfigPath, err)
		}
	} else {
		nltermCfg, err = config.LoadConfig()
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load nlterm configuration")
			return nil, fmt.Errorf("failed to load nlterm configuration: %w", err)
		}
	}
	cfg.NltermConfig = &nltermCfg

	logging.InitForCLI(cfg.LogLevel(), os.Stderr)
	logging.Debug("Bootstrap", "Configuration loaded")

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Services returns the shared services.
func (a *Application) Services() *Services { return a.services }

// Run records the visit and runs the interactive terminal in the selected mode.
func (a *Application) Run(ctx context.Context) error {
	a.RecordVisit()
	if a.config.Plain {
		return runREPLMode(ctx, a.config, a.services)
	}
	return runTUIMode(ctx, a.config, a.services)
}

// RecordVisit records a visit sized to the controlling terminal.
func (a *Application) RecordVisit() {
	screen := "unknown"
	if w, h, err := terminalSize(); err == nil {
		screen = visitor.Screen(w, h)
	}
	if _, err := a.services.Visits.Record(visitor.DeviceDesktop, screen); err != nil {
		logging.Warn("Bootstrap", "Failed to record visit: %v", err)
	}
}

// Serve runs the HTTP and websocket backend until ctx is cancelled. A
// non-empty addr overrides the configured address.
func (a *Application) Serve(ctx context.Context, addr string) error {
	webCfg := a.config.NltermConfig.Web
	if addr == "" {
		addr = webCfg.Addr
	}

	server := web.NewServer(web.Config{
		Addr:           addr,
		AllowedOrigins: webCfg.AllowedOrigins,
		InputRate:      webCfg.InputRate,
		InputBurst:     webCfg.InputBurst,
		Debug:          a.config.Debug,
		SecretPhrase:   a.config.NltermConfig.Terminal.SecretPhrase,
		Store:          a.services.Store,
		Terminal:       a.services.TerminalOptions(a.config),
		Metrics:        metrics.New(),
		Watcher:        a.services.Store,
	})
	return server.Run(ctx)
}

// ServeMCP speaks MCP over in and out until ctx is cancelled or in closes.
func (a *Application) ServeMCP(ctx context.Context, version string, in io.Reader, out io.Writer) error {
	server := mcpserver.New(mcpserver.Config{
		Name:     "nlterm",
		Version:  version,
		Terminal: a.services.TerminalOptions(a.config),
	})
	return server.Serve(ctx, in, out)
}
