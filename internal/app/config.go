package app

import (
	"nlterm/internal/config"
	"nlterm/pkg/logging"
)

// Config holds the application configuration
type Config struct {
	// UI mode: Plain uses the line-oriented REPL instead of the TUI.
	Plain bool

	// Debug settings
	Debug bool

	// Elevated opens the terminal straight into elevated mode.
	Elevated bool

	// ConfigPath replaces the user and project config layers when set.
	ConfigPath string

	// Loaded configuration
	NltermConfig *config.NltermConfig
}

// NewConfig creates a new application configuration
func NewConfig(plain, debug, elevated bool) *Config {
	return &Config{
		Plain:    plain,
		Debug:    debug,
		Elevated: elevated,
	}
}

// LogLevel is the effective log level: --debug wins over the config.
func (c *Config) LogLevel() logging.LogLevel {
	if c.Debug {
		return logging.LevelDebug
	}
	if c.NltermConfig == nil {
		return logging.LevelInfo
	}
	return logging.ParseLevel(c.NltermConfig.GlobalSettings.LogLevel)
}
