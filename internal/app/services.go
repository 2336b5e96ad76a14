package app

import (
	"fmt"
	"path/filepath"

	"nlterm/internal/storage"
	"nlterm/internal/terminal"
	"nlterm/internal/visitor"
	"nlterm/pkg/logging"
)

// Services holds everything the front ends share.
type Services struct {
	Store   *storage.FileStore
	Profile terminal.Profile
	Visits  *visitor.Recorder
}

// InitializeServices opens the persistent store and builds the profile.
func InitializeServices(cfg *Config) (*Services, error) {
	dataDir, err := cfg.NltermConfig.ResolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	store, err := storage.OpenFileStore(filepath.Join(dataDir, storage.DefaultFileName))
	if err != nil {
		return nil, err
	}
	logging.Debug("Bootstrap", "Using storage file %s", store.Path())

	return &Services{
		Store:   store,
		Profile: ProfileFromConfig(cfg.NltermConfig.Profile),
		Visits:  visitor.NewRecorder(store, nil),
	}, nil
}

// TerminalOptions is the session template every front end starts from.
// Each call gets a fresh in-memory session store.
func (s *Services) TerminalOptions(cfg *Config) terminal.Options {
	return terminal.Options{
		Store:        s.Store,
		SessionStore: storage.NewMemoryStore(),
		Profile:      s.Profile,
		Typewriter:   cfg.NltermConfig.Terminal.TypewriterEnabled(),
	}
}
