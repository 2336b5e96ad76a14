package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/nlterm"
	projectConfigDir = ".nlterm"
	configFileName   = "config.yaml"
	envPrefix        = "nlterm"
)

// envOverrides are read from NLTERM_* variables.
type envOverrides struct {
	DataDir      string `envconfig:"DATA_DIR"`
	WebAddr      string `envconfig:"WEB_ADDR"`
	NoTypewriter bool   `envconfig:"NO_TYPEWRITER"`
	GitHubURL    string `envconfig:"GITHUB_URL"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
}

// LoadConfig loads the nlterm configuration by layering default, user, project
// and environment settings.
func LoadConfig() (NltermConfig, error) {
	return LoadConfigWithPath("")
}

// LoadConfigWithPath is LoadConfig with an explicit config file. A non-empty
// path replaces the user and project layers and must exist.
func LoadConfigWithPath(path string) (NltermConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	if path != "" {
		fileConfig, err := loadConfigFromFile(path)
		if err != nil {
			return NltermConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		config = mergeConfigs(config, fileConfig)
		return applyEnv(config)
	}

	// 2. User-specific configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// Log this error but don't fail; user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return NltermConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
	}

	// 3. Project-specific configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
		projectConfig, err := loadConfigFromFile(projectConfigPath)
		if err != nil {
			return NltermConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		config = mergeConfigs(config, projectConfig)
	}

	// 4. Environment
	return applyEnv(config)
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads an NltermConfig from a YAML file.
func loadConfigFromFile(filePath string) (NltermConfig, error) {
	var config NltermConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return NltermConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return NltermConfig{}, err
	}
	return config, nil
}

func applyEnv(config NltermConfig) (NltermConfig, error) {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return NltermConfig{}, fmt.Errorf("error reading environment overrides: %w", err)
	}
	if env.DataDir != "" {
		config.Storage.DataDir = env.DataDir
	}
	if env.WebAddr != "" {
		config.Web.Addr = env.WebAddr
	}
	if env.NoTypewriter {
		off := false
		config.Terminal.Typewriter = &off
	}
	if env.GitHubURL != "" {
		config.Profile.GitHubURL = env.GitHubURL
	}
	if env.LogLevel != "" {
		config.GlobalSettings.LogLevel = env.LogLevel
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay NltermConfig) NltermConfig {
	merged := base

	if overlay.GlobalSettings.LogLevel != "" {
		merged.GlobalSettings.LogLevel = overlay.GlobalSettings.LogLevel
	}

	merged.Profile = mergeProfile(base.Profile, overlay.Profile)

	if overlay.Terminal.Typewriter != nil {
		v := *overlay.Terminal.Typewriter
		merged.Terminal.Typewriter = &v
	}
	if overlay.Terminal.SecretPhrase != "" {
		merged.Terminal.SecretPhrase = overlay.Terminal.SecretPhrase
	}
	if overlay.Terminal.Theme != "" {
		merged.Terminal.Theme = overlay.Terminal.Theme
	}

	if overlay.Storage.DataDir != "" {
		merged.Storage.DataDir = overlay.Storage.DataDir
	}

	if overlay.Web.Addr != "" {
		merged.Web.Addr = overlay.Web.Addr
	}
	if len(overlay.Web.AllowedOrigins) > 0 {
		merged.Web.AllowedOrigins = overlay.Web.AllowedOrigins
	}
	if overlay.Web.InputRate != 0 {
		merged.Web.InputRate = overlay.Web.InputRate
	}
	if overlay.Web.InputBurst != 0 {
		merged.Web.InputBurst = overlay.Web.InputBurst
	}

	return merged
}

// mergeProfile overrides scalar fields individually; skill and project
// lists are replaced as a whole.
func mergeProfile(base, overlay ProfileConfig) ProfileConfig {
	merged := base
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&merged.Name, overlay.Name)
	set(&merged.Role, overlay.Role)
	set(&merged.Location, overlay.Location)
	set(&merged.Experience, overlay.Experience)
	set(&merged.Passion, overlay.Passion)
	set(&merged.Quote, overlay.Quote)
	set(&merged.Email, overlay.Email)
	set(&merged.GitHubURL, overlay.GitHubURL)
	set(&merged.Instagram, overlay.Instagram)
	set(&merged.LinkedIn, overlay.LinkedIn)
	set(&merged.Version, overlay.Version)
	if len(overlay.Skills) > 0 {
		merged.Skills = overlay.Skills
	}
	if len(overlay.Projects) > 0 {
		merged.Projects = overlay.Projects
	}
	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// ResolveDataDir returns the directory holding the persistent store,
// expanding a leading "~/" and defaulting to the user config directory.
func (c NltermConfig) ResolveDataDir() (string, error) {
	dir := c.Storage.DataDir
	if dir == "" {
		return GetUserConfigDir()
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		homeDir, err := osUserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand %s: %w", dir, err)
		}
		dir = filepath.Join(homeDir, strings.TrimPrefix(dir, "~"))
	}
	return dir, nil
}
