package config

// NltermConfig is the top-level configuration structure for nlterm.
type NltermConfig struct {
	GlobalSettings GlobalSettings `yaml:"globalSettings"`
	Profile        ProfileConfig  `yaml:"profile"`
	Terminal       TerminalConfig `yaml:"terminal"`
	Storage        StorageConfig  `yaml:"storage"`
	Web            WebConfig      `yaml:"web"`
}

// GlobalSettings holds process-wide settings.
type GlobalSettings struct {
	LogLevel string `yaml:"logLevel,omitempty"` // debug, info, warn, error
}

// ProfileConfig is the portfolio content rendered by the terminal commands.
type ProfileConfig struct {
	Name       string             `yaml:"name,omitempty"`
	Role       string             `yaml:"role,omitempty"`
	Location   string             `yaml:"location,omitempty"`
	Experience string             `yaml:"experience,omitempty"`
	Passion    string             `yaml:"passion,omitempty"`
	Quote      string             `yaml:"quote,omitempty"`
	Email      string             `yaml:"email,omitempty"`
	GitHubURL  string             `yaml:"githubURL,omitempty"`
	Instagram  string             `yaml:"instagram,omitempty"`
	LinkedIn   string             `yaml:"linkedin,omitempty"`
	Version    string             `yaml:"version,omitempty"`
	Skills     []SkillGroupConfig `yaml:"skills,omitempty"`
	Projects   []ProjectConfig    `yaml:"projects,omitempty"`
}

// SkillGroupConfig is one category of the skill matrix.
type SkillGroupConfig struct {
	Category string        `yaml:"category"`
	Skills   []SkillConfig `yaml:"skills"`
}

// SkillConfig is a skill with a level in percent.
type SkillConfig struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// ProjectConfig is one entry of the project list.
type ProjectConfig struct {
	Name   string   `yaml:"name"`
	Status string   `yaml:"status,omitempty"`
	Tech   []string `yaml:"tech,omitempty"`
}

// TerminalConfig tunes the terminal session.
type TerminalConfig struct {
	// Typewriter is a pointer so a layer can switch it off explicitly.
	Typewriter   *bool  `yaml:"typewriter,omitempty"`
	SecretPhrase string `yaml:"secretPhrase,omitempty"`
	Theme        string `yaml:"theme,omitempty"` // auto, dark, light
}

// TypewriterEnabled reports the effective typewriter setting.
func (t TerminalConfig) TypewriterEnabled() bool {
	return t.Typewriter == nil || *t.Typewriter
}

// StorageConfig locates the persistent key/value store.
type StorageConfig struct {
	DataDir string `yaml:"dataDir,omitempty"`
}

// WebConfig configures `nlterm serve`.
type WebConfig struct {
	Addr           string   `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
	InputRate      float64  `yaml:"inputRate,omitempty"`  // websocket messages per second
	InputBurst     int      `yaml:"inputBurst,omitempty"` // websocket message burst
}
