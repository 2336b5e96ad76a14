package config

// GetDefaultConfig returns the built-in configuration.
// The profile is left empty; the terminal supplies its own content.
func GetDefaultConfig() NltermConfig {
	typewriter := true
	return NltermConfig{
		GlobalSettings: GlobalSettings{
			LogLevel: "info",
		},
		Terminal: TerminalConfig{
			Typewriter:   &typewriter,
			SecretPhrase: "sudo nl",
			Theme:        "auto",
		},
		Web: WebConfig{
			Addr:       ":8080",
			InputRate:  10,
			InputBurst: 20,
		},
	}
}
