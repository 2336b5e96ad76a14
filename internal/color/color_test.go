package color

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		isDarkMode bool
		expected   bool
	}{
		{"set dark mode", true, true},
		{"set light mode", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Initialize(tt.isDarkMode)
			if lipgloss.HasDarkBackground() != tt.expected {
				t.Errorf("lipgloss.HasDarkBackground() got %v, want %v after Initialize(%v)", lipgloss.HasDarkBackground(), tt.expected, tt.isDarkMode)
			}
		})
	}
}

func TestParseTheme(t *testing.T) {
	tests := map[string]Theme{
		"dark":    ThemeDark,
		" Light ": ThemeLight,
		"auto":    ThemeAuto,
		"":        ThemeAuto,
		"neon":    ThemeAuto,
	}
	for in, want := range tests {
		if got := ParseTheme(in); got != want {
			t.Errorf("ParseTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

// stubEnv replaces the environment and detection hooks for one test.
func stubEnv(t *testing.T, env map[string]string, detected bool) *[]termenv.Profile {
	t.Helper()
	origLookup, origDetect, origProfile := lookupEnv, detectDark, setProfile
	t.Cleanup(func() {
		lookupEnv, detectDark, setProfile = origLookup, origDetect, origProfile
	})

	var profiles []termenv.Profile
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	detectDark = func() bool { return detected }
	setProfile = func(p termenv.Profile) { profiles = append(profiles, p) }
	return &profiles
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		theme    Theme
		env      map[string]string
		detected bool
		wantDark bool
	}{
		{name: "dark", theme: ThemeDark, wantDark: true},
		{name: "light", theme: ThemeLight, detected: true, wantDark: false},
		{name: "auto detects light", theme: ThemeAuto, detected: false, wantDark: false},
		{name: "auto detects dark", theme: ThemeAuto, detected: true, wantDark: true},
		{name: "env overrides config", theme: ThemeDark, env: map[string]string{ThemeEnv: "light"}, wantDark: false},
		{name: "empty env is ignored", theme: ThemeDark, env: map[string]string{ThemeEnv: ""}, wantDark: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := stubEnv(t, tt.env, tt.detected)
			if got := Setup(tt.theme); got != tt.wantDark {
				t.Errorf("Setup(%q) = %v, want %v", tt.theme, got, tt.wantDark)
			}
			if lipgloss.HasDarkBackground() != tt.wantDark {
				t.Errorf("lipgloss background not applied")
			}
			if len(*profiles) != 0 {
				t.Errorf("color profile changed without NO_COLOR")
			}
		})
	}
}

func TestSetup_NoColor(t *testing.T) {
	profiles := stubEnv(t, map[string]string{"NO_COLOR": "1"}, true)
	Setup(ThemeDark)

	if len(*profiles) != 1 || (*profiles)[0] != termenv.Ascii {
		t.Errorf("expected the ASCII profile, got %v", *profiles)
	}
}
