package color

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ThemeEnv forces a theme regardless of configuration.
const ThemeEnv = "NLTERM_THEME"

// Theme is the background assumption the palette is rendered for.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// For mocking in tests
var (
	lookupEnv  = os.LookupEnv
	detectDark = lipgloss.HasDarkBackground
	setProfile = lipgloss.SetColorProfile
)

// ParseTheme maps a config or env string onto a Theme. Unknown values map to ThemeAuto.
func ParseTheme(s string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	default:
		return ThemeAuto
	}
}

// Initialize sets the background lipgloss assumes when resolving adaptive colors.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// Setup applies NO_COLOR and the theme, with NLTERM_THEME taking precedence
// over theme. It reports whether a dark background was selected.
func Setup(theme Theme) bool {
	if v, ok := lookupEnv(ThemeEnv); ok && v != "" {
		theme = ParseTheme(v)
	}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		setProfile(termenv.Ascii)
	}

	dark := true
	switch theme {
	case ThemeLight:
		dark = false
	case ThemeAuto:
		dark = detectDark()
	}
	Initialize(dark)
	return dark
}
