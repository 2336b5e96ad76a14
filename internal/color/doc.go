// Package color selects the terminal theme for nlterm.
//
// The TUI palette uses lipgloss adaptive colors, so the only decision left
// is whether the background is dark or light and whether to emit color at
// all. That decision is made once at startup, before the program renders.
//
// # Theme Selection
//
// The theme comes from the terminal.theme setting and can be forced with
// the NLTERM_THEME environment variable:
//   - auto: ask the terminal for its background color (default)
//   - dark: assume a dark background
//   - light: assume a light background
//
// Unknown values fall back to auto.
//
// # Environment Variables
//
// Respected environment variables:
//   - NO_COLOR: Disable all color output
//   - NLTERM_THEME: Force dark or light theme
//
// # Usage Example
//
//	dark := color.Setup(color.ParseTheme(cfg.Terminal.Theme))
//	logging.Debug("TUI", "Dark background: %t", dark)
package color
