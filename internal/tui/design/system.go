package design

import (
	"nlterm/internal/terminal"

	"github.com/charmbracelet/lipgloss"
)

// Design System Constants
// Following 4px base unit for consistent spacing
const (
	SpaceNone = 0
	SpaceXS   = 1 // 4px
	SpaceSM   = 2 // 8px
	SpaceMD   = 3 // 12px
	SpaceLG   = 4 // 16px

	// Terminal window dimensions as a share of the screen
	TerminalWidthRatio  = 0.85
	TerminalHeightRatio = 0.8

	MinTerminalWidth = 40
)

// Color Palette - Semantic colors with consistent light/dark mode support
var (
	// Brand Colors
	ColorPrimary = lipgloss.AdaptiveColor{
		Light: "#047857",
		Dark:  "#22C55E",
	}
	ColorElevated = lipgloss.AdaptiveColor{
		Light: "#B91C1C",
		Dark:  "#F87171",
	}

	// State Colors
	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#059669",
		Dark:  "#10B981",
	}
	ColorError = lipgloss.AdaptiveColor{
		Light: "#DC2626",
		Dark:  "#EF4444",
	}
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#D97706",
		Dark:  "#F59E0B",
	}
	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2563EB",
		Dark:  "#3B82F6",
	}

	// Neutral Colors
	ColorSurface = lipgloss.AdaptiveColor{
		Light: "#F9FAFB",
		Dark:  "#0A0F0A",
	}
	ColorSurfaceAlt = lipgloss.AdaptiveColor{
		Light: "#F3F4F6",
		Dark:  "#262626",
	}
	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#D1D5DB",
		Dark:  "#14532D",
	}

	// Text Colors
	ColorText = lipgloss.AdaptiveColor{
		Light: "#111827",
		Dark:  "#D1FAE5",
	}
	ColorTextMuted = lipgloss.AdaptiveColor{
		Light: "#9CA3AF",
		Dark:  "#6B7280",
	}
	ColorOverlay = lipgloss.AdaptiveColor{
		Light: "#E5E7EB",
		Dark:  "#050505",
	}
)

// Base Styles
var (
	TextStyle        = lipgloss.NewStyle().Foreground(ColorText)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	DimStyle         = lipgloss.NewStyle().Foreground(ColorTextMuted)
)

// History line styles
var (
	LineInputStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	LineOutputStyle = TextStyle

	LineErrorStyle = TextErrorStyle

	LineSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	LineBannerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Terminal window styles
var (
	TerminalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Background(ColorSurface).
			Foreground(ColorText).
			Padding(0, 1)

	TerminalElevatedStyle = TerminalStyle.
				Border(lipgloss.ThickBorder()).
				BorderForeground(ColorElevated)

	TerminalTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	CaptionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError).
			Padding(1, 4).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorError)

	GlitchStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true).
			Foreground(ColorElevated)

	AccessGrantedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSurface).
				Background(ColorSuccess).
				Padding(0, 2)

	OmegaStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorElevated).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorElevated).
			Padding(2, 6)
)

// Status Bar Styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorSurfaceAlt).
			Foreground(ColorText).
			Padding(0, SpaceSM).
			Height(1)

	StatusBarSuccessStyle = StatusBarStyle.
				Background(ColorSuccess).
				Foreground(ColorSurface)

	StatusBarErrorStyle = StatusBarStyle.
				Background(ColorError).
				Foreground(ColorSurface)

	StatusBarWarningStyle = StatusBarStyle.
				Background(ColorWarning).
				Foreground(ColorSurface)

	StatusBarInfoStyle = StatusBarStyle.
				Background(ColorInfo).
				Foreground(ColorSurface)
)

// Overlay styles
var (
	LogOverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorText).
			Padding(1, 2)

	LogPanelTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				MarginBottom(1).
				Foreground(ColorText)

	GodModeStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorElevated).
			Foreground(ColorElevated).
			Padding(1, 4)
)

// Log level styles
var (
	LogInfoStyle  = lipgloss.NewStyle().Foreground(ColorText)
	LogWarnStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	LogErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	LogDebugStyle = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
)

// LineStyle returns the style for a history line kind.
func LineStyle(kind terminal.LineKind) lipgloss.Style {
	switch kind {
	case terminal.LineInput:
		return LineInputStyle
	case terminal.LineError:
		return LineErrorStyle
	case terminal.LineSuccess:
		return LineSuccessStyle
	case terminal.LineBanner:
		return LineBannerStyle
	default:
		return LineOutputStyle
	}
}

// Layout Helpers
func CenterHorizontal(width int, content string) string {
	contentWidth := lipgloss.Width(content)
	if contentWidth >= width {
		return content
	}
	padding := (width - contentWidth) / 2
	return lipgloss.NewStyle().
		PaddingLeft(padding).
		Width(width).
		Render(content)
}
