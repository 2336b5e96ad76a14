package components

import (
	"fmt"
	"strings"

	"nlterm/internal/terminal"
	"nlterm/internal/tui/design"
	"nlterm/internal/tui/model"
	"nlterm/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar is the bottom line of the terminal screen. A pending message
// replaces the session summary until it is cleared.
type StatusBar struct {
	Width   int
	Session terminal.Snapshot
	Hint    string
	Message string
	Kind    model.MessageType
}

// Render returns the styled status bar.
func (b StatusBar) Render() string {
	inner := b.Width - design.SpaceSM*2
	if b.Message != "" {
		return messageStyle(b.Kind).Width(b.Width).MaxWidth(b.Width).
			Render(utils.TruncateString(b.Message, inner))
	}

	left := FormatSessionInfo(b.Session)
	content := left
	if b.Hint != "" {
		gap := inner - lipgloss.Width(left) - lipgloss.Width(b.Hint)
		if gap > 0 {
			content = left + strings.Repeat(" ", gap) + b.Hint
		}
	}
	return sessionStyle(b.Session).Width(b.Width).MaxWidth(b.Width).
		Render(utils.TruncateString(content, inner))
}

func messageStyle(kind model.MessageType) lipgloss.Style {
	switch kind {
	case model.StatusBarSuccess:
		return design.StatusBarSuccessStyle
	case model.StatusBarError:
		return design.StatusBarErrorStyle
	case model.StatusBarWarning:
		return design.StatusBarWarningStyle
	default:
		return design.StatusBarInfoStyle
	}
}

// sessionStyle tints the bar while elevated or after a granted hack.
func sessionStyle(snap terminal.Snapshot) lipgloss.Style {
	switch {
	case snap.AccessGranted:
		return design.StatusBarSuccessStyle
	case snap.Mode == terminal.ModeElevated:
		return design.StatusBarWarningStyle
	default:
		return design.StatusBarStyle
	}
}

// FormatSessionInfo formats the session state for the status bar
func FormatSessionInfo(snap terminal.Snapshot) string {
	if snap.State == terminal.StateClosed {
		return "Terminal closed"
	}

	result := fmt.Sprintf("%s · %s", snap.State, snap.Mode)
	if snap.Admin {
		result += " · admin"
	}
	if snap.Hacking {
		result += fmt.Sprintf(" · hack %d%%", int(snap.HackProgress))
	}

	return result
}
