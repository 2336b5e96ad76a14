package view

import (
	"fmt"
	"strings"

	"nlterm/internal/terminal"
	"nlterm/internal/tui/components"
	"nlterm/internal/tui/design"
	"nlterm/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// Render is the main view function that renders the entire UI based on the model's state.
func Render(m *model.Model) string {
	if m.Width == 0 || m.Height == 0 {
		return "Initializing..."
	}

	var body string
	switch m.CurrentAppMode {
	case model.ModeQuitting:
		return "Logging out...\n"
	case model.ModeGodMode:
		body = renderGodMode(m)
	case model.ModeTerminal:
		body = renderTerminalScreen(m)
	default:
		body = renderLanding(m)
	}

	if m.ShowLog {
		body = renderLogOverlay(m)
	}

	statusBar := renderStatusBar(m)
	bodyHeight := m.Height - lipgloss.Height(statusBar)
	if m.ShowHelp {
		helpView := m.Help.View(m.Keys)
		bodyHeight -= lipgloss.Height(helpView)
		statusBar = lipgloss.JoinVertical(lipgloss.Left, helpView, statusBar)
	}
	body = lipgloss.Place(m.Width, max(bodyHeight, 0), lipgloss.Center, lipgloss.Center, body)
	return lipgloss.JoinVertical(lipgloss.Left, body, statusBar)
}

func renderLanding(m *model.Model) string {
	logo := design.LineBannerStyle.Render(terminal.Logo)
	hint := design.DimStyle.Render(fmt.Sprintf("press %s or type the secret phrase", m.Keys.Open.Help().Key))

	parts := []string{logo, "", hint}
	if typed := m.Secret.Typed(); typed != "" {
		parts = append(parts, design.PromptStyle.Render(typed+"_"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func renderTerminalScreen(m *model.Model) string {
	snap := m.Session.Snapshot()
	layout := ComputeLayout(m.Width, m.Height)

	style := design.TerminalStyle
	title := "nl@portfolio:~$"
	if snap.Mode == terminal.ModeElevated {
		style = design.TerminalElevatedStyle
		title = "root@portfolio:~#"
	}
	style = style.Width(layout.WindowWidth - 2).Height(layout.WindowHeight - 2)

	if snap.State == terminal.StateClosing {
		inner := RenderCaption(snap.Caption, layout.ViewportWidth, layout.ViewportHeight+3)
		return style.Render(inner)
	}

	header := design.TerminalTitleStyle.Render(title)
	if snap.Transitioning {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", design.GlitchStyle.Render(" SYSTEM OVERRIDE "))
	}
	if snap.AccessGranted {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", design.AccessGrantedStyle.Render("ACCESS GRANTED"))
	}

	content := m.Viewport.View()
	if snap.OmegaActive {
		content = lipgloss.Place(layout.ViewportWidth, layout.ViewportHeight, lipgloss.Center, lipgloss.Center,
			design.OmegaStyle.Render("Ω  OMEGA PROTOCOL  Ω"))
	}

	footer := renderInputLine(m, snap)
	progressLine := ""
	if snap.Hacking {
		progressLine = m.Progress.ViewAs(snap.HackProgress / 100)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, content, progressLine, footer))
}

func renderInputLine(m *model.Model, snap terminal.Snapshot) string {
	switch {
	case snap.State == terminal.StateBooting:
		return design.DimStyle.Render("booting...")
	case snap.RootGranted:
		return design.DimStyle.Render("input locked")
	case !snap.InputEnabled:
		return design.DimStyle.Render("...")
	default:
		return m.Input.View()
	}
}

func renderGodMode(m *model.Model) string {
	lines := []string{
		"GODMODE",
		"",
		"Privileged session active.",
		fmt.Sprintf("Session %s", m.Session.ID()),
		"",
		design.DimStyle.Render(fmt.Sprintf("%s to quit", m.Keys.Quit.Help().Key)),
	}
	return design.GodModeStyle.Render(strings.Join(lines, "\n"))
}

func renderStatusBar(m *model.Model) string {
	return components.StatusBar{
		Width:   m.Width,
		Session: m.Session.Snapshot(),
		Hint:    fmt.Sprintf("%s · %s help", m.CurrentAppMode, m.Keys.Help.Help().Key),
		Message: m.StatusBarMessage,
		Kind:    m.StatusBarMessageType,
	}.Render()
}
