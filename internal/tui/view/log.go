package view

import (
	"nlterm/internal/tui/design"
	"nlterm/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// renderLogOverlay shows the application log in a centered panel at the
// terminal window's size.
func renderLogOverlay(m *model.Model) string {
	layout := ComputeLayout(m.Width, m.Height)
	title := design.LogPanelTitleStyle.Render("Application Log")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.LogViewport.View())
	return design.LogOverlayStyle.
		Width(layout.WindowWidth - 2).
		Height(layout.WindowHeight - 2).
		Render(content)
}

// LogPanelSize returns the log viewport size for a screen of width x height.
func LogPanelSize(width, height int) (int, int) {
	layout := ComputeLayout(width, height)
	// Border (2) plus padding (4 horizontal, 2 vertical) and the title block (2).
	return max(layout.WindowWidth-6, 1), max(layout.WindowHeight-6, 1)
}
