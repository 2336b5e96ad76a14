package view

import (
	"strings"

	"nlterm/internal/terminal"
	"nlterm/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
)

// RenderHistory renders history lines for the viewport, one style per
// line kind. Multi-line outputs keep their layout; lines wider than width
// are wrapped.
func RenderHistory(lines []terminal.Line, width int) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		style := design.LineStyle(line.Kind)
		if width > 0 {
			style = style.Width(width)
		}
		if line.Text == "" {
			continue
		}
		b.WriteString(style.Render(line.Text))
	}
	return b.String()
}

// RenderCaption renders the closing caption centered in the window.
func RenderCaption(caption string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		design.CaptionStyle.Render(caption))
}
