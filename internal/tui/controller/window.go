package controller

import (
	"nlterm/internal/tui/model"
	"nlterm/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
)

// handleWindowSizeMsg resizes every component to the new terminal dimensions.
func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) *model.Model {
	m.Width = msg.Width
	m.Height = msg.Height

	layout := view.ComputeLayout(msg.Width, msg.Height)
	m.Viewport.Width = layout.ViewportWidth
	m.Viewport.Height = layout.ViewportHeight
	m.Progress.Width = layout.ViewportWidth
	m.Input.Width = max(layout.ViewportWidth-len(m.Input.Prompt)-1, 1)
	m.Help.Width = msg.Width

	m.LogViewport.Width, m.LogViewport.Height = view.LogPanelSize(msg.Width, msg.Height)
	m.ActivityLogDirty = true

	refreshHistory(m)
	return m
}
