package controller

import (
	"nlterm/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the Bubble Tea program for the interactive terminal.
func NewProgram(opts model.Options) *tea.Program {
	m := model.NewModel(opts)
	app := NewAppModel(m)
	return tea.NewProgram(app, tea.WithAltScreen())
}
