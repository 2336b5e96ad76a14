package controller

import (
	"strings"

	"nlterm/internal/terminal"
	"nlterm/internal/tui/model"
	"nlterm/internal/tui/utils"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes a key press: global bindings first, then the log
// overlay, then the active screen.
func handleKeyMsg(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.ForceQuit):
		return quit(m), nil
	case key.Matches(keyMsg, m.Keys.ToggleLog):
		m.ShowLog = !m.ShowLog
		return m, nil
	case key.Matches(keyMsg, m.Keys.Help):
		m.ShowHelp = !m.ShowHelp
		return m, nil
	}

	if m.ShowLog {
		return handleLogOverlayKey(m, keyMsg)
	}

	switch m.CurrentAppMode {
	case model.ModeLanding:
		return handleLandingKey(m, keyMsg)
	case model.ModeTerminal:
		return handleTerminalKey(m, keyMsg)
	case model.ModeGodMode:
		return handleGodModeKey(m, keyMsg)
	}
	return m, nil
}

func quit(m *model.Model) *model.Model {
	m.Session.Teardown()
	m.CurrentAppMode = model.ModeQuitting
	m.QuitApp = true
	LogDebug(m, controllerSubsystem, "Quitting")
	return m
}

func handleLogOverlayKey(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if keyMsg.Type == tea.KeyEsc {
		m.ShowLog = false
		return m, nil
	}
	var cmd tea.Cmd
	m.LogViewport, cmd = m.LogViewport.Update(keyMsg)
	return m, cmd
}

// handleLandingKey feeds typed characters to the secret phrase.
func handleLandingKey(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.Open):
		m.Session.Open()
		return m, nil
	case key.Matches(keyMsg, m.Keys.OpenElevated):
		m.Session.OpenElevated()
		return m, nil
	}

	if keyMsg.Alt || (keyMsg.Type != tea.KeyRunes && keyMsg.Type != tea.KeySpace) {
		m.Secret.Reset()
		return m, nil
	}

	partial := m.Secret.Typed() != ""
	if m.Secret.Feed(keyMsg.String()) {
		LogDebug(m, controllerSubsystem, "Secret phrase typed")
		return m, nil
	}
	if !partial && m.Secret.Typed() == "" && key.Matches(keyMsg, m.Keys.Quit) {
		return quit(m), nil
	}
	return m, nil
}

func handleTerminalKey(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if m.Session.State() == terminal.StateClosing {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Close):
		m.Session.Close()
		return m, nil
	case key.Matches(keyMsg, m.Keys.Elevate):
		m.Session.ActivateElevated()
		return m, nil
	case key.Matches(keyMsg, m.Keys.ScrollUp), key.Matches(keyMsg, m.Keys.ScrollDown):
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(keyMsg)
		return m, cmd
	case key.Matches(keyMsg, m.Keys.Copy):
		return m, copyLastOutput(m)
	}

	if !m.Session.InputEnabled() {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Submit):
		line := m.Input.Value()
		if m.Session.Submit(line) {
			m.PushInputHistory(line)
		}
		m.Input.Reset()
		return m, nil
	case key.Matches(keyMsg, m.Keys.HistoryPrev), key.Matches(keyMsg, m.Keys.HistoryNext):
		delta := -1
		if key.Matches(keyMsg, m.Keys.HistoryNext) {
			delta = 1
		}
		if line, ok := m.RecallInput(delta); ok {
			m.Input.SetValue(line)
			m.Input.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(keyMsg)
	return m, cmd
}

// copyLastOutput copies the newest non-input history line.
func copyLastOutput(m *model.Model) tea.Cmd {
	history := m.Session.History()
	for i := len(history) - 1; i >= 0; i-- {
		line := history[i]
		if line.Kind == terminal.LineInput || strings.TrimSpace(line.Text) == "" {
			continue
		}
		text := line.Text
		return tea.Batch(
			copyCmd(text),
			m.SetStatusMessage("Copied: "+utils.TruncateString(utils.LastLine(text), 40), model.StatusBarSuccess, model.StatusMessageTimeout),
		)
	}
	return m.SetStatusMessage("Nothing to copy", model.StatusBarWarning, model.StatusMessageTimeout)
}

func handleGodModeKey(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.Quit):
		return quit(m), nil
	case keyMsg.Type == tea.KeyEsc:
		m.CurrentAppMode = model.ModeLanding
	}
	return m, nil
}
