package controller

import (
	"fmt"
	"strings"

	"nlterm/internal/tui/model"
	"nlterm/internal/tui/view"
	"nlterm/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

const controllerDispatchSubsystem = "ControllerDispatch"

// Update handles one message. Session effects queued while handling it are
// applied afterwards, then the viewport and the scheduler tick are synced
// with the session.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case model.TickMsg, model.NewLogEntryMsg:
	default:
		LogDebug(m, controllerDispatchSubsystem, "Received msg: %T", msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = handleWindowSizeMsg(m, msg)

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = handleKeyMsg(m, msg)
		cmds = append(cmds, cmd)

	case model.TickMsg:
		m.TickFired(msg)
		if n := m.Session.Tick(); n > 0 {
			LogDebug(m, controllerSubsystem, "Ran %d due callbacks", n)
		}

	case model.NewLogEntryMsg:
		m = handleNewLogEntry(m, msg)
		cmds = append(cmds, model.ListenForLogEntriesCmd(m.LogChannel))

	case model.ClearStatusBarMsg:
		m.ClearStatusMessage()

	case model.ClipboardResultMsg:
		if msg.Err != nil {
			LogError(tuiSubsystem, msg.Err, "Failed to copy to clipboard")
			cmds = append(cmds, m.SetStatusMessage("Copy to clipboard failed", model.StatusBarError, model.StatusMessageTimeout))
		} else {
			m.LastCopied = msg.Text
		}

	default:
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, applyEffects(m)...)
	cmds = append(cmds, syncSession(m))

	if m.ActivityLogDirty {
		m.LogViewport.SetContent(strings.Join(m.ActivityLog, "\n"))
		m.LogViewport.GotoBottom()
		m.ActivityLogDirty = false
	}

	if m.QuitApp {
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

// syncSession follows the session into the terminal screen, refreshes the
// history when it changed and arms the next scheduler tick.
func syncSession(m *model.Model) tea.Cmd {
	if m.CurrentAppMode == model.ModeLanding && m.Session.State().IsOpen() {
		m.CurrentAppMode = model.ModeTerminal
		m.Secret.Reset()
	}
	if m.SessionChanged() {
		refreshHistory(m)
	}
	if m.Session.InputEnabled() {
		m.Input.Focus()
	} else {
		m.Input.Blur()
	}
	return m.ScheduleTick()
}

func refreshHistory(m *model.Model) {
	m.Viewport.SetContent(view.RenderHistory(m.Session.History(), m.Viewport.Width))
	m.Viewport.GotoBottom()
}

// handleNewLogEntry appends an entry to the activity log. Debug entries are
// only kept in debug mode.
func handleNewLogEntry(m *model.Model, msg model.NewLogEntryMsg) *model.Model {
	entry := msg.Entry

	if entry.Level >= logging.LevelInfo || m.DebugMode {
		logLine := fmt.Sprintf("%s [%s] [%s] %s",
			entry.Timestamp.Format("15:04:05.000"),
			entry.Level.String(),
			entry.Subsystem,
			entry.Message)

		if entry.Err != nil {
			logLine = fmt.Sprintf("%s -- Error: %v", logLine, entry.Err)
		}
		model.AddRawLineToActivityLog(m, logLine)
	}
	return m
}
