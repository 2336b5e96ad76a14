package model

import (
	"time"

	"nlterm/internal/storage"
	"nlterm/internal/terminal"
	"nlterm/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/utils/clock"
)

// AppMode represents the current screen of the application.
type AppMode int

const (
	// ModeLanding is the idle screen before the terminal is opened.
	ModeLanding AppMode = iota
	// ModeTerminal shows the terminal window while a session is open or closing.
	ModeTerminal
	// ModeGodMode is the privileged page reached through a granted root redirect.
	ModeGodMode
	// ModeQuitting is set right before the program exits.
	ModeQuitting
)

// String returns a human-readable representation of the AppMode
func (m AppMode) String() string {
	switch m {
	case ModeLanding:
		return "Landing"
	case ModeTerminal:
		return "Terminal"
	case ModeGodMode:
		return "GodMode"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

const (
	// MaxActivityLogLines bounds the in-memory application log.
	MaxActivityLogLines = 1000
	// MaxInputHistory bounds the recalled input lines.
	MaxInputHistory = 50
	// StatusMessageTimeout is how long transient status messages stay visible.
	StatusMessageTimeout = 4 * time.Second
)

// Model is the bubbletea model. The terminal session is driven directly
// from Update, so every session call happens on the program goroutine.
type Model struct {
	// Application state
	CurrentAppMode AppMode
	Width          int
	Height         int
	DebugMode      bool
	ShowLog        bool
	ShowHelp       bool
	QuitApp        bool

	// Terminal session
	Session      *terminal.Session
	Secret       *terminal.SecretPhrase
	Effects      *EffectQueue
	SessionStore storage.Store
	Clock        clock.PassiveClock

	// lastVersion is the session version last rendered into the viewport.
	lastVersion uint64
	// armedDue is the deadline of the outstanding tick, zero when none.
	armedDue time.Time

	// UI components
	Input    textinput.Model
	Viewport viewport.Model
	Progress progress.Model
	Help     help.Model
	Keys     KeyMap

	// Input recall
	InputHistory []string
	historyIndex int

	// Activity log
	ActivityLog      []string
	ActivityLogDirty bool
	LogViewport      viewport.Model
	LogChannel       <-chan logging.LogEntry

	// Status bar
	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	// LastCopied is the text most recently placed on the clipboard.
	LastCopied string
}

// Init starts the log listener and, when the session was opened at
// construction, the first scheduler tick.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, textinput.Blink)
	if m.LogChannel != nil {
		cmds = append(cmds, ListenForLogEntriesCmd(m.LogChannel))
	}
	if cmd := m.ScheduleTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// ScheduleTick arms a tea.Tick for the session's next deadline. A tick is
// only re-armed when the deadline moved earlier than the outstanding one.
func (m *Model) ScheduleTick() tea.Cmd {
	due, ok := m.Session.NextDue()
	if !ok {
		return nil
	}
	if !m.armedDue.IsZero() && !due.Before(m.armedDue) {
		return nil
	}
	m.armedDue = due
	d := due.Sub(m.Clock.Now())
	if d < 0 {
		d = 0
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{Due: due}
	})
}

// TickFired clears the outstanding tick once a tick at or after its
// deadline arrives. Ticks for earlier deadlines leave it armed.
func (m *Model) TickFired(msg TickMsg) {
	if !msg.Due.Before(m.armedDue) {
		m.armedDue = time.Time{}
	}
}

// ArmedDue returns the deadline of the outstanding tick.
func (m *Model) ArmedDue() time.Time { return m.armedDue }

// SessionChanged reports whether the session moved past the last rendered
// version and records the new version.
func (m *Model) SessionChanged() bool {
	v := m.Session.Version()
	if v == m.lastVersion {
		return false
	}
	m.lastVersion = v
	return true
}

// PushInputHistory records a submitted line for recall.
func (m *Model) PushInputHistory(line string) {
	if n := len(m.InputHistory); n == 0 || m.InputHistory[n-1] != line {
		m.InputHistory = append(m.InputHistory, line)
		if len(m.InputHistory) > MaxInputHistory {
			m.InputHistory = m.InputHistory[len(m.InputHistory)-MaxInputHistory:]
		}
	}
	m.historyIndex = len(m.InputHistory)
}

// RecallInput moves through the input history. delta is -1 for older and
// +1 for newer; moving past the newest entry yields an empty line.
func (m *Model) RecallInput(delta int) (string, bool) {
	if len(m.InputHistory) == 0 {
		return "", false
	}
	idx := m.historyIndex + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.InputHistory) {
		m.historyIndex = len(m.InputHistory)
		return "", true
	}
	m.historyIndex = idx
	return m.InputHistory[idx], true
}

// SetStatusMessage updates the status bar message
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// ClearStatusMessage removes the status bar message.
func (m *Model) ClearStatusMessage() {
	m.StatusBarMessage = ""
	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
		m.StatusBarClearCancel = nil
	}
}
