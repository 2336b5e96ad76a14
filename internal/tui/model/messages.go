package model

import (
	"time"

	"nlterm/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the controller to run the session callbacks due at Due.
type TickMsg struct {
	Due time.Time
}

// NewLogEntryMsg carries a log entry from the logging channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// ClearStatusBarMsg clears the status bar message.
type ClearStatusBarMsg struct{}

// ClipboardResultMsg reports the outcome of a clipboard write.
type ClipboardResultMsg struct {
	Text string
	Err  error
}

// ListenForLogEntriesCmd waits for the next log entry. It returns nil once
// the channel is closed, which stops the listener.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}
