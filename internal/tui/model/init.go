package model

import (
	"nlterm/internal/storage"
	"nlterm/internal/terminal"
	"nlterm/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"k8s.io/utils/clock"
)

// KeyMap defines the keybindings for the application
type KeyMap struct {
	Open         key.Binding
	OpenElevated key.Binding
	Elevate      key.Binding
	Close        key.Binding
	Submit       key.Binding
	HistoryPrev  key.Binding
	HistoryNext  key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	Copy         key.Binding
	ToggleLog    key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Close, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.OpenElevated, k.Elevate, k.Close},
		{k.Submit, k.HistoryPrev, k.HistoryNext, k.Copy},
		{k.ScrollUp, k.ScrollDown, k.ToggleLog},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "open terminal"),
		),
		OpenElevated: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open elevated"),
		),
		Elevate: key.NewBinding(
			key.WithKeys("alt+n", "alt+N"),
			key.WithHelp("alt+n", "elevate"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close terminal"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run command"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous input"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next input"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy last output"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle log"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// Options configures a Model.
type Options struct {
	Terminal terminal.Options
	// SecretPhrase typed on the landing screen opens the terminal.
	SecretPhrase string
	LogChannel   <-chan logging.LogEntry
	Debug        bool
	// StartOpen opens the terminal immediately; StartElevated opens it in
	// elevated mode.
	StartOpen     bool
	StartElevated bool
}

// NewModel creates the model and its terminal session. The session's
// effects are routed through the model's EffectQueue.
func NewModel(opts Options) *Model {
	topts := opts.Terminal
	if topts.Clock == nil {
		topts.Clock = clock.RealClock{}
	}
	if topts.Store == nil {
		topts.Store = storage.NewMemoryStore()
	}
	// The privileged-page flag lives as long as this process, like a
	// browser tab's session storage.
	if topts.SessionStore == nil {
		topts.SessionStore = storage.NewMemoryStore()
	}
	queue := &EffectQueue{}
	topts.Effects = queue

	session := terminal.New(topts)

	phrase := opts.SecretPhrase
	if phrase == "" {
		phrase = terminal.DefaultSecretPhrase
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type 'help'"
	ti.CharLimit = 256

	vp := viewport.New(0, 0)
	logVp := viewport.New(0, 0)

	m := &Model{
		CurrentAppMode: ModeLanding,
		DebugMode:      opts.Debug,
		Session:        session,
		Secret:         terminal.NewSecretPhrase(phrase, session),
		Effects:        queue,
		SessionStore:   topts.SessionStore,
		Clock:          topts.Clock,
		Input:          ti,
		Viewport:       vp,
		Progress:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		Help:           help.New(),
		Keys:           DefaultKeyMap(),
		LogViewport:    logVp,
		LogChannel:     opts.LogChannel,
		ActivityLog:    []string{},
	}

	switch {
	case opts.StartElevated:
		session.OpenElevated()
	case opts.StartOpen:
		session.Open()
	}
	if session.State().IsOpen() {
		m.CurrentAppMode = ModeTerminal
		m.Input.Focus()
	}
	return m
}
