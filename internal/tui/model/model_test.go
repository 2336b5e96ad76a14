package model

import (
	"fmt"
	"testing"
	"time"

	"nlterm/internal/storage"
	"nlterm/internal/terminal"
	"nlterm/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

var testStart = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newFakeModel(opts Options) (*Model, *testingclock.FakeClock) {
	fc := testingclock.NewFakeClock(testStart)
	opts.Terminal.Clock = fc
	return NewModel(opts), fc
}

func TestNewModel_Defaults(t *testing.T) {
	m, _ := newFakeModel(Options{})

	assert.Equal(t, ModeLanding, m.CurrentAppMode)
	assert.Equal(t, terminal.StateClosed, m.Session.State())
	assert.NotNil(t, m.SessionStore)
	assert.NotNil(t, m.Effects)
	assert.False(t, m.Input.Focused())
	assert.Nil(t, m.ScheduleTick(), "closed session has nothing to tick")
}

func TestNewModel_SessionStoreIsProcessScoped(t *testing.T) {
	store := storage.NewMemoryStore()
	m, _ := newFakeModel(Options{Terminal: terminal.Options{Store: store}})
	assert.NotSame(t, store, m.SessionStore)

	session := storage.NewMemoryStore()
	m, _ = newFakeModel(Options{Terminal: terminal.Options{Store: store, SessionStore: session}})
	assert.Same(t, session, m.SessionStore)
}

func TestNewModel_StartOpen(t *testing.T) {
	m, _ := newFakeModel(Options{StartOpen: true})

	assert.Equal(t, ModeTerminal, m.CurrentAppMode)
	assert.Equal(t, terminal.StateBooting, m.Session.State())
	assert.True(t, m.Input.Focused())
}

func TestNewModel_StartElevated(t *testing.T) {
	m, fc := newFakeModel(Options{StartElevated: true})
	require.Equal(t, ModeTerminal, m.CurrentAppMode)

	fc.Step(terminal.ElevatedOpenDelay + terminal.ElevateGlitch)
	m.Session.Tick()
	assert.Equal(t, terminal.ModeElevated, m.Session.Mode())
}

func TestModel_ScheduleTick(t *testing.T) {
	m, fc := newFakeModel(Options{StartOpen: true})

	require.NotNil(t, m.ScheduleTick())
	assert.Equal(t, testStart.Add(terminal.BootDelay), m.ArmedDue())

	assert.Nil(t, m.ScheduleTick(), "same deadline is not armed twice")

	m.TickFired(TickMsg{Due: testStart})
	assert.Equal(t, testStart.Add(terminal.BootDelay), m.ArmedDue(), "earlier tick leaves the armed one")

	fc.Step(terminal.BootDelay)
	m.TickFired(TickMsg{Due: fc.Now()})
	assert.True(t, m.ArmedDue().IsZero())
}

func TestModel_SessionChanged(t *testing.T) {
	m, _ := newFakeModel(Options{})
	m.SessionChanged()

	assert.False(t, m.SessionChanged())
	m.Session.Open()
	assert.True(t, m.SessionChanged())
	assert.False(t, m.SessionChanged())
}

func TestModel_InputHistory(t *testing.T) {
	m, _ := newFakeModel(Options{})

	_, ok := m.RecallInput(-1)
	assert.False(t, ok)

	m.PushInputHistory("help")
	m.PushInputHistory("about")
	m.PushInputHistory("about")
	assert.Equal(t, []string{"help", "about"}, m.InputHistory)

	steps := []struct {
		delta int
		want  string
	}{
		{-1, "about"},
		{-1, "help"},
		{-1, "help"},
		{1, "about"},
		{1, ""},
	}
	for _, s := range steps {
		line, ok := m.RecallInput(s.delta)
		require.True(t, ok)
		assert.Equal(t, s.want, line)
	}
}

func TestModel_InputHistoryCap(t *testing.T) {
	m, _ := newFakeModel(Options{})
	for i := 0; i < MaxInputHistory+5; i++ {
		m.PushInputHistory(fmt.Sprintf("cmd %d", i))
	}
	assert.Len(t, m.InputHistory, MaxInputHistory)
	assert.Equal(t, "cmd 5", m.InputHistory[0])
}

func TestModel_StatusMessage(t *testing.T) {
	m, _ := newFakeModel(Options{})

	cmd := m.SetStatusMessage("first", StatusBarInfo, time.Millisecond)
	require.NotNil(t, cmd)
	firstCancel := m.StatusBarClearCancel

	m.SetStatusMessage("second", StatusBarError, time.Hour)
	assert.Equal(t, "second", m.StatusBarMessage)
	assert.Equal(t, StatusBarError, m.StatusBarMessageType)

	select {
	case <-firstCancel:
	default:
		t.Fatal("replacing a message should cancel the previous clear")
	}
	assert.Nil(t, cmd(), "cancelled clear produces no message")

	m.ClearStatusMessage()
	assert.Empty(t, m.StatusBarMessage)
	assert.Nil(t, m.StatusBarClearCancel)
}

func TestEffectQueue(t *testing.T) {
	q := &EffectQueue{}
	var effects terminal.Effects = q

	effects.OpenURL("https://github.com")
	effects.Navigate(terminal.GodModePath)
	effects.SessionClosed()
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, []Effect{
		{Kind: EffectOpenURL, Target: "https://github.com"},
		{Kind: EffectNavigate, Target: terminal.GodModePath},
		{Kind: EffectSessionClosed},
	}, q.Drain())
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Drain())
}

func TestAddRawLineToActivityLog(t *testing.T) {
	m, _ := newFakeModel(Options{})
	for i := 0; i < MaxActivityLogLines+10; i++ {
		AddRawLineToActivityLog(m, fmt.Sprintf("line %d", i))
	}
	assert.Len(t, m.ActivityLog, MaxActivityLogLines)
	assert.Equal(t, "line 10", m.ActivityLog[0])
	assert.True(t, m.ActivityLogDirty)
}

func TestListenForLogEntriesCmd(t *testing.T) {
	assert.Nil(t, ListenForLogEntriesCmd(nil))

	ch := make(chan logging.LogEntry, 1)
	ch <- logging.LogEntry{Subsystem: "Test", Message: "hello"}
	msg := ListenForLogEntriesCmd(ch)()
	entryMsg, ok := msg.(NewLogEntryMsg)
	require.True(t, ok)
	assert.Equal(t, "hello", entryMsg.Entry.Message)

	close(ch)
	assert.Nil(t, ListenForLogEntriesCmd(ch)())
}

func TestKeyMap_Help(t *testing.T) {
	keys := DefaultKeyMap()
	assert.Len(t, keys.ShortHelp(), 4)

	var n int
	for _, col := range keys.FullHelp() {
		n += len(col)
	}
	assert.Equal(t, 14, n)
	assert.Equal(t, "ctrl+t", keys.Open.Help().Key)
}

func TestAppMode_String(t *testing.T) {
	assert.Equal(t, "Landing", ModeLanding.String())
	assert.Equal(t, "GodMode", ModeGodMode.String())
	assert.Equal(t, "Unknown", AppMode(42).String())
}

func TestModel_Init(t *testing.T) {
	ch := make(chan logging.LogEntry)
	m, _ := newFakeModel(Options{LogChannel: ch, StartOpen: true})
	var cmd tea.Cmd = m.Init()
	assert.NotNil(t, cmd)
	assert.False(t, m.ArmedDue().IsZero())
}
