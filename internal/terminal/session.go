package terminal

import (
	"strings"
	"time"

	"nlterm/pkg/logging"

	"github.com/google/uuid"
)

const terminalSubsystem = "Terminal"

// Closing phase captions, shown while the session is in StateClosing.
const (
	CaptionTerminating = "TERMINATING..."
	CaptionLost        = "CONNECTION LOST"
	CaptionTerminated  = "SIGNAL TERMINATED"
)

// Session is one terminal overlay: its lifecycle, history and pending effects.
// It is not safe for concurrent use; see Loop.
type Session struct {
	id    string
	opts  Options
	sched *Scheduler

	state   State
	mode    Mode
	history []Line
	caption string
	booted  bool
	version uint64

	transitioning bool
	omegaActive   bool
	rootGranted   bool
	admin         bool

	hacking       bool
	hackProgress  float64
	hackStarted   time.Time
	accessGranted bool

	pressTimer TimerID
}

// New creates a closed session.
func New(opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		id:    uuid.NewString(),
		opts:  opts,
		sched: NewScheduler(opts.Clock),
	}
}

// ID identifies the session in logs and metrics.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Mode returns the current sub-mode.
func (s *Session) Mode() Mode { return s.mode }

// Version increases on every observable change.
func (s *Session) Version() uint64 { return s.version }

// Caption is the closing phase text, empty unless closing.
func (s *Session) Caption() string { return s.caption }

// HackProgress returns the progress of the current or last hack run.
func (s *Session) HackProgress() float64 { return s.hackProgress }

// Hacking reports whether a hack run is in flight.
func (s *Session) Hacking() bool { return s.hacking }

// History returns a copy of the line history.
func (s *Session) History() []Line {
	out := make([]Line, len(s.history))
	copy(out, s.history)
	return out
}

// Pending returns the number of scheduled callbacks.
func (s *Session) Pending() int { return s.sched.Pending() }

// NextDue returns when the next scheduled callback is due.
func (s *Session) NextDue() (time.Time, bool) { return s.sched.NextDue() }

// Tick runs every callback that is due and returns how many ran.
func (s *Session) Tick() int { return s.sched.RunDue() }

// InputEnabled reports whether Submit would accept a line.
func (s *Session) InputEnabled() bool {
	return s.state == StateReady &&
		!s.transitioning &&
		!s.omegaActive &&
		!s.hacking &&
		!s.rootGranted
}

func (s *Session) touch() { s.version++ }

func (s *Session) appendLines(lines ...Line) {
	s.history = append(s.history, lines...)
	s.touch()
}

func (s *Session) resetTransient() {
	s.transitioning = false
	s.omegaActive = false
	s.rootGranted = false
	s.admin = false
	s.hacking = false
	s.accessGranted = false
	s.pressTimer = 0
}

// OpenTerminal implements SessionHost.
func (s *Session) OpenTerminal() { s.Open() }

// Open starts the boot sequence. It is a no-op unless the session is closed.
func (s *Session) Open() {
	if s.state != StateClosed {
		return
	}
	first := !s.booted
	s.booted = true

	s.resetTransient()
	s.state = StateBooting
	s.mode = ModeNormal
	s.caption = ""
	s.history = nil
	s.hackProgress = 0
	s.touch()
	s.opts.Observer.SessionOpened()
	logging.Debug(terminalSubsystem, "Session %s opening (first=%t)", s.id, first)

	typewriter := first && s.opts.Typewriter
	if first {
		s.sched.After(BootDelay, func() { s.boot(typewriter) })
		return
	}
	s.boot(false)
}

// OpenElevated opens the session and activates elevated mode shortly after.
func (s *Session) OpenElevated() {
	s.Open()
	if s.state.IsOpen() {
		s.sched.After(ElevatedOpenDelay, s.ActivateElevated)
	}
}

func (s *Session) boot(typewriter bool) {
	var lines []Line
	if v, _ := s.opts.Store.Get(KeyOperatorMode); v == "true" {
		lines = returningBootLines(s.sched.Now())
	} else {
		lines = firstBootLines(s.opts.Profile)
		if err := s.opts.Store.Set(KeyOperatorMode, "true"); err != nil {
			logging.Warn(terminalSubsystem, "Failed to persist operator flag: %v", err)
		}
	}

	if !typewriter {
		s.appendLines(lines...)
		s.ready()
		return
	}
	s.typeLines(lines, 0)
}

// typeLines types the first TypewriterLines lines rune by rune, then
// appends the remainder at once and finishes the boot.
func (s *Session) typeLines(lines []Line, idx int) {
	if idx >= min(len(lines), TypewriterLines) {
		s.appendLines(lines[idx:]...)
		s.ready()
		return
	}

	runes := []rune(lines[idx].Text)
	s.appendLines(Line{Kind: lines[idx].Kind})
	pos := len(s.history) - 1

	var typeRune func(n int)
	typeRune = func(n int) {
		if n >= len(runes) {
			s.sched.After(TypewriterLineDelay, func() { s.typeLines(lines, idx+1) })
			return
		}
		s.history[pos].Text = string(runes[:n+1])
		s.touch()
		s.sched.After(TypewriterCharDelay, func() { typeRune(n + 1) })
	}
	typeRune(0)
}

func (s *Session) ready() {
	s.state = StateReady
	s.touch()
	logging.Debug(terminalSubsystem, "Session %s ready", s.id)
}

// ActivateElevated plays the glitch transition into elevated mode. It only
// acts while the session is open, in normal mode and not already transitioning.
func (s *Session) ActivateElevated() {
	if !s.state.IsOpen() || s.mode == ModeElevated || s.transitioning {
		return
	}
	s.transitioning = true
	s.touch()
	s.sched.After(ElevateGlitch, func() {
		s.transitioning = false
		s.mode = ModeElevated
		s.appendLines(elevatedLines()...)
		s.opts.Observer.ElevatedActivated()
		logging.Debug(terminalSubsystem, "Session %s elevated", s.id)
	})
}

// PressStart begins a long press; holding it for LongPressThreshold
// activates elevated mode.
func (s *Session) PressStart() {
	if !s.state.IsOpen() {
		return
	}
	if s.pressTimer != 0 {
		s.sched.Cancel(s.pressTimer)
	}
	s.pressTimer = s.sched.After(LongPressThreshold, func() {
		s.pressTimer = 0
		s.ActivateElevated()
	})
}

// PressEnd releases a long press. A press released early does nothing.
func (s *Session) PressEnd() {
	if s.pressTimer == 0 {
		return
	}
	s.sched.Cancel(s.pressTimer)
	s.pressTimer = 0
}

// Close cancels every pending effect and plays the closing phases. It is a
// no-op unless the session is booting or ready. History is kept until the
// next Open.
func (s *Session) Close() {
	if !s.state.IsOpen() {
		return
	}
	cancelled := s.sched.CancelAll()
	s.resetTransient()
	s.state = StateClosing
	s.caption = CaptionTerminating
	s.touch()
	logging.Debug(terminalSubsystem, "Session %s closing, cancelled %d pending timers", s.id, cancelled)

	s.sched.Sequence(
		Step{Delay: CloseLostDelay, Fn: func() { s.setCaption(CaptionLost) }},
		Step{Delay: CloseTerminatedDelay, Fn: func() { s.setCaption(CaptionTerminated) }},
		Step{Delay: CloseDoneDelay, Fn: s.finishClose},
	)
}

func (s *Session) setCaption(c string) {
	s.caption = c
	s.touch()
}

func (s *Session) finishClose() {
	s.state = StateClosed
	s.mode = ModeNormal
	s.caption = ""
	s.touch()
	s.opts.Observer.SessionClosed()
	logging.Debug(terminalSubsystem, "Session %s closed", s.id)
	s.opts.Effects.SessionClosed()
}

// Teardown forces the session closed without the closing phases and drops
// every pending callback. Effects are not notified.
func (s *Session) Teardown() {
	s.sched.CancelAll()
	wasActive := s.state != StateClosed
	s.resetTransient()
	s.state = StateClosed
	s.mode = ModeNormal
	s.caption = ""
	s.touch()
	if wasActive {
		s.opts.Observer.SessionClosed()
		logging.Debug(terminalSubsystem, "Session %s torn down", s.id)
	}
}

// Submit is the user input path: it rejects blank lines and input while
// the session is gated, echoes the line, then executes it.
func (s *Session) Submit(raw string) bool {
	if strings.TrimSpace(raw) == "" || !s.InputEnabled() {
		return false
	}
	s.appendLines(Line{Kind: LineInput, Text: "> " + raw})
	s.Execute(raw)
	return true
}

// Snapshot is an immutable copy of everything a host renders.
type Snapshot struct {
	ID            string  `json:"id"`
	Version       uint64  `json:"version"`
	State         State   `json:"state"`
	Mode          Mode    `json:"mode"`
	History       []Line  `json:"history"`
	Caption       string  `json:"caption,omitempty"`
	InputEnabled  bool    `json:"inputEnabled"`
	Transitioning bool    `json:"transitioning"`
	OmegaActive   bool    `json:"omegaActive"`
	Hacking       bool    `json:"hacking"`
	HackProgress  float64 `json:"hackProgress"`
	AccessGranted bool    `json:"accessGranted"`
	RootGranted   bool    `json:"rootGranted"`
	Admin         bool    `json:"admin"`
}

// Snapshot copies the renderable state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:            s.id,
		Version:       s.version,
		State:         s.state,
		Mode:          s.mode,
		History:       s.History(),
		Caption:       s.caption,
		InputEnabled:  s.InputEnabled(),
		Transitioning: s.transitioning,
		OmegaActive:   s.omegaActive,
		Hacking:       s.hacking,
		HackProgress:  s.hackProgress,
		AccessGranted: s.accessGranted,
		RootGranted:   s.rootGranted,
		Admin:         s.admin,
	}
}
