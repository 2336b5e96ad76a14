package mcpserver

import (
	"errors"
	"time"

	"nlterm/internal/storage"
	"nlterm/internal/terminal"
)

// maxSettleSteps bounds the callbacks run while settling one command.
const maxSettleSteps = 10000

var errNoCommands = errors.New("at least one command is required")

// Script is a list of commands to type into a fresh session.
type Script struct {
	Commands []string
	Elevated bool
}

// Step is the outcome of one scripted command.
type Step struct {
	Command string `json:"command"`
	// Accepted is false when the session ignored the input, for example
	// after it closed.
	Accepted bool            `json:"accepted"`
	Output   []terminal.Line `json:"output"`
	Effects  []string        `json:"effects,omitempty"`
}

// Transcript is the record of a scripted session.
type Transcript struct {
	SessionID string          `json:"sessionId"`
	Boot      []terminal.Line `json:"boot"`
	Steps     []Step          `json:"steps"`
	State     terminal.State  `json:"state"`
	Mode      terminal.Mode   `json:"mode"`
	// Elapsed is the virtual time the script took.
	Elapsed time.Duration `json:"elapsedNs"`
}

// virtualClock only moves when the runner advances it.
type virtualClock struct {
	now time.Time
}

func (c *virtualClock) Now() time.Time                  { return c.now }
func (c *virtualClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

// RunScript opens a session, boots it and submits each command, letting
// every scheduled effect play out before the next one. opts.Store is
// replaced by a scratch copy so scripted runs leave no operator flag behind.
func RunScript(opts terminal.Options, script Script, start time.Time) (Transcript, error) {
	if len(script.Commands) == 0 {
		return Transcript{}, errNoCommands
	}

	clk := &virtualClock{now: start}
	var effects []string
	opts.Clock = clk
	opts.Typewriter = false
	if opts.Visitors == nil {
		opts.Visitors = opts.Store
	}
	opts.Store = storage.NewMemoryStore()
	opts.SessionStore = storage.NewMemoryStore()
	opts.Effects = terminal.EffectFuncs{
		OnOpenURL:  func(url string) { effects = append(effects, "open_url "+url) },
		OnNavigate: func(path string) { effects = append(effects, "navigate "+path) },
		OnClosed:   func() { effects = append(effects, "closed") },
	}

	s := terminal.New(opts)
	if script.Elevated {
		s.OpenElevated()
	} else {
		s.Open()
	}
	settle(s, clk)

	tr := Transcript{
		SessionID: s.ID(),
		Boot:      s.History(),
	}
	for _, raw := range script.Commands {
		before := s.History()
		effects = nil
		accepted := s.Submit(raw)
		settle(s, clk)
		tr.Steps = append(tr.Steps, Step{
			Command:  raw,
			Accepted: accepted,
			Output:   appended(before, s.History()),
			Effects:  effects,
		})
	}
	tr.State = s.State()
	tr.Mode = s.Mode()
	tr.Elapsed = clk.now.Sub(start)
	return tr, nil
}

// settle jumps the clock from deadline to deadline until nothing is pending.
func settle(s *terminal.Session, clk *virtualClock) {
	for i := 0; i < maxSettleSteps; i++ {
		due, ok := s.NextDue()
		if !ok {
			return
		}
		if due.After(clk.now) {
			clk.now = due
		}
		s.Tick()
	}
}

// appended returns what after added to before. A replaced history (clear,
// reopen) is returned whole.
func appended(before, after []terminal.Line) []terminal.Line {
	if len(after) < len(before) {
		return after
	}
	for i := range before {
		if before[i] != after[i] {
			return after
		}
	}
	return after[len(before):]
}
