package terminal

import (
	"context"
	"errors"
	"time"

	"nlterm/pkg/logging"

	"k8s.io/utils/clock"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("terminal loop stopped")

const inboxSize = 16

// Loop drives a Session on its own goroutine in real time. Requests are
// serialised through an inbox, due callbacks fire from a timer armed for
// the session's next deadline, and a Snapshot is published whenever the
// session changes. Only the newest unread snapshot is kept.
type Loop struct {
	session   *Session
	clock     clock.Clock
	inbox     chan func(*Session)
	snapshots chan Snapshot
	done      chan struct{}
}

// NewLoop creates a loop around a new session. The session reads time from
// clk, which also arms the loop's timers.
func NewLoop(clk clock.Clock, opts Options) *Loop {
	if clk == nil {
		clk = clock.RealClock{}
	}
	opts.Clock = clk
	return &Loop{
		session:   New(opts),
		clock:     clk,
		inbox:     make(chan func(*Session), inboxSize),
		snapshots: make(chan Snapshot, 1),
		done:      make(chan struct{}),
	}
}

// SessionID returns the id of the driven session.
func (l *Loop) SessionID() string { return l.session.ID() }

// Snapshots delivers session snapshots. It is closed when Run returns.
func (l *Loop) Snapshots() <-chan Snapshot { return l.snapshots }

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Do runs fn on the loop goroutine. It does not wait for fn to finish.
func (l *Loop) Do(ctx context.Context, fn func(*Session)) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.inbox <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the session until ctx is cancelled, then tears it down.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer close(l.snapshots)

	s := l.session
	published := ^uint64(0)
	publish := func() {
		if s.Version() == published {
			return
		}
		published = s.Version()
		snap := s.Snapshot()
		select {
		case l.snapshots <- snap:
		default:
			// Replace the unread snapshot; Run is the only sender.
			select {
			case <-l.snapshots:
			default:
			}
			l.snapshots <- snap
		}
	}

	var t clock.Timer
	var timerC <-chan time.Time
	arm := func() {
		if t != nil {
			t.Stop()
			t, timerC = nil, nil
		}
		due, ok := s.NextDue()
		if !ok {
			return
		}
		d := due.Sub(l.clock.Now())
		if d < 0 {
			d = 0
		}
		t = l.clock.NewTimer(d)
		timerC = t.C()
	}
	defer func() {
		if t != nil {
			t.Stop()
		}
	}()

	logging.Debug(terminalSubsystem, "Loop for session %s started", s.ID())
	publish()
	for {
		select {
		case <-ctx.Done():
			s.Teardown()
			publish()
			logging.Debug(terminalSubsystem, "Loop for session %s stopped", s.ID())
			return nil
		case fn := <-l.inbox:
			fn(s)
			s.Tick()
		case <-timerC:
			s.Tick()
		}
		publish()
		arm()
	}
}
