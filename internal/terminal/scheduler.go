package terminal

import (
	"container/heap"
	"time"

	"k8s.io/utils/clock"
)

// TimerID identifies a scheduled callback. The zero value never names a timer.
type TimerID uint64

// Step is one phase of a Sequence: fn runs delay after the sequence starts.
type Step struct {
	Delay time.Duration
	Fn    func()
}

type timer struct {
	id    TimerID
	due   time.Time
	seq   uint64
	fn    func()
	index int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler is a cancellable timer queue on virtual time. Callbacks run
// only from RunDue, in due order, ties broken by scheduling order.
//
// While a callback runs, delays scheduled from inside it are measured from
// that callback's due time rather than the clock, so a host that advances
// the clock in one large step still sees every repetition fire.
//
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	clock  clock.PassiveClock
	timers timerHeap
	byID   map[TimerID]*timer
	lastID TimerID
	seq    uint64

	firing   bool
	firingAt time.Time
}

// NewScheduler returns an empty scheduler reading time from clk.
func NewScheduler(clk clock.PassiveClock) *Scheduler {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Scheduler{
		clock: clk,
		byID:  make(map[TimerID]*timer),
	}
}

// Now is the scheduler's notion of the current time.
func (s *Scheduler) Now() time.Time {
	if s.firing {
		return s.firingAt
	}
	return s.clock.Now()
}

// After schedules fn to run d from now. A negative d is treated as zero.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	return s.at(s.Now().Add(d), fn)
}

func (s *Scheduler) at(due time.Time, fn func()) TimerID {
	s.lastID++
	s.seq++
	t := &timer{id: s.lastID, due: due, seq: s.seq, fn: fn}
	heap.Push(&s.timers, t)
	s.byID[t.id] = t
	return t.id
}

// Sequence schedules an ordered multi-phase effect. Every delay is
// relative to the same start time.
func (s *Scheduler) Sequence(steps ...Step) []TimerID {
	start := s.Now()
	ids := make([]TimerID, 0, len(steps))
	for _, step := range steps {
		d := step.Delay
		if d < 0 {
			d = 0
		}
		ids = append(ids, s.at(start.Add(d), step.Fn))
	}
	return ids
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	heap.Remove(&s.timers, t.index)
	return true
}

// CancelAll drops every pending timer and returns how many there were.
func (s *Scheduler) CancelAll() int {
	n := len(s.timers)
	for i := range s.timers {
		s.timers[i] = nil
	}
	s.timers = s.timers[:0]
	s.byID = make(map[TimerID]*timer)
	return n
}

// Pending returns the number of scheduled callbacks.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// NextDue returns the due time of the earliest pending callback.
func (s *Scheduler) NextDue() (time.Time, bool) {
	if len(s.timers) == 0 {
		return time.Time{}, false
	}
	return s.timers[0].due, true
}

// RunDue runs every callback due at or before the clock's current time,
// including those that become due while it runs, and returns how many ran.
func (s *Scheduler) RunDue() int {
	if s.firing {
		// Re-entrant call from a callback; the outer loop picks up the rest.
		return 0
	}
	now := s.clock.Now()
	ran := 0
	for len(s.timers) > 0 && !s.timers[0].due.After(now) {
		t := heap.Pop(&s.timers).(*timer)
		delete(s.byID, t.id)

		s.fire(t)
		ran++
	}
	return ran
}

func (s *Scheduler) fire(t *timer) {
	s.firing = true
	s.firingAt = t.due
	defer func() { s.firing = false }()
	t.fn()
}
