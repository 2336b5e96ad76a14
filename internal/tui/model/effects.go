package model

// EffectKind identifies a side effect emitted by the terminal session.
type EffectKind int

const (
	EffectOpenURL EffectKind = iota
	EffectNavigate
	EffectSessionClosed
)

// Effect is one queued side effect.
type Effect struct {
	Kind EffectKind
	// Target is the URL or path, empty for EffectSessionClosed.
	Target string
}

// EffectQueue collects session effects during an Update so the controller
// can turn them into commands afterwards. It implements terminal.Effects.
type EffectQueue struct {
	pending []Effect
}

func (q *EffectQueue) OpenURL(url string) {
	q.pending = append(q.pending, Effect{Kind: EffectOpenURL, Target: url})
}

func (q *EffectQueue) Navigate(path string) {
	q.pending = append(q.pending, Effect{Kind: EffectNavigate, Target: path})
}

func (q *EffectQueue) SessionClosed() {
	q.pending = append(q.pending, Effect{Kind: EffectSessionClosed})
}

// Drain returns and clears the queued effects in emission order.
func (q *EffectQueue) Drain() []Effect {
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of queued effects.
func (q *EffectQueue) Len() int { return len(q.pending) }
