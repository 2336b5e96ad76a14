package terminal

// LineKind classifies a history line for rendering.
type LineKind int

const (
	LineInput LineKind = iota
	LineOutput
	LineError
	LineSuccess
	LineBanner
)

// String makes LineKind satisfy the fmt.Stringer interface.
func (k LineKind) String() string {
	switch k {
	case LineInput:
		return "input"
	case LineOutput:
		return "output"
	case LineError:
		return "error"
	case LineSuccess:
		return "success"
	case LineBanner:
		return "banner"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Line is one entry of the session history. Text may span several rows.
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
}

// State is the lifecycle state of a Session.
type State int

const (
	StateClosed State = iota
	StateBooting
	StateReady
	StateClosing
)

// String makes State satisfy the fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateBooting:
		return "booting"
	case StateReady:
		return "ready"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsOpen reports whether the overlay is visible and accepting gestures.
func (s State) IsOpen() bool {
	return s == StateBooting || s == StateReady
}

// Mode is the sub-mode of an open session.
type Mode int

const (
	ModeNormal Mode = iota
	ModeElevated
)

// String makes Mode satisfy the fmt.Stringer interface.
func (m Mode) String() string {
	if m == ModeElevated {
		return "elevated"
	}
	return "normal"
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
