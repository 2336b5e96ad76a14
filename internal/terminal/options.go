package terminal

import (
	"math/rand/v2"
	"time"

	"nlterm/internal/storage"

	"k8s.io/utils/clock"
)

// Timings of the session's multi-phase effects.
const (
	BootDelay           = 80 * time.Millisecond
	TypewriterCharDelay = 40 * time.Millisecond
	TypewriterLineDelay = 60 * time.Millisecond
	TypewriterLines     = 3

	ElevateGlitch      = 300 * time.Millisecond
	ElevatedOpenDelay  = 300 * time.Millisecond
	LongPressThreshold = 1500 * time.Millisecond

	CloseLostDelay       = 200 * time.Millisecond
	CloseTerminatedDelay = 400 * time.Millisecond
	CloseDoneDelay       = 700 * time.Millisecond

	HackTick         = 200 * time.Millisecond
	HackMaxStep      = 15.0
	AccessGrantedFor = 3000 * time.Millisecond

	GitHubDelay     = 1000 * time.Millisecond
	ExitDelay       = 500 * time.Millisecond
	OmegaOverlayFor = 1500 * time.Millisecond

	RootRedirectNotice = 400 * time.Millisecond
	RootRedirectDelay  = 1200 * time.Millisecond
)

// Storage keys owned by the session.
const (
	KeyOperatorMode = "nl_operator_mode"
	KeyGodMode      = "godmode"
)

// GodModePath is where a granted root redirect navigates.
const GodModePath = "/godmode"

// SessionHost is what open and elevate triggers need from a session.
type SessionHost interface {
	OpenTerminal()
	ActivateElevated()
}

// Effects receives the side effects that leave the session. Calls are
// fire-and-forget and happen on the goroutine driving the session.
type Effects interface {
	OpenURL(url string)
	Navigate(path string)
	SessionClosed()
}

// EffectFuncs adapts plain functions to Effects. Nil fields are ignored.
type EffectFuncs struct {
	OnOpenURL  func(url string)
	OnNavigate func(path string)
	OnClosed   func()
}

func (e EffectFuncs) OpenURL(url string) {
	if e.OnOpenURL != nil {
		e.OnOpenURL(url)
	}
}

func (e EffectFuncs) Navigate(path string) {
	if e.OnNavigate != nil {
		e.OnNavigate(path)
	}
}

func (e EffectFuncs) SessionClosed() {
	if e.OnClosed != nil {
		e.OnClosed()
	}
}

// Observer is notified of session activity, for metrics.
type Observer interface {
	SessionOpened()
	SessionClosed()
	CommandExecuted(cmd Command)
	ElevatedActivated()
	HackCompleted(d time.Duration)
}

type nopObserver struct{}

func (nopObserver) SessionOpened()                {}
func (nopObserver) SessionClosed()                {}
func (nopObserver) CommandExecuted(Command)       {}
func (nopObserver) ElevatedActivated()            {}
func (nopObserver) HackCompleted(d time.Duration) {}

// Rand is the source of the hack progress increments.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Options configures a Session.
type Options struct {
	// Clock drives the scheduler. Defaults to the wall clock.
	Clock clock.PassiveClock
	// Store is the persistent local store holding the operator flag.
	Store storage.Store
	// SessionStore receives the privileged-page flag. Defaults to Store.
	SessionStore storage.Store
	// Visitors is read by the visits command. Defaults to Store.
	Visitors storage.Store
	Effects  Effects
	Rand     Rand
	Observer Observer
	Profile  Profile
	// Typewriter types the first boot lines on the first open.
	Typewriter bool
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clock.RealClock{}
	}
	if o.Store == nil {
		o.Store = storage.NewMemoryStore()
	}
	if o.SessionStore == nil {
		o.SessionStore = o.Store
	}
	if o.Visitors == nil {
		o.Visitors = o.Store
	}
	if o.Effects == nil {
		o.Effects = EffectFuncs{}
	}
	if o.Rand == nil {
		o.Rand = globalRand{}
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	if o.Profile.Name == "" {
		o.Profile = DefaultProfile()
	}
	return o
}
