package visitor

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"nlterm/internal/storage"
	"nlterm/pkg/logging"

	"github.com/bytedance/sonic"
	"k8s.io/utils/clock"
)

const visitorSubsystem = "Visitor"

// Storage keys.
const (
	KeyVisits      = "nl_visits"
	KeyTotalVisits = "nl_total_visits"
	KeyFirstVisit  = "nl_first_visit"
	KeyLastVisit   = "nl_last_visit"
)

// MaxVisits caps the recent visit list.
const MaxVisits = 100

// Device classes.
const (
	DeviceDesktop = "Desktop"
	DeviceMobile  = "Mobile"
)

const (
	dateLayout = "Mon, 2 Jan 2006"
	timeLayout = "15:04:05"
)

var mobileUA = regexp.MustCompile(`(?i)Mobile|Android|iPhone`)

// Visit is one recorded page load.
type Visit struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp"`
	Device    string `json:"device"`
	Screen    string `json:"screen"`
}

// Log is the read-only view of the visit bookkeeping.
type Log struct {
	Total  int       `json:"total"`
	First  time.Time `json:"first"`
	Last   time.Time `json:"last"`
	Recent []Visit   `json:"recent"`
}

// RecentN returns at most n of the newest visits.
func (l Log) RecentN(n int) []Visit {
	if n >= len(l.Recent) {
		return l.Recent
	}
	return l.Recent[:n]
}

// DeviceFromUserAgent classifies a user agent string as Mobile or Desktop.
func DeviceFromUserAgent(ua string) string {
	if mobileUA.MatchString(ua) {
		return DeviceMobile
	}
	return DeviceDesktop
}

// Screen formats a viewport size the way the visit log stores it.
func Screen(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// Load reads the visit log from store.
func Load(store storage.Store) Log {
	var log Log

	if raw, ok := store.Get(KeyTotalVisits); ok {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			log.Total = n
		}
	}
	log.First = parseTime(store, KeyFirstVisit)
	log.Last = parseTime(store, KeyLastVisit)
	log.Recent = loadVisits(store)
	return log
}

func parseTime(store storage.Store, key string) time.Time {
	raw, ok := store.Get(key)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func loadVisits(store storage.Store) []Visit {
	raw, ok := store.Get(KeyVisits)
	if !ok || raw == "" {
		return nil
	}
	var visits []Visit
	if err := sonic.UnmarshalString(raw, &visits); err != nil {
		logging.Debug(visitorSubsystem, "Ignoring malformed %s: %v", KeyVisits, err)
		return nil
	}
	return visits
}

// Recorder appends visits to a store.
type Recorder struct {
	store storage.Store
	clock clock.PassiveClock
}

// NewRecorder creates a Recorder. A nil clock uses the wall clock.
func NewRecorder(store storage.Store, clk clock.PassiveClock) *Recorder {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Recorder{store: store, clock: clk}
}

// Record stores a visit for the current time and returns it.
// Concurrent recorders may lose updates; the counters are cosmetic.
func (r *Recorder) Record(device, screen string) (Visit, error) {
	now := r.clock.Now()
	visit := Visit{
		ID:        now.UnixMilli(),
		Date:      now.Format(dateLayout),
		Time:      now.Format(timeLayout),
		Timestamp: now.UnixMilli(),
		Device:    device,
		Screen:    screen,
	}

	visits := append([]Visit{visit}, loadVisits(r.store)...)
	if len(visits) > MaxVisits {
		visits = visits[:MaxVisits]
	}
	encoded, err := sonic.MarshalString(visits)
	if err != nil {
		return Visit{}, fmt.Errorf("failed to encode visits: %w", err)
	}
	if err := r.store.Set(KeyVisits, encoded); err != nil {
		return Visit{}, fmt.Errorf("failed to store visits: %w", err)
	}

	total := Load(r.store).Total + 1
	if err := r.store.Set(KeyTotalVisits, strconv.Itoa(total)); err != nil {
		return Visit{}, fmt.Errorf("failed to store visit count: %w", err)
	}

	stamp := now.UTC().Format(time.RFC3339Nano)
	if _, ok := r.store.Get(KeyFirstVisit); !ok {
		if err := r.store.Set(KeyFirstVisit, stamp); err != nil {
			return Visit{}, fmt.Errorf("failed to store first visit: %w", err)
		}
	}
	if err := r.store.Set(KeyLastVisit, stamp); err != nil {
		return Visit{}, fmt.Errorf("failed to store last visit: %w", err)
	}

	logging.Info(visitorSubsystem, "Visit #%d recorded at %s on %s", total, visit.Time, visit.Date)
	return visit, nil
}
