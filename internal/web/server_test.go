package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nlterm/internal/metrics"
	"nlterm/internal/storage"
	"nlterm/internal/visitor"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

var testStart = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T, cfg Config) (*Server, *storage.MemoryStore, *metrics.Metrics) {
	t.Helper()
	store := storage.NewMemoryStore()
	m := metrics.New()
	cfg.Store = store
	cfg.Metrics = m
	return NewServer(cfg), store, m
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRoot_RecordsVisit(t *testing.T) {
	fc := testingclock.NewFakeClock(testStart)
	s, store, m := newTestServer(t, Config{Clock: fc})

	req := httptest.NewRequest(http.MethodGet, "/?w=390&h=844", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)")
	rec := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Visit    visitor.Visit `json:"visit"`
		Terminal string        `json:"terminal"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, visitor.DeviceMobile, body.Visit.Device)
	assert.Equal(t, "390x844", body.Visit.Screen)
	assert.Equal(t, testStart.UnixMilli(), body.Visit.Timestamp)
	assert.Equal(t, TerminalPath, body.Terminal)

	assert.Equal(t, 1, visitor.Load(store).Total)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.VisitsRecorded))
}

func TestRoot_UnknownScreen(t *testing.T) {
	s, store, _ := newTestServer(t, Config{})

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/?w=abc", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	log := visitor.Load(store)
	require.Len(t, log.Recent, 1)
	assert.Equal(t, "unknown", log.Recent[0].Screen)
	assert.Equal(t, visitor.DeviceDesktop, log.Recent[0].Device)
}

func TestVisits(t *testing.T) {
	fc := testingclock.NewFakeClock(testStart)
	s, _, _ := newTestServer(t, Config{Clock: fc})
	for i := 0; i < 3; i++ {
		do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
		fc.Step(time.Minute)
	}

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantRecent int
	}{
		{name: "all", url: "/api/visits", wantStatus: http.StatusOK, wantRecent: 3},
		{name: "limited", url: "/api/visits?limit=2", wantStatus: http.StatusOK, wantRecent: 2},
		{name: "bad limit", url: "/api/visits?limit=-1", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, httptest.NewRequest(http.MethodGet, tt.url, nil))
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var log visitor.Log
			require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &log))
			assert.Equal(t, 3, log.Total)
			assert.Len(t, log.Recent, tt.wantRecent)
		})
	}
}

func TestGodMode_Gate(t *testing.T) {
	fc := testingclock.NewFakeClock(testStart)
	s, _, _ := newTestServer(t, Config{Clock: fc})

	t.Run("no token redirects", func(t *testing.T) {
		rec := do(t, s, httptest.NewRequest(http.MethodGet, "/godmode", nil))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("token is single use", func(t *testing.T) {
		tok := s.tokens.Issue()
		rec := do(t, s, httptest.NewRequest(http.MethodGet, "/godmode?token="+tok, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"godmode":true`)

		rec = do(t, s, httptest.NewRequest(http.MethodGet, "/godmode?token="+tok, nil))
		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("expired token redirects", func(t *testing.T) {
		tok := s.tokens.Issue()
		fc.Step(DefaultTokenTTL)
		rec := do(t, s, httptest.NewRequest(http.MethodGet, "/godmode?token="+tok, nil))
		assert.Equal(t, http.StatusFound, rec.Code)
	})
}

func TestTokenStore_DropsExpired(t *testing.T) {
	fc := testingclock.NewFakeClock(testStart)
	ts := newTokenStore(fc, time.Second)

	ts.Issue()
	ts.Issue()
	assert.Equal(t, 2, ts.Len())

	fc.Step(time.Second)
	ts.Issue()
	assert.Equal(t, 1, ts.Len())
	assert.False(t, ts.Redeem(""))
}

func TestHealthAndMetrics(t *testing.T) {
	s, _, m := newTestServer(t, Config{})

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	do(t, s, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "nlterm_http_requests_total")
}

func TestCORS(t *testing.T) {
	t.Run("all origins by default", func(t *testing.T) {
		s, _, _ := newTestServer(t, Config{})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://example.com")
		rec := do(t, s, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list", func(t *testing.T) {
		s, _, _ := newTestServer(t, Config{AllowedOrigins: []string{"https://nl.dev"}})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://nl.dev")
		rec := do(t, s, req)
		assert.Equal(t, "https://nl.dev", rec.Header().Get("Access-Control-Allow-Origin"))

		assert.True(t, s.checkOrigin(req))
		req.Header.Set("Origin", "https://evil.example")
		assert.False(t, s.checkOrigin(req))
		req.Header.Del("Origin")
		assert.True(t, s.checkOrigin(req))
	})
}

func TestNewServer_Defaults(t *testing.T) {
	s := NewServer(Config{})
	assert.Equal(t, float64(10), s.cfg.InputRate)
	assert.Equal(t, 20, s.cfg.InputBurst)
	assert.NotNil(t, s.cfg.Terminal.Store)
	assert.Same(t, s.cfg.Store, s.cfg.Terminal.Visitors)
	assert.True(t, strings.HasPrefix(TerminalPath, "/ws/"))
}
