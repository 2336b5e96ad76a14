package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"nlterm/internal/metrics"
	"nlterm/internal/storage"
	"nlterm/internal/terminal"
	"nlterm/internal/visitor"
	"nlterm/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"
)

const webSubsystem = "Web"

const (
	// TerminalPath is the websocket endpoint driving a terminal session.
	TerminalPath = "/ws/terminal"

	shutdownTimeout = 5 * time.Second
)

// Watcher reloads a store when it changes outside this process.
type Watcher interface {
	Watch(ctx context.Context) error
}

// Config configures the web backend.
type Config struct {
	Addr           string
	AllowedOrigins []string
	// InputRate and InputBurst throttle input and key messages per connection.
	InputRate  float64
	InputBurst int
	Debug      bool
	// SecretPhrase typed as key messages opens a closed session.
	SecretPhrase string

	// Store holds visits and the operator flag shared by every session.
	Store storage.Store
	// Terminal is the base for each connection's session. Its Store and
	// Visitors default to Store; SessionStore and Effects are per connection.
	Terminal terminal.Options
	Clock    clock.Clock
	Metrics  *metrics.Metrics
	// Watcher, when set, runs alongside the server.
	Watcher Watcher
}

// Server is the HTTP and websocket backend.
type Server struct {
	cfg      Config
	router   *gin.Engine
	upgrader websocket.Upgrader
	tokens   *tokenStore
	visits   *visitor.Recorder
	// visitMu serialises recordings so concurrent page loads keep the count.
	visitMu sync.Mutex
}

// NewServer creates a server and registers its routes.
func NewServer(cfg Config) *Server {
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Store == nil {
		cfg.Store = storage.NewMemoryStore()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	if cfg.InputRate <= 0 {
		cfg.InputRate = 10
	}
	if cfg.InputBurst <= 0 {
		cfg.InputBurst = 20
	}
	if cfg.SecretPhrase == "" {
		cfg.SecretPhrase = terminal.DefaultSecretPhrase
	}
	if cfg.Terminal.Store == nil {
		cfg.Terminal.Store = cfg.Store
	}
	if cfg.Terminal.Visitors == nil {
		cfg.Terminal.Visitors = cfg.Store
	}
	cfg.Terminal.Observer = cfg.Metrics.Observer()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		tokens: newTokenStore(cfg.Clock, DefaultTokenTTL),
		visits: visitor.NewRecorder(cfg.Store, cfg.Clock),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	router.Use(requestMetrics(cfg.Metrics))
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/api/visits", s.handleVisits)
	router.GET(terminal.GodModePath, s.handleGodMode)
	router.GET(TerminalPath, s.handleTerminal)
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully. Websocket sessions end with ctx.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		logging.Info(webSubsystem, "Listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve on %s: %w", s.cfg.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		logging.Info(webSubsystem, "Server stopped")
		return nil
	})
	if s.cfg.Watcher != nil {
		g.Go(func() error { return s.cfg.Watcher.Watch(gctx) })
	}
	return g.Wait()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(s.cfg.AllowedOrigins, origin)
}

// handleRoot records a page visit. The client may pass its viewport size
// as ?w=&h=.
func (s *Server) handleRoot(c *gin.Context) {
	device := visitor.DeviceFromUserAgent(c.Request.UserAgent())
	screen := "unknown"
	w, werr := strconv.Atoi(c.Query("w"))
	h, herr := strconv.Atoi(c.Query("h"))
	if werr == nil && herr == nil && w > 0 && h > 0 {
		screen = visitor.Screen(w, h)
	}

	s.visitMu.Lock()
	visit, err := s.visits.Record(device, screen)
	s.visitMu.Unlock()
	if err != nil {
		logging.Error(webSubsystem, err, "Failed to record visit")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record visit"})
		return
	}
	s.cfg.Metrics.IncVisits()

	c.JSON(http.StatusOK, gin.H{
		"visit":    visit,
		"terminal": TerminalPath,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleVisits returns the visit log; ?limit=n trims the recent list.
func (s *Server) handleVisits(c *gin.Context) {
	log := visitor.Load(s.cfg.Store)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		log.Recent = log.RecentN(n)
	}
	c.JSON(http.StatusOK, log)
}

// handleGodMode serves the privileged page for a valid token and sends
// everyone else back to the landing page.
func (s *Server) handleGodMode(c *gin.Context) {
	if !s.tokens.Redeem(c.Query("token")) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	logging.Info(webSubsystem, "Privileged page opened from %s", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{
		"godmode": true,
		"message": "Privileged session active.",
	})
}
