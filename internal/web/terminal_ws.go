package web

import (
	"context"
	"errors"
	"time"

	"nlterm/internal/storage"
	"nlterm/internal/terminal"
	"nlterm/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Client message types.
const (
	MsgOpen         = "open"
	MsgOpenElevated = "open_elevated"
	MsgClose        = "close"
	MsgElevate      = "elevate"
	MsgPressStart   = "press_start"
	MsgPressEnd     = "press_end"
	MsgInput        = "input"
	MsgKey          = "key"
	MsgPing         = "ping"
)

// Server event types.
const (
	EventSnapshot = "snapshot"
	EventOpenURL  = "open_url"
	EventNavigate = "navigate"
	EventClosed   = "closed"
	EventError    = "error"
	EventPong     = "pong"
)

const (
	outboxSize   = 64
	writeTimeout = 10 * time.Second
	maxMessage   = 4096
)

var errClientGone = errors.New("client disconnected")

// ClientMessage is a message from the browser.
type ClientMessage struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

// Event is a message to the browser.
type Event struct {
	Type     string             `json:"type"`
	Snapshot *terminal.Snapshot `json:"snapshot,omitempty"`
	URL      string             `json:"url,omitempty"`
	Path     string             `json:"path,omitempty"`
	Message  string             `json:"message,omitempty"`
}

// sessionConn binds one websocket to one terminal session.
type sessionConn struct {
	server  *Server
	conn    *websocket.Conn
	loop    *terminal.Loop
	limiter *rate.Limiter
	outbox  chan Event
	// sessionStore is the connection-scoped store holding the godmode flag.
	sessionStore *storage.MemoryStore
	// secret is only touched on the loop goroutine.
	secret *terminal.SecretPhrase
}

func (s *Server) handleTerminal(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn(webSubsystem, "WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessage)

	s.cfg.Metrics.IncWSConnections()
	defer s.cfg.Metrics.DecWSConnections()

	sc := s.newSessionConn(conn)
	logging.Debug(webSubsystem, "Session %s connected from %s", sc.loop.SessionID(), c.ClientIP())
	if err := sc.serve(c.Request.Context()); err != nil {
		logging.Warn(webSubsystem, "Session %s ended: %v", sc.loop.SessionID(), err)
		return
	}
	logging.Debug(webSubsystem, "Session %s disconnected", sc.loop.SessionID())
}

func (s *Server) newSessionConn(conn *websocket.Conn) *sessionConn {
	sc := &sessionConn{
		server:       s,
		conn:         conn,
		limiter:      rate.NewLimiter(rate.Limit(s.cfg.InputRate), s.cfg.InputBurst),
		outbox:       make(chan Event, outboxSize),
		sessionStore: storage.NewMemoryStore(),
	}

	opts := s.cfg.Terminal
	opts.SessionStore = sc.sessionStore
	opts.Effects = terminal.EffectFuncs{
		OnOpenURL:  func(url string) { sc.emit(Event{Type: EventOpenURL, URL: url}) },
		OnNavigate: sc.navigate,
		OnClosed:   func() { sc.emit(Event{Type: EventClosed}) },
	}
	sc.loop = terminal.NewLoop(s.cfg.Clock, opts)
	return sc
}

// serve runs the session loop, the writer and the reader until the client
// leaves or ctx ends. The session is torn down on the way out.
func (sc *sessionConn) serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return sc.loop.Run(ctx) })
	g.Go(func() error { return sc.writeLoop(ctx) })
	g.Go(func() error { return sc.readLoop(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		// Unblocks the reader.
		sc.conn.Close()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errClientGone) {
		return err
	}
	return nil
}

func (sc *sessionConn) readLoop(ctx context.Context) error {
	for {
		var msg ClientMessage
		if err := sc.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Debug(webSubsystem, "Read failed: %v", err)
			}
			return errClientGone
		}
		sc.server.cfg.Metrics.RecordWSMessage("in", msg.Type)
		if err := sc.dispatch(ctx, msg); err != nil {
			if errors.Is(err, terminal.ErrLoopStopped) || ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (sc *sessionConn) writeLoop(ctx context.Context) error {
	snapshots := sc.loop.Snapshots()
	for {
		var ev Event
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			ev = Event{Type: EventSnapshot, Snapshot: &snap}
		case ev = <-sc.outbox:
		}

		if err := sc.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return errClientGone
		}
		if err := sc.conn.WriteJSON(ev); err != nil {
			logging.Debug(webSubsystem, "Write failed: %v", err)
			return errClientGone
		}
		sc.server.cfg.Metrics.RecordWSMessage("out", ev.Type)
	}
}

// dispatch maps a client message onto the session.
func (sc *sessionConn) dispatch(ctx context.Context, msg ClientMessage) error {
	switch msg.Type {
	case MsgOpen:
		return sc.loop.Do(ctx, (*terminal.Session).Open)
	case MsgOpenElevated:
		return sc.loop.Do(ctx, (*terminal.Session).OpenElevated)
	case MsgClose:
		return sc.loop.Do(ctx, (*terminal.Session).Close)
	case MsgElevate:
		return sc.loop.Do(ctx, (*terminal.Session).ActivateElevated)
	case MsgPressStart:
		return sc.loop.Do(ctx, (*terminal.Session).PressStart)
	case MsgPressEnd:
		return sc.loop.Do(ctx, (*terminal.Session).PressEnd)
	case MsgInput:
		if !sc.limiter.Allow() {
			sc.emit(Event{Type: EventError, Message: "rate limit exceeded"})
			return nil
		}
		line := msg.Data
		return sc.loop.Do(ctx, func(s *terminal.Session) { s.Submit(line) })
	case MsgKey:
		if !sc.limiter.Allow() {
			sc.emit(Event{Type: EventError, Message: "rate limit exceeded"})
			return nil
		}
		key := msg.Data
		return sc.loop.Do(ctx, func(s *terminal.Session) {
			if s.State() != terminal.StateClosed {
				return
			}
			if sc.secret == nil {
				sc.secret = terminal.NewSecretPhrase(sc.server.cfg.SecretPhrase, s)
			}
			sc.secret.Feed(key)
		})
	case MsgPing:
		sc.emit(Event{Type: EventPong})
		return nil
	default:
		sc.emit(Event{Type: EventError, Message: "unknown message type"})
		return nil
	}
}

// emit queues an event for the writer without blocking the session.
func (sc *sessionConn) emit(ev Event) {
	select {
	case sc.outbox <- ev:
	default:
		logging.Warn(webSubsystem, "Dropping %s event for session %s: outbox full", ev.Type, sc.loop.SessionID())
	}
}

// navigate hands the client a single-use token for the privileged page.
// Without the session flag the client is sent back to the landing page.
func (sc *sessionConn) navigate(path string) {
	if path != terminal.GodModePath {
		sc.emit(Event{Type: EventNavigate, Path: "/"})
		return
	}
	if v, _ := sc.sessionStore.Get(terminal.KeyGodMode); v != "true" {
		logging.Warn(webSubsystem, "Session %s requested %s without the %s flag", sc.loop.SessionID(), path, terminal.KeyGodMode)
		sc.emit(Event{Type: EventNavigate, Path: "/"})
		return
	}
	token := sc.server.tokens.Issue()
	sc.emit(Event{Type: EventNavigate, Path: path + "?token=" + token})
}
