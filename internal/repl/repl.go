package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"nlterm/internal/terminal"
	"nlterm/pkg/logging"

	"github.com/atotto/clipboard"
	"github.com/chzyer/readline"
	"k8s.io/utils/clock"
)

const replSubsystem = "REPL"

// Options configures a REPL.
type Options struct {
	Terminal terminal.Options
	// Clock drives the session loop. Defaults to the wall clock.
	Clock clock.Clock
	// Elevated opens the session in elevated mode.
	Elevated bool
	// HistoryFile stores readline history. Defaults to a file in the temp dir.
	HistoryFile string
	Stdin       io.ReadCloser
	Stdout      io.Writer
}

// REPL is the line-oriented front end of a terminal session.
type REPL struct {
	opts Options
	loop *terminal.Loop
	rl   *readline.Instance
	out  io.Writer

	finishOnce sync.Once
	finished   chan struct{}
	// reason is why the session ended, set before finished is closed.
	reason string
}

// New creates a REPL. The session itself is created by Run.
func New(opts Options) *REPL {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.HistoryFile == "" {
		opts.HistoryFile = filepath.Join(os.TempDir(), ".nlterm_history")
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &REPL{
		opts:     opts,
		out:      opts.Stdout,
		finished: make(chan struct{}),
	}
}

// Run opens the session and reads lines until the session closes, the
// input ends or ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	topts := r.opts.Terminal
	topts.Typewriter = false
	topts.Effects = terminal.EffectFuncs{
		OnOpenURL:  r.openURL,
		OnNavigate: r.navigate,
		OnClosed:   func() { r.finish("Goodbye!") },
	}
	r.loop = terminal.NewLoop(r.opts.Clock, topts)

	config := &readline.Config{
		Prompt:          "> ",
		HistoryFile:     r.opts.HistoryFile,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           r.opts.Stdin,

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}
	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl
	r.out = rl.Stdout()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := r.loop.Run(ctx); err != nil {
			logging.Error(replSubsystem, err, "Session loop failed")
		}
	}()
	go func() {
		defer wg.Done()
		p := newPrinter(r.out)
		for snap := range r.loop.Snapshots() {
			p.render(snap)
			rl.Refresh()
		}
	}()
	defer wg.Wait()
	defer cancel()

	open := (*terminal.Session).Open
	if r.opts.Elevated {
		open = (*terminal.Session).OpenElevated
	}
	if err := r.loop.Do(ctx, open); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	logging.Debug(replSubsystem, "Session %s started", r.loop.SessionID())

	for {
		line, err := rl.Readline()
		select {
		case <-r.finished:
			fmt.Fprintln(r.out, r.reason)
			return nil
		case <-ctx.Done():
			return nil
		default:
		}

		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := r.loop.Do(ctx, func(s *terminal.Session) { s.Submit(line) }); err != nil {
			return nil
		}
	}
}

// finish ends the read loop. It runs on the session goroutine, so it only
// closes the prompt; Run prints reason.
func (r *REPL) finish(reason string) {
	r.finishOnce.Do(func() {
		r.reason = reason
		close(r.finished)
		if r.rl != nil {
			r.rl.Close()
		}
	})
}

// openURL has no browser to hand the URL to, so it is printed and copied.
func (r *REPL) openURL(url string) {
	if err := clipboard.WriteAll(url); err != nil {
		logging.Debug(replSubsystem, "Clipboard unavailable: %v", err)
		fmt.Fprintf(r.out, "Open %s in your browser.\n", url)
		return
	}
	fmt.Fprintf(r.out, "Open %s in your browser (copied to clipboard).\n", url)
}

func (r *REPL) navigate(path string) {
	if path != terminal.GodModePath {
		logging.Warn(replSubsystem, "Ignoring navigation to unknown path %s", path)
		return
	}
	r.finish("GODMODE unlocked. Privileged session active.")
}

func newCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(terminal.PublicCommands))
	for _, cmd := range terminal.PublicCommands {
		items = append(items, readline.PcItem(cmd.String()))
	}
	return readline.NewPrefixCompleter(items...)
}

// filterInput drops Ctrl+Z, which would otherwise suspend the process.
func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
