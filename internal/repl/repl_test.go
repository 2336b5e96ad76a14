package repl

import (
	"bytes"
	"testing"

	"nlterm/internal/terminal"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(kind terminal.LineKind, text string) terminal.Line {
	return terminal.Line{Kind: kind, Text: text}
}

func TestNewLines(t *testing.T) {
	a := line(terminal.LineOutput, "a")
	b := line(terminal.LineOutput, "b")
	c := line(terminal.LineError, "c")

	tests := []struct {
		name       string
		prev, next []terminal.Line
		want       []terminal.Line
	}{
		{name: "first snapshot", prev: nil, next: []terminal.Line{a}, want: []terminal.Line{a}},
		{name: "appended", prev: []terminal.Line{a}, next: []terminal.Line{a, b, c}, want: []terminal.Line{b, c}},
		{name: "unchanged", prev: []terminal.Line{a, b}, next: []terminal.Line{a, b}, want: []terminal.Line{}},
		{name: "replaced by clear", prev: []terminal.Line{a, b}, next: []terminal.Line{c}, want: []terminal.Line{c}},
		{name: "same length replaced", prev: []terminal.Line{a}, next: []terminal.Line{b}, want: []terminal.Line{b}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newLines(tt.prev, tt.next))
		})
	}
}

func TestPrinter_Render(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)

	p.render(terminal.Snapshot{
		State:   terminal.StateReady,
		History: []terminal.Line{line(terminal.LineOutput, "welcome")},
	})
	p.render(terminal.Snapshot{
		State: terminal.StateReady,
		History: []terminal.Line{
			line(terminal.LineOutput, "welcome"),
			line(terminal.LineInput, "> help"),
		},
	})
	out := buf.String()
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("welcome")), "lines print once")
	assert.Contains(t, out, "> help")
}

func TestPrinter_CaptionsAndOverlays(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)

	closing := terminal.Snapshot{State: terminal.StateClosing, Caption: terminal.CaptionTerminating}
	p.render(closing)
	p.render(closing)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(terminal.CaptionTerminating)))

	buf.Reset()
	omega := terminal.Snapshot{State: terminal.StateReady, Mode: terminal.ModeElevated, OmegaActive: true}
	p.render(omega)
	p.render(omega)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("OMEGA PROTOCOL")))
}

func TestPrinter_HackProgress(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)

	for _, progress := range []float64{3, 7, 12, 15, 27} {
		p.render(terminal.Snapshot{State: terminal.StateReady, Hacking: true, HackProgress: progress})
	}
	out := buf.String()
	assert.Contains(t, out, "  3%")
	assert.NotContains(t, out, "  7%", "same tenth is not repeated")
	assert.Contains(t, out, " 12%")
	assert.Contains(t, out, " 27%")
}

func TestFormatLine(t *testing.T) {
	assert.Empty(t, formatLine(line(terminal.LineOutput, "  ")))
	assert.Contains(t, formatLine(line(terminal.LineError, "boom")), "boom")
}

func TestCompleter(t *testing.T) {
	c := newCompleter()
	require.Len(t, c.GetChildren(), len(terminal.PublicCommands))

	var names []string
	for _, child := range c.GetChildren() {
		names = append(names, string(child.GetName()))
	}
	assert.Contains(t, names, "help ")
	assert.NotContains(t, names, "omega ")
}

func TestFilterInput(t *testing.T) {
	_, ok := filterInput(readline.CharCtrlZ)
	assert.False(t, ok)
	r, ok := filterInput('a')
	assert.True(t, ok)
	assert.Equal(t, 'a', r)
}

func TestREPL_Finish(t *testing.T) {
	r := New(Options{})
	r.finish("first")
	r.finish("second")

	select {
	case <-r.finished:
	default:
		t.Fatal("finish should close the finished channel")
	}
	assert.Equal(t, "first", r.reason)
}

func TestREPL_NavigateFinishes(t *testing.T) {
	r := New(Options{})
	r.navigate("/elsewhere")
	select {
	case <-r.finished:
		t.Fatal("unknown paths are ignored")
	default:
	}

	r.navigate(terminal.GodModePath)
	<-r.finished
	assert.Contains(t, r.reason, "GODMODE")
}
