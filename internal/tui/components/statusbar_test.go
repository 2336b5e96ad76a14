package components

import (
	"testing"

	"nlterm/internal/terminal"
	"nlterm/internal/tui/design"
	"nlterm/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar_Render(t *testing.T) {
	ready := terminal.Snapshot{State: terminal.StateReady, Mode: terminal.ModeNormal}

	t.Run("message replaces the session summary", func(t *testing.T) {
		out := StatusBar{
			Width:   60,
			Session: ready,
			Hint:    "terminal · ? help",
			Message: "copied",
			Kind:    model.StatusBarSuccess,
		}.Render()
		assert.Contains(t, out, "copied")
		assert.NotContains(t, out, "ready")
	})

	t.Run("session summary and hint", func(t *testing.T) {
		out := StatusBar{Width: 60, Session: ready, Hint: "terminal · ? help"}.Render()
		assert.Contains(t, out, "ready · normal")
		assert.Contains(t, out, "? help")
	})

	t.Run("hint dropped when narrow", func(t *testing.T) {
		out := StatusBar{Width: 20, Session: ready, Hint: "a very long hint that cannot fit"}.Render()
		assert.NotContains(t, out, "cannot fit")
		assert.LessOrEqual(t, lipgloss.Width(out), 20)
	})

	t.Run("elevated tint", func(t *testing.T) {
		elevated := ready
		elevated.Mode = terminal.ModeElevated
		assert.Equal(t, design.StatusBarWarningStyle.GetBackground(), sessionStyle(elevated).GetBackground())
		assert.Equal(t, design.StatusBarStyle.GetBackground(), sessionStyle(ready).GetBackground())
	})
}

func TestFormatSessionInfo(t *testing.T) {
	tests := []struct {
		name string
		snap terminal.Snapshot
		want string
	}{
		{
			name: "closed",
			snap: terminal.Snapshot{State: terminal.StateClosed},
			want: "Terminal closed",
		},
		{
			name: "ready normal",
			snap: terminal.Snapshot{State: terminal.StateReady, Mode: terminal.ModeNormal},
			want: "ready · normal",
		},
		{
			name: "elevated admin hacking",
			snap: terminal.Snapshot{
				State:        terminal.StateReady,
				Mode:         terminal.ModeElevated,
				Admin:        true,
				Hacking:      true,
				HackProgress: 42.7,
			},
			want: "ready · elevated · admin · hack 42%",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSessionInfo(tt.snap))
		})
	}
}
