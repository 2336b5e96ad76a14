package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitForCLI_WritesSubsystem(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Info("Storage", "loaded %d keys", 3)
	Error("Storage", errors.New("boom"), "write failed")

	out := buf.String()
	assert.Contains(t, out, "loaded 3 keys")
	assert.Contains(t, out, "subsystem=Storage")
	assert.Contains(t, out, "error=boom")
}

func TestInitForCLI_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Debug("Terminal", "hidden")
	Info("Terminal", "also hidden")
	Warn("Terminal", "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitForTUI_DeliversEntries(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	defer CloseTUIChannel()
	require.NotNil(t, ch)

	Debug("TUI", "filtered")
	Warn("TUI", "visible %s", "entry")

	select {
	case entry := <-ch:
		assert.Equal(t, LevelWarn, entry.Level)
		assert.Equal(t, "TUI", entry.Subsystem)
		assert.Equal(t, "visible entry", entry.Message)
	default:
		t.Fatal("expected a log entry on the TUI channel")
	}
}

func TestInitcommon_FullChannelDoesNotBlock(t *testing.T) {
	Initcommon("tui", LevelDebug, nil, 1)
	defer CloseTUIChannel()

	Info("TUI", "first")
	Info("TUI", "second is dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"warn", LevelWarn},
		{"ERROR", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}
