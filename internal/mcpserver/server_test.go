package mcpserver

import (
	"context"
	"testing"
	"time"

	"nlterm/internal/storage"
	"nlterm/internal/terminal"
	"nlterm/internal/visitor"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func newTestServer(t *testing.T, store storage.Store) *Server {
	t.Helper()
	return New(Config{
		Name:     "nlterm-test",
		Version:  "1.2.3",
		Terminal: terminal.Options{Store: store},
		Clock:    testingclock.NewFakePassiveClock(testStart),
	})
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})
	assert.Equal(t, "nlterm", s.cfg.Name)
	assert.Equal(t, "dev", s.cfg.Version)
	assert.NotNil(t, s.cfg.Clock)
	assert.NotNil(t, s.cfg.Terminal.Store)
	assert.NotNil(t, s.MCPServer())
}

func TestHandleRun(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore())

	result, err := s.handleRun(context.Background(), callRequest(ToolRun, map[string]any{
		"commands": []any{"help", "github"},
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var tr map[string]any
	require.NoError(t, sonic.UnmarshalString(resultText(t, result), &tr))
	assert.Equal(t, "ready", tr["state"])
	assert.Equal(t, "normal", tr["mode"])

	steps, ok := tr["steps"].([]any)
	require.True(t, ok)
	require.Len(t, steps, 2)
	github := steps[1].(map[string]any)
	assert.Equal(t, "github", github["command"])
	assert.Equal(t, []any{"open_url https://github.com"}, github["effects"])
}

func TestHandleRun_Elevated(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore())

	result, err := s.handleRun(context.Background(), callRequest(ToolRun, map[string]any{
		"commands": []any{"help"},
		"elevated": true,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"mode": "elevated"`)
}

func TestHandleRun_InvalidArguments(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore())

	tooMany := make([]any, maxScriptCommands+1)
	for i := range tooMany {
		tooMany[i] = "help"
	}

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing", map[string]any{}, "non-empty array"},
		{"empty", map[string]any{"commands": []any{}}, "non-empty array"},
		{"wrong type", map[string]any{"commands": "help"}, "non-empty array"},
		{"non-string item", map[string]any{"commands": []any{"help", 3.0}}, "commands[1] must be a string"},
		{"too many", map[string]any{"commands": tooMany}, "at most"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleRun(context.Background(), callRequest(ToolRun, tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
		})
	}
}

func TestHandleCommands(t *testing.T) {
	store := storage.NewMemoryStore()
	s := New(Config{Terminal: terminal.Options{Store: store, Profile: terminal.Profile{Name: "Ada Lovelace"}}})

	result, err := s.handleCommands(context.Background(), callRequest(ToolCommands, nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var infos []commandInfo
	require.NoError(t, sonic.UnmarshalString(resultText(t, result), &infos))
	require.Len(t, infos, len(terminal.PublicCommands))
	assert.Equal(t, "help", infos[0].Name)
	for _, info := range infos {
		assert.NotEmpty(t, info.Description, info.Name)
		assert.NotEqual(t, "sudo", info.Name)
		assert.NotEqual(t, "omega", info.Name)
	}
	assert.Contains(t, infos[1].Description, "Ada")
}

func TestHandleVisits(t *testing.T) {
	store := storage.NewMemoryStore()
	s := newTestServer(t, store)

	result, err := s.handleVisits(context.Background(), callRequest(ToolVisits, nil))
	require.NoError(t, err)
	assert.Equal(t, "No visits recorded", resultText(t, result))

	clk := testingclock.NewFakePassiveClock(testStart)
	rec := visitor.NewRecorder(store, clk)
	for i := 0; i < 3; i++ {
		_, err := rec.Record(visitor.DeviceDesktop, visitor.Screen(1920, 1080))
		require.NoError(t, err)
		clk.SetTime(clk.Now().Add(time.Second))
	}

	result, err = s.handleVisits(context.Background(), callRequest(ToolVisits, map[string]any{"limit": 2.0}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var summary visitsSummary
	require.NoError(t, sonic.UnmarshalString(resultText(t, result), &summary))
	assert.Equal(t, 3, summary.Total)
	assert.Len(t, summary.Recent, 2)
	assert.Equal(t, "2026-03-14 09:30:00", summary.First)
}

func TestHandleVisits_InvalidLimit(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore())

	result, err := s.handleVisits(context.Background(), callRequest(ToolVisits, map[string]any{"limit": 0.0}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
