package mcpserver

import (
	"context"
	"fmt"
	"io"

	"nlterm/internal/storage"
	"nlterm/internal/terminal"
	"nlterm/internal/visitor"
	"nlterm/pkg/logging"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"k8s.io/utils/clock"
)

const mcpSubsystem = "MCP"

// Tool names.
const (
	ToolRun      = "terminal_run"
	ToolCommands = "terminal_commands"
	ToolVisits   = "visits_summary"
)

// maxScriptCommands bounds one terminal_run call.
const maxScriptCommands = 50

// Config configures the MCP server.
type Config struct {
	Name    string
	Version string
	// Terminal is the template every scripted session starts from. Its
	// Store is only read for visitor data.
	Terminal terminal.Options
	Clock    clock.PassiveClock
}

// Server serves the terminal tools over MCP.
type Server struct {
	cfg    Config
	server *server.MCPServer
}

// New creates the server and registers its tools.
func New(cfg Config) *Server {
	if cfg.Name == "" {
		cfg.Name = "nlterm"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Terminal.Store == nil {
		cfg.Terminal.Store = storage.NewMemoryStore()
	}

	s := &Server{
		cfg: cfg,
		server: server.NewMCPServer(
			cfg.Name,
			cfg.Version,
			server.WithToolCapabilities(true),
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.server }

func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(ToolRun,
			mcp.WithDescription("Open the portfolio terminal, type each command in order and return the transcript"),
			mcp.WithArray("commands",
				mcp.Required(),
				mcp.Description("Command lines to submit, for example [\"help\", \"skills\"]"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithBoolean("elevated",
				mcp.Description("Open the terminal in elevated mode"),
			),
		),
		s.handleRun,
	)
	s.server.AddTool(
		mcp.NewTool(ToolCommands,
			mcp.WithDescription("List the commands the terminal understands"),
		),
		s.handleCommands,
	)
	s.server.AddTool(
		mcp.NewTool(ToolVisits,
			mcp.WithDescription("Summarize the recorded page visits"),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of recent visits to include (default 5)"),
			),
		),
		s.handleVisits,
	)
}

// Serve speaks MCP over the given streams until ctx is cancelled or the
// input closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info(mcpSubsystem, "Serving %s %s over stdio", s.cfg.Name, s.cfg.Version)
	stdio := server.NewStdioServer(s.server)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP stdio server failed: %w", err)
	}
	return nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	raw, ok := args["commands"].([]any)
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("commands must be a non-empty array of strings"), nil
	}
	if len(raw) > maxScriptCommands {
		return mcp.NewToolResultError(fmt.Sprintf("at most %d commands are allowed", maxScriptCommands)), nil
	}
	script := Script{Commands: make([]string, 0, len(raw))}
	for i, v := range raw {
		cmd, ok := v.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("commands[%d] must be a string", i)), nil
		}
		script.Commands = append(script.Commands, cmd)
	}
	if v, ok := args["elevated"].(bool); ok {
		script.Elevated = v
	}

	tr, err := RunScript(s.cfg.Terminal, script, s.cfg.Clock.Now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	logging.Debug(mcpSubsystem, "Ran script of %d commands in session %s", len(script.Commands), tr.SessionID)

	jsonData, err := sonic.MarshalIndent(tr, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format transcript: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

type commandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile := s.cfg.Terminal.Profile
	if profile.Name == "" {
		profile = terminal.DefaultProfile()
	}

	infos := make([]commandInfo, 0, len(terminal.PublicCommands))
	for _, cmd := range terminal.PublicCommands {
		infos = append(infos, commandInfo{
			Name:        cmd.String(),
			Description: terminal.DescribeCommand(cmd, profile),
		})
	}

	jsonData, err := sonic.MarshalIndent(infos, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format commands: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

type visitsSummary struct {
	Total  int             `json:"total"`
	First  string          `json:"first,omitempty"`
	Last   string          `json:"last,omitempty"`
	Recent []visitor.Visit `json:"recent"`
}

func (s *Server) handleVisits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 5
	if v, ok := request.GetArguments()["limit"].(float64); ok {
		if v < 1 {
			return mcp.NewToolResultError("limit must be at least 1"), nil
		}
		limit = int(v)
	}

	store := s.cfg.Terminal.Visitors
	if store == nil {
		store = s.cfg.Terminal.Store
	}
	log := visitor.Load(store)
	if log.Total == 0 && len(log.Recent) == 0 {
		return mcp.NewToolResultText("No visits recorded"), nil
	}

	summary := visitsSummary{
		Total:  log.Total,
		Recent: log.RecentN(limit),
	}
	if !log.First.IsZero() {
		summary.First = log.First.Format("2006-01-02 15:04:05")
	}
	if !log.Last.IsZero() {
		summary.Last = log.Last.Format("2006-01-02 15:04:05")
	}

	jsonData, err := sonic.MarshalIndent(summary, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format visits: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
