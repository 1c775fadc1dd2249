// Package server exposes a HUD session as Model Context Protocol tools so
// agents and scripts can drive keyboard navigation.
package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/hud-a11y/internal/hud"
	"github.com/mj1618/hud-a11y/internal/narration"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server around one session.
type Server struct {
	session *hud.Session
	mcp     *mcpserver.MCPServer

	spokenMu sync.Mutex
	spoken   []string
}

// New creates an MCP server with all navigation tools registered.
func New(session *hud.Session, version string) *Server {
	s := &Server{session: session}
	session.Narration.Watch(s.collect)
	s.mcp = mcpserver.NewMCPServer("hud-a11y", version)
	s.registerTools()
	return s
}

// Serve runs the transport until it stops. Deferred focus checks run in
// the background until ctx is done.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.session.Run(ctx)

	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) collect(e narration.Entry) {
	if e.Kind != narration.KindNarrate {
		return
	}
	s.spokenMu.Lock()
	s.spoken = append(s.spoken, e.Message)
	s.spokenMu.Unlock()
}

// takeSpoken returns and clears the narration collected since the last call.
func (s *Server) takeSpoken() []string {
	s.spokenMu.Lock()
	defer s.spokenMu.Unlock()
	out := s.spoken
	s.spoken = nil
	return out
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("press",
			mcp.WithDescription("Press one or more key combos on the overlay (e.g. 'tab', 'shift+tab', 'escape', 'space'). Pressing while unfocused enters the overlay."),
			mcp.WithString("key", mcp.Description("Key combo to press")),
			mcp.WithArray("keys", mcp.Description("Key combos to press in order"), mcp.WithStringItems()),
		),
		s.handlePress,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Move focus to an accessible path such as 'text_panel.close'. An empty path resumes the last position."),
			mcp.WithString("path", mcp.Description("Dotted accessible path")),
		),
		s.handleFocus,
	)

	s.mcp.AddTool(
		mcp.NewTool("next",
			mcp.WithDescription("Move focus to the next element of the focused widget"),
		),
		s.handleNext,
	)

	s.mcp.AddTool(
		mcp.NewTool("previous",
			mcp.WithDescription("Move focus to the previous element of the focused widget"),
		),
		s.handlePrevious,
	)

	s.mcp.AddTool(
		mcp.NewTool("up",
			mcp.WithDescription("Move focus to the enclosing element, leaving the overlay from widget level"),
		),
		s.handleUp,
	)

	s.mcp.AddTool(
		mcp.NewTool("blur",
			mcp.WithDescription("Leave the overlay and return OS focus to the previous application"),
			mcp.WithBoolean("keep-path", mcp.Description("Remember the position for the next entry (default: true)")),
		),
		s.handleBlur,
	)

	s.mcp.AddTool(
		mcp.NewTool("context",
			mcp.WithDescription("Open a widget's context menu, focusing its first entry"),
			mcp.WithString("widget", mcp.Description("Widget id"), mcp.Required()),
		),
		s.handleContext,
	)

	s.mcp.AddTool(
		mcp.NewTool("widget",
			mcp.WithDescription("Enable or disable a widget"),
			mcp.WithString("id", mcp.Description("Widget id"), mcp.Required()),
			mcp.WithBoolean("enabled", mcp.Description("Enabled state (default: true)")),
		),
		s.handleWidget,
	)

	s.mcp.AddTool(
		mcp.NewTool("tree",
			mcp.WithDescription("Read the accessible tree of all enabled widgets"),
			mcp.WithBoolean("flat", mcp.Description("Return a flat list with depth and breadcrumbs")),
		),
		s.handleTree,
	)

	s.mcp.AddTool(
		mcp.NewTool("state",
			mcp.WithDescription("Read the focus state, open context menu and widget list"),
			mcp.WithNumber("last", mcp.Description("Number of recent narration lines to include (default: 5)")),
		),
		s.handleState,
	)

	s.mcp.AddTool(
		mcp.NewTool("narration",
			mcp.WithDescription("Read the narration log"),
			mcp.WithNumber("last", mcp.Description("Only the most recent N entries (0 = all)")),
			mcp.WithBoolean("clear", mcp.Description("Clear the log after reading it")),
		),
		s.handleNarration,
	)
}
