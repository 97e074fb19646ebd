// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the notebook session for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/notebookd/internal/apperr"
	"github.com/starford/notebookd/internal/journal"
	"github.com/starford/notebookd/internal/menu"
	"github.com/starford/notebookd/internal/session"
)

const sessionURI = "notebookd://session"

// Session is the session surface the tools drive.
type Session interface {
	Fire(ctx context.Context, ev menu.Event) error
	View(ctx context.Context) (session.View, error)
	Triggers() []string
}

// Server wraps the MCP server with notebookd tools.
type Server struct {
	mcp     *server.MCPServer
	sess    Session
	journal journal.Journal
}

// New creates a new MCP server with all notebookd tools registered.
func New(sess Session, j journal.Journal, version string) *Server {
	s := &Server{sess: sess, journal: j}

	s.mcp = server.NewMCPServer(
		"notebookd",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_triggers",
		mcp.WithDescription("List the trigger names the notebook session responds to, one per line."),
	), s.listTriggers)

	s.mcp.AddTool(mcp.NewTool("fire_trigger",
		mcp.WithDescription("Fire a named trigger (e.g. menu:save, menu:new-code-cell) against the "+
			"current notebook and kernel. Returns the session summary afterwards."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Trigger name as returned by list_triggers")),
		mcp.WithString("args", mcp.Description(`Optional JSON array of trigger arguments, e.g. ["dark"]`)),
	), s.fireTrigger)

	s.mcp.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Summarize the current document, kernel and host."),
	), s.getSession)

	s.mcp.AddTool(mcp.NewTool("recent_commands",
		mcp.WithDescription("List recently applied commands, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of commands (default 50)")),
	), s.recentCommands)

	s.mcp.AddResource(
		mcp.NewResource(sessionURI, "Session",
			mcp.WithResourceDescription("Summary of the current notebook session."),
			mcp.WithMIMEType("application/json"),
		),
		s.readSessionResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listTriggers(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(s.sess.Triggers(), "\n")), nil
}

func (s *Server) fireTrigger(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev := menu.Event{Name: name, Source: "mcp"}
	if raw, err := req.RequireString("args"); err == nil && strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &ev.Args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("args must be a JSON array: %v", err)), nil
		}
	}

	if err := s.sess.Fire(ctx, ev); err != nil {
		if errors.Is(err, apperr.ErrUnknownTrigger) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown trigger: %s (see list_triggers)", name)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.sessionResult(ctx)
}

func (s *Server) getSession(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.sessionResult(ctx)
}

func (s *Server) sessionResult(ctx context.Context) (*mcp.CallToolResult, error) {
	view, err := s.sess.View(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) recentCommands(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 0
	if n, err := req.RequireInt("limit"); err == nil {
		limit = n
	}
	entries, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no commands recorded"), nil
	}
	out, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readSessionResource(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	view, err := s.sess.View(ctx)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      sessionURI,
			MIMEType: "application/json",
			Text:     string(out),
		},
	}, nil
}
