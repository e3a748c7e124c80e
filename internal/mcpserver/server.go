// Package mcpserver exposes the assistant as Model Context Protocol tools
// so that other agents can classify utterances, run turns and read
// reminders over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mobais/mobais/internal/assistant"
	"github.com/mobais/mobais/internal/command"
	"github.com/mobais/mobais/internal/intent"
	"github.com/mobais/mobais/internal/reminder"
	"github.com/mobais/mobais/internal/security"
)

// Tool names.
const (
	ToolClassify      = "classify"
	ToolRespond       = "respond"
	ToolListReminders = "list_reminders"
)

// Responder is the part of *assistant.Assistant the tools call.
type Responder interface {
	Classify(ctx context.Context, text string) intent.MatchResult
	RespondAs(ctx context.Context, utterance, character string) (assistant.Turn, error)
	Reminders(ctx context.Context) ([]reminder.Reminder, error)
}

// Server wraps an MCP server bound to one Responder.
type Server struct {
	responder Responder
	logger    *slog.Logger
	mcp       *server.MCPServer
}

// New registers the assistant tools on a fresh MCP server.
func New(r Responder, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		responder: r,
		logger:    logger,
		mcp:       server.NewMCPServer("mobais", version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcp.NewTool(ToolClassify,
		mcp.WithDescription("Classify an utterance into an intent and its extracted parameters without running it."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The utterance to classify.")),
	), s.handleClassify)

	s.mcp.AddTool(mcp.NewTool(ToolRespond,
		mcp.WithDescription("Run one conversation turn: classify, execute the command or ask the language model, and return the reply."),
		mcp.WithString("text", mcp.Required(), mcp.Description("What the user said.")),
		mcp.WithString("character", mcp.Description("Personality mode, for example helpful or funny.")),
	), s.handleRespond)

	s.mcp.AddTool(mcp.NewTool(ToolListReminders,
		mcp.WithDescription("List every stored reminder in the order it was created."),
	), s.handleListReminders)

	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// Serve speaks MCP over the given streams until ctx is done or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) handleClassify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := security.ValidateUtterance(text, 0); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.responder.Classify(ctx, text))
}

func (s *Server) handleRespond(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := security.ValidateUtterance(text, 0); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	turn, err := s.responder.RespondAs(ctx, text, req.GetString("character", ""))
	if err != nil {
		s.logger.Warn("mcp respond failed", "turn_id", turn.ID, "error", err)
		if errors.Is(err, command.ErrStoreWrite) {
			return mcp.NewToolResultError(turn.Reply), nil
		}
	}
	return jsonResult(turn)
}

func (s *Server) handleListReminders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.responder.Reminders(ctx)
	if err != nil {
		s.logger.Error("mcp list reminders failed", "error", err)
		return mcp.NewToolResultError("reminder store unavailable"), nil
	}
	if items == nil {
		items = []reminder.Reminder{}
	}
	return jsonResult(items)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
