// Package mcptools exposes note submission as tools of a Model Context
// Protocol server, so agents can write to Flomo directly.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/evgeniy-krivenko/flomo-relay/internal/entity"
	"github.com/evgeniy-krivenko/flomo-relay/internal/flomo"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/logger/slogx"
)

const ServerName = "Flomo MCP Server"

type notesUsecase interface {
	WriteNote(ctx context.Context, note entity.Note) flomo.Result
}

// NewServer builds the MCP server with every tool registered. The usecase
// is created once by the caller and shared by all tool calls.
func NewServer(notes notesUsecase, version string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Use write_note to save a markdown note to the user's Flomo account."),
	)

	testTool := NewTestTool()
	s.AddTool(testTool.Definition(), testTool.Handle)

	writeNoteTool := NewWriteNoteTool(notes)
	s.AddTool(writeNoteTool.Definition(), writeNoteTool.Handle)

	return s
}

type TestTool struct{}

func NewTestTool() *TestTool {
	return &TestTool{}
}

func (t *TestTool) Definition() mcp.Tool {
	return mcp.NewTool("test",
		mcp.WithDescription("A simple test method"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Any text, echoed back"),
		),
	)
}

func (t *TestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := req.GetString("message", "")
	slogx.Info(ctx, "test tool called", slog.String("message", message))

	return mcp.NewToolResultText("Test successful! " + message), nil
}

type WriteNoteTool struct {
	notes notesUsecase
}

func NewWriteNoteTool(notes notesUsecase) *WriteNoteTool {
	return &WriteNoteTool{notes: notes}
}

func (t *WriteNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("write_note",
		mcp.WithDescription("Write a note to Flomo"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The content of the note (supports markdown)"),
		),
	)
}

func (t *WriteNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("Content is required"), nil
	}

	res := t.notes.WriteNote(ctx, entity.Note{Content: content})
	if !res.OK() {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to write note: %s", res.ErrorMessage())), nil
	}

	out, err := json.MarshalIndent(res.Payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode flomo reply: %v", err)), nil
	}

	return mcp.NewToolResultText(string(out)), nil
}
