// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Laguz journaling tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/laguz/internal/insights"
	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/store"
)

// Server wraps the MCP server with Laguz tools.
type Server struct {
	mcp *server.MCPServer
	svc *journal.Service
}

// New creates a new MCP server with all Laguz tools registered.
func New(svc *journal.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Laguz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("add_entry",
		mcp.WithDescription("Create a journal entry. The entry is summarized, "+
			"scored for sentiment, and tagged with keywords on save. Read the "+
			"contract first via the get_entry_contract tool or the "+
			"laguz://entry-format resource."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Entry body text")),
		mcp.WithString("title", mcp.Description("Optional entry title")),
		mcp.WithString("date", mcp.Description("Optional ISO-8601 date (YYYY-MM-DD)")),
		mcp.WithString("mood", mcp.Description("Optional self-reported mood")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tags")),
	), s.addEntry)

	s.mcp.AddTool(mcp.NewTool("read_entry",
		mcp.WithDescription("Read a journal entry with its stored annotations."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry id")),
	), s.readEntry)

	s.mcp.AddTool(mcp.NewTool("list_entries",
		mcp.WithDescription("List recent journal entries, newest first."),
		mcp.WithNumber("limit", mcp.Description("Max entries to return (default 20)")),
	), s.listEntries)

	s.mcp.AddTool(mcp.NewTool("search_entries",
		mcp.WithDescription("Search entries by title, content, summary, or tags."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchEntries)

	s.mcp.AddTool(mcp.NewTool("journal_insights",
		mcp.WithDescription("Aggregate statistics, narrative insights, and topic "+
			"clusters over a trailing window of entries."),
		mcp.WithNumber("days", mcp.Description("Window length in days (7, 30, 90, or 0 for all time)")),
	), s.journalInsights)

	s.mcp.AddTool(mcp.NewTool("get_entry_contract",
		mcp.WithDescription("Returns the canonical Laguz entry format contract. "+
			"Call this before creating entries to ensure correct structure."),
	), s.getEntryContract)

	// Resource: entry format contract.
	s.mcp.AddResource(
		mcp.NewResource("laguz://entry-format", "Entry Format Contract",
			mcp.WithResourceDescription("Canonical journal entry format that all entries must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEntryFormatResource,
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

func (s *Server) addEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	draft := journal.Draft{
		Content: content,
		Title:   req.GetString("title", ""),
		Date:    req.GetString("date", ""),
		Mood:    req.GetString("mood", ""),
		Tags:    splitTags(req.GetString("tags", "")),
	}
	entry, err := s.svc.SaveEntry(ctx, draft)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(entry, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *Server) readEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.GetEntry(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(entry, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)
	entries, err := s.svc.List(ctx, limit, store.OrderByCreatedAt, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) journalInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 30)
	view, err := s.svc.GetInsights(ctx, 0, insights.WindowForDays(days))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getEntryContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EntryFormatContract), nil
}

func (s *Server) readEntryFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "laguz://entry-format",
			MIMEType: "text/markdown",
			Text:     EntryFormatContract,
		},
	}, nil
}
