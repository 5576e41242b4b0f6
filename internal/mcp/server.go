// Package mcp exposes the tag service as Model Context Protocol tools so an
// assistant can list, create and slugify tags over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tagdesk/tagdesk-server/internal/domain"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Tags is the slice of the tag service the tools call.
type Tags interface {
	Query(ctx context.Context, q domain.TagQuery) (*domain.TagPage, error)
	Create(ctx context.Context, title string) (*domain.Tag, error)
	PreviewSlug(title string) string
}

// handlers provides MCP request handlers with access to the tag service.
type handlers struct {
	tags   Tags
	logger *slog.Logger
}

// NewServer builds an MCP server with every tag tool registered.
func NewServer(tags Tags, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"tagdesk",
		Version,
		server.WithToolCapabilities(true),
	)
	registerTools(s, &handlers{tags: tags, logger: logger})
	return s
}

// Serve runs the server over stdio until the client disconnects.
// stdout carries JSON-RPC, so logger must not write there.
func Serve(tags Tags, logger *slog.Logger) error {
	s := NewServer(tags, logger)

	logger.Info("tagdesk MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		logger.Info("MCP server stopped")
		return nil
	}
	return err
}

// registerTools exposes tag operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("tags_list",
			mcp.WithDescription("List one page of tags. Titles are matched case-insensitively against search. Pages past the end return the last page."),
			mcp.WithNumber("page", mcp.Description("Page number, 1-based (default 1)")),
			mcp.WithNumber("rows_per_page", mcp.Description("Rows per page, 1 to 1000 (default 10)")),
			mcp.WithString("search", mcp.Description("Substring to look for in tag titles")),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("tags_create",
			mcp.WithDescription(fmt.Sprintf("Create a tag. The title needs at least %d characters and the slug is derived from it.", domain.MinTitleLength)),
			mcp.WithString("title", mcp.Required(), mcp.Description("Tag title")),
		),
		h.createTag,
	)

	s.AddTool(
		mcp.NewTool("tags_slug",
			mcp.WithDescription("Show the slug a tag with this title would get, without creating it"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Title to slugify")),
		),
		h.previewSlug,
	)
}
