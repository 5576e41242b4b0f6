package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
	"github.com/tagdesk/tagdesk-server/internal/store"
)

// listTags handles tags_list tool calls.
func (h *handlers) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := domain.TagQuery{
		Page:        getInt(req, "page", store.DefaultPage),
		RowsPerPage: getInt(req, "rows_per_page", store.DefaultRowsPerPage),
		Search:      getString(req, "search", ""),
	}

	params := store.PaginationParams{Page: q.Page, RowsPerPage: q.RowsPerPage}
	if err := params.Validate(); err != nil {
		return errorResult(err), nil
	}

	page, err := h.tags.Query(ctx, q)
	if err != nil {
		h.logger.Warn("mcp tags_list failed", "error", err)
		return errorResult(err), nil
	}

	return jsonResult(page)
}

// createTag handles tags_create tool calls.
func (h *handlers) createTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil //nolint:nilerr
	}

	tag, err := h.tags.Create(ctx, title)
	if err != nil {
		return errorResult(err), nil
	}

	h.logger.Info("mcp tag created", "tag_id", tag.ID)
	return jsonResult(tag)
}

// previewSlug handles tags_slug tool calls.
func (h *handlers) previewSlug(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil //nolint:nilerr
	}
	return mcp.NewToolResultText(h.tags.PreviewSlug(title)), nil
}

// errorResult turns err into a tool error the model can read.
// Domain errors keep their code so retryable failures are recognisable.
func errorResult(err error) *mcp.CallToolResult {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", domainErr.Code, domainErr.Message))
	}
	return mcp.NewToolResultError(err.Error())
}
