package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	"github.com/tagdesk/tagdesk-server/internal/store"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/tags",
		Summary:     "List tags",
		Description: "Returns one page of tags whose titles contain the search text, ignoring case. Pages past the end are clamped to the last page.",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/tags",
		Summary:       "Create tag",
		Description:   "Creates a tag with a derived slug and no videos",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   huma.Middlewares{s.rateLimitCreate},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "previewTagSlug",
		Method:      http.MethodGet,
		Path:        "/tags/slug",
		Summary:     "Preview slug",
		Description: "Returns the slug a tag with this title would get",
		Tags:        []string{"Tags"},
	}, s.handlePreviewSlug)
}

// === DTOs ===

// ListTagsInput contains parameters for listing tags.
// The underscore names are accepted for clients of the older mock API.
// When both spellings are sent the canonical one wins.
type ListTagsInput struct {
	Page        int    `query:"page" minimum:"1" doc:"Page number, 1-based (default 1)"`
	RowsPerPage int    `query:"rowsPerPage" minimum:"1" maximum:"1000" doc:"Rows per page (default 10)"`
	Search      string `query:"search" maxLength:"200" doc:"Case-insensitive title filter"`

	LegacyPage    int    `query:"_page" minimum:"1" doc:"Alias of page"`
	LegacyPerPage int    `query:"_per_page" minimum:"1" maximum:"1000" doc:"Alias of rowsPerPage"`
	TitleLike     string `query:"title_like" maxLength:"200" doc:"Alias of search"`
	Filter        string `query:"filter" maxLength:"200" doc:"Alias of search"`
}

// query resolves aliases and defaults into a domain query.
func (in *ListTagsInput) query() domain.TagQuery {
	return domain.TagQuery{
		Page:        firstPositive(in.Page, in.LegacyPage, store.DefaultPage),
		RowsPerPage: firstPositive(in.RowsPerPage, in.LegacyPerPage, store.DefaultRowsPerPage),
		Search:      firstNonEmpty(in.Search, in.TitleLike, in.Filter),
	}
}

// ListTagsOutput wraps the tag page for Huma.
type ListTagsOutput struct {
	Body *domain.TagPage
}

// CreateTagRequest is the request body for creating a tag.
// Length is checked by the service so the message matches every other caller.
type CreateTagRequest struct {
	Title string `json:"title,omitempty" required:"false" maxLength:"200" doc:"Tag title, at least 3 characters"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body CreateTagRequest
}

// TagOutput wraps a tag for Huma.
type TagOutput struct {
	Body *domain.Tag
}

// PreviewSlugInput contains the title to slugify.
type PreviewSlugInput struct {
	Title string `query:"title" required:"true" maxLength:"200" doc:"Title to derive a slug from"`
}

// SlugResponse pairs a title with its derived slug.
type SlugResponse struct {
	Title string `json:"title" doc:"Title as given"`
	Slug  string `json:"slug" doc:"Derived slug"`
}

// SlugOutput wraps the slug preview for Huma.
type SlugOutput struct {
	Body SlugResponse
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*ListTagsOutput, error) {
	page, err := s.services.Tag.Query(ctx, input.query())
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: page}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	tag, err := s.services.Tag.Create(ctx, input.Body.Title)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handlePreviewSlug(_ context.Context, input *PreviewSlugInput) (*SlugOutput, error) {
	return &SlugOutput{
		Body: SlugResponse{
			Title: input.Title,
			Slug:  s.services.Tag.PreviewSlug(input.Title),
		},
	}, nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
