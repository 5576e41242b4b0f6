// Package service holds the tag query and creation logic shared by the HTTP
// API, the CLI and the MCP tool server.
package service

import (
	"context"
	"log/slog"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
	"github.com/tagdesk/tagdesk-server/internal/id"
	"github.com/tagdesk/tagdesk-server/internal/slug"
	"github.com/tagdesk/tagdesk-server/internal/sse"
	"github.com/tagdesk/tagdesk-server/internal/store"
	"github.com/tagdesk/tagdesk-server/internal/validation"
)

// TagStore is the part of store.Store the service reads and appends to.
type TagStore interface {
	All(ctx context.Context) ([]domain.Tag, error)
	Append(ctx context.Context, tag domain.Tag) error
}

// EventEmitter broadcasts change notifications. *sse.Manager implements it.
type EventEmitter interface {
	Emit(event sse.Event)
}

// NoopEmitter discards events. Used by the CLI and in tests.
type NoopEmitter struct{}

// Emit implements EventEmitter.
func (NoopEmitter) Emit(sse.Event) {}

// TagService filters, paginates and creates tags.
type TagService struct {
	store     TagStore
	events    EventEmitter
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a new tag service. A nil emitter disables events.
func NewTagService(tagStore TagStore, events EventEmitter, logger *slog.Logger) *TagService {
	if events == nil {
		events = NoopEmitter{}
	}
	return &TagService{
		store:     tagStore,
		events:    events,
		validator: validation.New(),
		logger:    logger,
	}
}

// createTagInput carries the only rule a new tag must satisfy.
// The min tag mirrors domain.MinTitleLength.
type createTagInput struct {
	Title string `json:"title" validate:"min=3"`
}

// Query returns one page of tags whose titles contain q.Search, ignoring case.
//
// Callers validate q.Page and q.RowsPerPage. A page outside the result range is
// clamped rather than rejected, so stale page numbers still land on real data.
func (s *TagService) Query(ctx context.Context, q domain.TagQuery) (*domain.TagPage, error) {
	if q.RowsPerPage < 1 {
		return nil, domainerrors.ValidationWithDetails("rowsPerPage must be at least 1", map[string]string{
			"rowsPerPage": "Must be at least 1.",
		})
	}

	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	filtered := all
	if q.Search != "" {
		filtered = make([]domain.Tag, 0, len(all))
		for _, t := range all {
			if t.MatchesTitle(q.Search) {
				filtered = append(filtered, t)
			}
		}
	}

	w := store.Paginate(filtered, q.Page, q.RowsPerPage)

	s.logger.Debug("tag query",
		"page", w.Page,
		"rows_per_page", q.RowsPerPage,
		"search", q.Search,
		"items", w.Total)

	return &domain.TagPage{
		First: 1,
		Prev:  w.Prev,
		Next:  w.Next,
		Last:  w.Pages,
		Pages: w.Pages,
		Items: w.Total,
		Data:  w.Items,
	}, nil
}

// Create validates title, derives its slug and appends a new tag with no videos.
// The tag is visible to the next Query once Create returns.
func (s *TagService) Create(ctx context.Context, title string) (*domain.Tag, error) {
	if err := s.validator.Validate(createTagInput{Title: title}); err != nil {
		return nil, err
	}

	tagID, err := id.NewTagID()
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate tag id")
	}

	tag := domain.Tag{
		ID:             tagID,
		Title:          title,
		Slug:           slug.Derive(title),
		AmountOfVideos: 0,
	}

	if err := s.store.Append(ctx, tag); err != nil {
		s.logger.Warn("failed to create tag", "title", title, "error", err)
		return nil, err
	}

	s.events.Emit(sse.NewTagCreatedEvent(tag))

	s.logger.Info("tag created", "tag_id", tag.ID, "slug", tag.Slug)

	return &tag, nil
}

// PreviewSlug returns the slug a tag with this title would get.
func (s *TagService) PreviewSlug(title string) string {
	return slug.Derive(title)
}

// All returns every tag in insertion order.
func (s *TagService) All(ctx context.Context) ([]domain.Tag, error) {
	return s.store.All(ctx)
}
