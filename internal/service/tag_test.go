package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
	"github.com/tagdesk/tagdesk-server/internal/sse"
	"github.com/tagdesk/tagdesk-server/internal/store"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []sse.Event
}

func (r *recordingEmitter) Emit(event sse.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type seedTags []domain.Tag

func (s seedTags) Generate(context.Context) ([]domain.Tag, error) { return s, nil }

// failingStore fails every append with a storage error.
type failingStore struct{ tags []domain.Tag }

func (f *failingStore) All(context.Context) ([]domain.Tag, error) { return f.tags, nil }

func (f *failingStore) Append(context.Context, domain.Tag) error {
	return domainerrors.StorageWriteFailed(errors.New("disk full"), "failed to persist tags")
}

func numberedTags(n int) []domain.Tag {
	tags := make([]domain.Tag, n)
	for i := range tags {
		title := fmt.Sprintf("Tag Number %02d", i+1)
		tags[i] = domain.Tag{
			ID:             fmt.Sprintf("tag-%02d", i+1),
			Title:          title,
			Slug:           strings.ToLower(strings.ReplaceAll(title, " ", "-")),
			AmountOfVideos: i + 1,
		}
	}
	return tags
}

func setupTestTags(t *testing.T, seed []domain.Tag) (*TagService, *store.Store, *recordingEmitter) {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	slot, err := store.OpenBadgerInMemory(logger)
	require.NoError(t, err)

	testStore, err := store.New(ctx, slot, logger)
	require.NoError(t, err)
	t.Cleanup(func() { testStore.Close() })

	require.NoError(t, testStore.Initialize(ctx, seedTags(seed)))

	emitter := &recordingEmitter{}
	return NewTagService(testStore, emitter, logger), testStore, emitter
}

func TestTagService_Query_FirstPage(t *testing.T) {
	svc, _, _ := setupTestTags(t, numberedTags(25))

	page, err := svc.Query(context.Background(), domain.TagQuery{Page: 1, RowsPerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, 1, page.First)
	assert.Equal(t, 25, page.Items)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 3, page.Last)
	assert.Len(t, page.Data, 10)
	assert.Nil(t, page.Prev)
	require.NotNil(t, page.Next)
	assert.Equal(t, 2, *page.Next)
	assert.Equal(t, "tag-01", page.Data[0].ID)
}

func TestTagService_Query_LastPage(t *testing.T) {
	svc, _, _ := setupTestTags(t, numberedTags(25))

	page, err := svc.Query(context.Background(), domain.TagQuery{Page: 3, RowsPerPage: 10})
	require.NoError(t, err)

	assert.Len(t, page.Data, 5)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Prev)
	assert.Equal(t, 2, *page.Prev)
	assert.Equal(t, "tag-21", page.Data[0].ID)
}

func TestTagService_Query_EmptyStore(t *testing.T) {
	svc, _, _ := setupTestTags(t, nil)

	page, err := svc.Query(context.Background(), domain.TagQuery{Page: 1, RowsPerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, 0, page.Items)
	assert.Equal(t, 1, page.Pages)
	assert.Equal(t, 1, page.Last)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Nil(t, page.Prev)
	assert.Nil(t, page.Next)
}

func TestTagService_Query_ClampsOutOfRangePage(t *testing.T) {
	svc, _, _ := setupTestTags(t, numberedTags(25))
	ctx := context.Background()

	clamped, err := svc.Query(ctx, domain.TagQuery{Page: 99, RowsPerPage: 10})
	require.NoError(t, err)
	direct, err := svc.Query(ctx, domain.TagQuery{Page: 3, RowsPerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, direct, clamped)

	low, err := svc.Query(ctx, domain.TagQuery{Page: 0, RowsPerPage: 10})
	require.NoError(t, err)
	assert.Nil(t, low.Prev)
	assert.Equal(t, "tag-01", low.Data[0].ID)
}

func TestTagService_Query_Search(t *testing.T) {
	seed := []domain.Tag{
		{ID: "tag-a", Title: "Quasi Dolorem", Slug: "quasi-dolorem"},
		{ID: "tag-b", Title: "dolor sit", Slug: "dolor-sit"},
		{ID: "tag-c", Title: "Amet Consectetur", Slug: "amet-consectetur"},
		{ID: "tag-d", Title: "DOLORES", Slug: "dolores"},
	}
	svc, _, _ := setupTestTags(t, seed)

	tests := []struct {
		name    string
		search  string
		wantIDs []string
	}{
		{"no search returns all", "", []string{"tag-a", "tag-b", "tag-c", "tag-d"}},
		{"case insensitive substring", "DoLoR", []string{"tag-a", "tag-b", "tag-d"}},
		{"single match", "amet", []string{"tag-c"}},
		{"no match", "zzz", []string{}},
		{"slug is not matched", "quasi-dolorem", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.Query(context.Background(), domain.TagQuery{Page: 1, RowsPerPage: 10, Search: tt.search})
			require.NoError(t, err)

			ids := make([]string, 0, len(page.Data))
			for _, tag := range page.Data {
				ids = append(ids, tag.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), page.Items)
		})
	}
}

func TestTagService_Query_Partition(t *testing.T) {
	svc, _, _ := setupTestTags(t, numberedTags(47))
	ctx := context.Background()

	for _, rows := range []int{1, 5, 10, 47, 100} {
		for _, search := range []string{"", "1", "number 2"} {
			first, err := svc.Query(ctx, domain.TagQuery{Page: 1, RowsPerPage: rows, Search: search})
			require.NoError(t, err)

			seen := make(map[string]bool)
			total := 0
			for p := 1; p <= first.Pages; p++ {
				page, err := svc.Query(ctx, domain.TagQuery{Page: p, RowsPerPage: rows, Search: search})
				require.NoError(t, err)
				assert.LessOrEqual(t, len(page.Data), rows)
				for _, tag := range page.Data {
					assert.False(t, seen[tag.ID], "tag %s on two pages", tag.ID)
					seen[tag.ID] = true
				}
				total += len(page.Data)
			}
			assert.Equal(t, first.Items, total, "rows=%d search=%q", rows, search)
		}
	}
}

func TestTagService_Query_RejectsNonPositiveRows(t *testing.T) {
	svc, _, _ := setupTestTags(t, numberedTags(3))

	_, err := svc.Query(context.Background(), domain.TagQuery{Page: 1, RowsPerPage: 0})

	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestTagService_Create(t *testing.T) {
	svc, testStore, emitter := setupTestTags(t, numberedTags(25))
	ctx := context.Background()

	tag, err := svc.Create(ctx, "Café Crème")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(tag.ID, "tag-"))
	assert.Equal(t, "Café Crème", tag.Title)
	assert.Equal(t, "cafe-creme", tag.Slug)
	assert.Equal(t, 0, tag.AmountOfVideos)

	count, err := testStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, count)

	// Appended last, so it closes out page 3.
	page, err := svc.Query(ctx, domain.TagQuery{Page: 3, RowsPerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 6)
	assert.Equal(t, *tag, page.Data[5])

	require.Len(t, emitter.events, 1)
	assert.Equal(t, sse.EventTagCreated, emitter.events[0].Type)
}

func TestTagService_Create_MinimumLength(t *testing.T) {
	svc, testStore, emitter := setupTestTags(t, nil)
	ctx := context.Background()

	for _, title := range []string{"", "a", "ab", "é!"} {
		_, err := svc.Create(ctx, title)
		require.Error(t, err, "title %q", title)

		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
		assert.Equal(t, "Minimum 3 characters.", domainErr.Message)
	}

	count, _ := testStore.Count(ctx)
	assert.Equal(t, 0, count)
	assert.Empty(t, emitter.events)

	short := strings.Repeat("é", domain.MinTitleLength-1)
	_, err := svc.Create(ctx, short)
	require.Error(t, err, "title %q", short)

	tag, err := svc.Create(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.MinTitleLength, utf8.RuneCountInString(tag.Title))

	page, err := svc.Query(ctx, domain.TagQuery{Page: 1, RowsPerPage: 10, Search: "abc"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, tag.ID, page.Data[0].ID)
}

func TestTagService_Create_DuplicateSlugsAllowed(t *testing.T) {
	svc, _, _ := setupTestTags(t, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, "Rock & Roll")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "rock roll")
	require.NoError(t, err)

	assert.Equal(t, a.Slug, b.Slug)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTagService_Create_StorageFailure(t *testing.T) {
	emitter := &recordingEmitter{}
	svc := NewTagService(&failingStore{}, emitter, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Create(context.Background(), "valid title")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStorageWriteFailed)
	assert.Empty(t, emitter.events, "no event for a tag that was not stored")
}

func TestTagService_PreviewSlug(t *testing.T) {
	svc := NewTagService(&failingStore{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, "hello-world", svc.PreviewSlug("Hello, World!"))
}
