package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	"github.com/tagdesk/tagdesk-server/internal/export"
	"github.com/tagdesk/tagdesk-server/internal/logger"
	"github.com/tagdesk/tagdesk-server/internal/service"
	"github.com/tagdesk/tagdesk-server/internal/sse"
	"github.com/tagdesk/tagdesk-server/internal/store"
)

// tagsSeeder seeds a fixed collection.
type tagsSeeder []domain.Tag

func (s tagsSeeder) Generate(context.Context) ([]domain.Tag, error) {
	return s, nil
}

// sampleTags returns n tags titled "Tag 01".."Tag n" with every third one
// titled "Gopher nn" so searches have something to find.
func sampleTags(n int) []domain.Tag {
	tags := make([]domain.Tag, n)
	for i := range tags {
		title := fmt.Sprintf("Tag %02d", i+1)
		if (i+1)%3 == 0 {
			title = fmt.Sprintf("Gopher %02d", i+1)
		}
		tags[i] = domain.Tag{
			ID:             fmt.Sprintf("tag-%02d", i+1),
			Title:          title,
			Slug:           fmt.Sprintf("tag-%02d", i+1),
			AmountOfVideos: i + 1,
		}
	}
	return tags
}

type testServer struct {
	*Server
	api        humatest.TestAPI
	store      *store.Store
	sseManager *sse.Manager
}

type setupConfig struct {
	options  Options
	seed     []domain.Tag
	uploader *export.Uploader
}

type testOption func(*setupConfig)

func withCreateRate(n int) testOption {
	return func(c *setupConfig) { c.options.CreateRatePerMinute = n }
}

func withSeed(tags []domain.Tag) testOption {
	return func(c *setupConfig) { c.seed = tags }
}

func withUploader(u *export.Uploader) testOption {
	return func(c *setupConfig) { c.uploader = u }
}

// setupTestServer wires a server over an in-memory Badger store seeded with 25 tags.
func setupTestServer(t *testing.T, opts ...testOption) *testServer {
	t.Helper()

	cfg := setupConfig{
		options: Options{Version: "test", CreateRatePerMinute: 1000},
		seed:    sampleTags(25),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := logger.Discard()
	ctx := context.Background()

	slot, err := store.OpenBadgerInMemory(log)
	require.NoError(t, err)

	st, err := store.New(ctx, slot, log)
	require.NoError(t, err)
	require.NoError(t, st.Initialize(ctx, tagsSeeder(cfg.seed)))

	sseManager := sse.NewManager(log, sse.WithHeartbeatInterval(time.Hour))
	mgrCtx, cancel := context.WithCancel(ctx)
	go sseManager.Start(mgrCtx)

	services := &Services{
		Tag:    service.NewTagService(st, sseManager, log),
		Export: export.NewExporter(st, cfg.uploader, log),
	}

	srv := NewServer(st, services, sse.NewHandler(sseManager, log), sseManager, cfg.options, log)

	t.Cleanup(func() {
		srv.Close()
		cancel()
		_ = sseManager.Shutdown(context.Background())
		_ = st.Close()
	})

	return &testServer{
		Server:     srv,
		api:        humatest.Wrap(t, srv.API()),
		store:      st,
		sseManager: sseManager,
	}
}
