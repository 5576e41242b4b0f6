package di

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagdesk/tagdesk-server/internal/config"
	"github.com/tagdesk/tagdesk-server/internal/di/providers"
	"github.com/tagdesk/tagdesk-server/internal/domain"
	"github.com/tagdesk/tagdesk-server/internal/export"
	"github.com/tagdesk/tagdesk-server/internal/logger"
	"github.com/tagdesk/tagdesk-server/internal/service"
)

func testConfig(t *testing.T, backend string, seedCount int) *config.Config {
	t.Helper()
	return &config.Config{
		App:    config.AppConfig{Environment: "test"},
		Logger: config.LoggerConfig{Level: "error"},
		Data:   config.DataConfig{BasePath: t.TempDir()},
		Store:  config.StoreConfig{Backend: backend},
		Seed:   config.SeedConfig{Count: seedCount},
	}
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Writer: io.Discard, Level: slog.LevelError})
}

func TestCLIContainer_SeedsAndCreates(t *testing.T) {
	for _, backend := range []string{config.BackendBadger, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend, 12)
			injector := NewCLIContainer(cfg, quietLogger())

			tags := do.MustInvoke[*service.TagService](injector)
			ctx := context.Background()

			page, err := tags.Query(ctx, domain.TagQuery{Page: 1, RowsPerPage: 10})
			require.NoError(t, err)
			assert.Equal(t, 12, page.Items)
			assert.Equal(t, 2, page.Pages)

			created, err := tags.Create(ctx, "Persisted Tag")
			require.NoError(t, err)

			exporter := do.MustInvoke[*export.Exporter](injector)
			assert.False(t, exporter.CanUpload())

			report := injector.Shutdown()
			require.Empty(t, report.Errors)

			// A fresh container over the same data path sees the same collection
			// and does not reseed.
			again := NewCLIContainer(cfg, quietLogger())
			defer again.Shutdown()

			all, err := do.MustInvoke[*service.TagService](again).All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 13)
			assert.Equal(t, created.ID, all[12].ID)
		})
	}
}

func TestCLIContainer_ZeroSeedLeavesStoreEmpty(t *testing.T) {
	injector := NewCLIContainer(testConfig(t, config.BackendBadger, 0), quietLogger())
	defer injector.Shutdown()

	handle := do.MustInvoke[*providers.StoreHandle](injector)
	n, err := handle.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCLIContainer_EventsAreDiscarded(t *testing.T) {
	injector := NewCLIContainer(testConfig(t, config.BackendBadger, 0), quietLogger())
	defer injector.Shutdown()

	emitter := do.MustInvoke[service.EventEmitter](injector)
	assert.IsType(t, service.NoopEmitter{}, emitter)
}
