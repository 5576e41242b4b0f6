package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/tagdesk/tagdesk-server/internal/config"
	"github.com/tagdesk/tagdesk-server/internal/logger"
	"github.com/tagdesk/tagdesk-server/internal/seed"
	"github.com/tagdesk/tagdesk-server/internal/service"
	"github.com/tagdesk/tagdesk-server/internal/sse"
	"github.com/tagdesk/tagdesk-server/internal/store"
	"github.com/tagdesk/tagdesk-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.ShutdownerWithError.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// ProvideEventEmitter routes tag events to connected SSE clients.
func ProvideEventEmitter(i do.Injector) (service.EventEmitter, error) {
	return do.MustInvoke[*SSEManagerHandle](i).Manager, nil
}

// ProvideSeeder provides the sample tag generator used for an empty store.
func ProvideSeeder(i do.Injector) (*seed.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return seed.New(cfg.Seed.Count), nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.ShutdownerWithError.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured backend, loads the collection and seeds
// it if empty.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	seeder := do.MustInvoke[*seed.Generator](i)

	if err := os.MkdirAll(cfg.Data.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	slot, path, err := openSlot(cfg, log)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	st, err := store.New(ctx, slot, log.Logger)
	if err != nil {
		_ = slot.Close()
		return nil, err
	}

	if err := st.Initialize(ctx, seeder); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("initialize tag store: %w", err)
	}

	count, err := st.Count(ctx)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	log.Info("Tag store ready",
		"backend", cfg.Store.Backend,
		"path", path,
		"tags", count,
	)

	return &StoreHandle{Store: st}, nil
}

func openSlot(cfg *config.Config, log *logger.Logger) (store.Slot, string, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		path := cfg.SQLitePath()
		slot, err := sqlite.Open(path, log.Logger)
		return slot, path, err
	default:
		path := cfg.BadgerPath()
		slot, err := store.OpenBadger(path, log.Logger)
		return slot, path, err
	}
}
