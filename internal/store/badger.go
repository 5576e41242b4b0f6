package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSlot stores the tag collection under TagsKey in a Badger database.
type BadgerSlot struct {
	db     *badger.DB
	key    []byte
	logger *slog.Logger
}

// OpenBadger opens (or creates) a Badger database at path.
func OpenBadger(path string, logger *slog.Logger) (*BadgerSlot, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Appends must be durable before they are acknowledged
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup
	return openBadger(opts, logger)
}

// OpenBadgerInMemory opens a Badger database that never touches disk.
// Used by tests and by `tagctl` dry runs.
func OpenBadgerInMemory(logger *slog.Logger) (*BadgerSlot, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts, logger)
}

func openBadger(opts badger.Options, logger *slog.Logger) (*BadgerSlot, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", opts.Dir, "in_memory", opts.InMemory)
	}

	return &BadgerSlot{db: db, key: []byte(TagsKey), logger: logger}, nil
}

// Load implements Slot.
func (b *BadgerSlot) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", TagsKey, err)
	}
	return value, nil
}

// Save implements Slot.
func (b *BadgerSlot) Save(ctx context.Context, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key, value)
	}); err != nil {
		return fmt.Errorf("write %s: %w", TagsKey, err)
	}
	return nil
}

// Ping implements Slot.
func (b *BadgerSlot) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return nil
}

// Close implements Slot. Closing twice is a no-op.
func (b *BadgerSlot) Close() error {
	if b.db.IsClosed() {
		return nil
	}
	if b.logger != nil {
		b.logger.Info("Closing database connection")
	}
	return b.db.Close()
}
