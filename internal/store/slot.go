package store

import "context"

// Slot is a durable key-value cell holding one encoded value.
// Implementations back the Store with an embedded database.
type Slot interface {
	// Load returns the stored value, or nil when nothing has been saved yet.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored value. It must be durable when it returns nil.
	Save(ctx context.Context, value []byte) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying database.
	Close() error
}
