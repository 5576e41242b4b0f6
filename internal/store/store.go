package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
)

// Seeder produces the sample tags used to populate an empty store.
type Seeder interface {
	Generate(ctx context.Context) ([]domain.Tag, error)
}

// Store holds the ordered tag collection and persists it to a Slot.
//
// Reads return snapshots. Appends hold the write lock across persistence so
// there is only ever one writer touching the slot.
type Store struct {
	slot   Slot
	logger *slog.Logger

	mu   sync.RWMutex
	tags []domain.Tag
	ids  map[string]struct{}
}

// New loads the persisted collection from slot.
// A missing value is an empty collection; an undecodable one is a read failure.
func New(ctx context.Context, slot Slot, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := slot.Load(ctx)
	if err != nil {
		return nil, domainerrors.StorageReadFailed(err, "failed to load tags")
	}

	tags, err := decodeTags(raw)
	if err != nil {
		return nil, domainerrors.StorageReadFailed(err, "failed to decode tags")
	}

	ids := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, dup := ids[t.ID]; dup {
			return nil, domainerrors.StorageReadFailed(fmt.Errorf("duplicate tag id %q", t.ID), "persisted tags are inconsistent")
		}
		ids[t.ID] = struct{}{}
	}

	logger.Debug("tag store loaded", "count", len(tags))

	return &Store{
		slot:   slot,
		logger: logger,
		tags:   tags,
		ids:    ids,
	}, nil
}

// Initialize seeds the store when it is empty. Calling it again is a no-op.
func (s *Store) Initialize(ctx context.Context, seeder Seeder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tags) > 0 {
		return nil
	}

	seed, err := seeder.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate seed tags: %w", err)
	}
	if len(seed) == 0 {
		return nil
	}

	ids := make(map[string]struct{}, len(seed))
	for _, t := range seed {
		if _, dup := ids[t.ID]; dup {
			return domainerrors.AlreadyExistsf("seed contains duplicate tag id %q", t.ID)
		}
		ids[t.ID] = struct{}{}
	}

	if err := s.persist(ctx, seed); err != nil {
		return err
	}

	s.tags = slices.Clone(seed)
	s.ids = ids

	s.logger.Info("tag store seeded", "count", len(seed))
	return nil
}

// Append adds tag to the end of the collection and persists it.
// On a failed write the in-memory collection is left untouched.
func (s *Store) Append(ctx context.Context, tag domain.Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.ids[tag.ID]; dup {
		return domainerrors.AlreadyExistsf("tag %q already exists", tag.ID)
	}

	next := make([]domain.Tag, len(s.tags), len(s.tags)+1)
	copy(next, s.tags)
	next = append(next, tag)

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.tags = next
	s.ids[tag.ID] = struct{}{}
	return nil
}

// All returns a snapshot of every tag in insertion order.
func (s *Store) All(ctx context.Context) ([]domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.tags), nil
}

// Count returns the number of stored tags.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tags), nil
}

// Ping checks the backing slot.
func (s *Store) Ping(ctx context.Context) error {
	return s.slot.Ping(ctx)
}

// Close closes the backing slot.
func (s *Store) Close() error {
	return s.slot.Close()
}

// persist must be called with the write lock held.
func (s *Store) persist(ctx context.Context, tags []domain.Tag) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to encode tags")
	}

	if err := s.slot.Save(ctx, data); err != nil {
		s.logger.Error("failed to persist tags", "count", len(tags), "error", err)
		return domainerrors.StorageWriteFailed(err, "failed to persist tags")
	}
	return nil
}

func decodeTags(raw []byte) ([]domain.Tag, error) {
	if len(raw) == 0 {
		return []domain.Tag{}, nil
	}

	var tags []domain.Tag
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}
