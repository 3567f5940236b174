// Package memory provides the in-process collection store used for a study session.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// HealthCheckName is the name the store registers under in the health registry.
const HealthCheckName = "collection-store"

// Store holds one collection value for the lifetime of the process.
// Reads hand out deep copies and writes replace the value wholesale, so no
// caller ever shares memory with the stored collection.
type Store struct {
	mu         sync.RWMutex
	collection domain.Collection
	version    uint64
	logger     *slog.Logger
}

// StoreConfig holds configuration for creating a Store.
type StoreConfig struct {
	// Initial is the collection the store starts with.
	Initial domain.Collection

	// Logger is the base logger; nil uses slog.Default.
	Logger *slog.Logger
}

// NewStore creates a store seeded with cfg.Initial.
func NewStore(cfg StoreConfig) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		collection: cfg.Initial.Clone(),
		logger:     logger.With(slog.String("component", "collection_store")),
	}
}

// Snapshot returns a deep copy of the current collection.
func (s *Store) Snapshot(ctx context.Context) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return domain.Collection{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collection.Clone(), nil
}

// Replace swaps the stored collection for a copy of c.
func (s *Store) Replace(ctx context.Context, c domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.set(ctx, c)

	return nil
}

// Update runs fn against a private copy under the write lock.
func (s *Store) Update(
	ctx context.Context,
	fn func(domain.Collection) (domain.Collection, error),
) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return domain.Collection{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.collection.Clone())
	if err != nil {
		return domain.Collection{}, err
	}

	s.set(ctx, next)

	return next.Clone(), nil
}

func (s *Store) set(ctx context.Context, c domain.Collection) {
	s.collection = c.Clone()
	s.version++

	stats := s.collection.Stats()
	s.logger.DebugContext(ctx, "collection replaced",
		slog.Uint64("version", s.version),
		slog.Int("subjects", stats.Subjects),
		slog.Int("topics", stats.Topics),
		slog.Int("cards", stats.Cards),
	)
}

// Version counts the replacements made since the store was created.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return HealthCheckName
}

// lockProbeInterval is how often Check retries a held lock.
const lockProbeInterval = time.Millisecond

// Check implements ports.HealthChecker. The store is healthy whenever a read
// lock can be taken before ctx expires. The lock is only ever tried, so an
// expired check leaves nothing waiting on it.
func (s *Store) Check(ctx context.Context) error {
	ticker := time.NewTicker(lockProbeInterval)
	defer ticker.Stop()

	for {
		if s.mu.TryRLock() {
			s.mu.RUnlock()

			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("collection store lock: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// Describe implements ports.HealthDescriber.
func (s *Store) Describe(_ context.Context) string {
	s.mu.RLock()
	stats := s.collection.Stats()
	s.mu.RUnlock()

	return fmt.Sprintf("%d subjects, %d topics, %d cards", stats.Subjects, stats.Topics, stats.Cards)
}
