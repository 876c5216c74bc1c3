// Package memory is an in-process EventStore backed by a mutex-guarded
// map, keyed by (variant, signature) so duplicate saves are no-ops.
// Used by engine tests and by runs without a DATABASE_URL.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
	"github.com/subhdotsol/Indexer-with-benifit/internal/store"
)

// Store keeps every saved event in memory, keyed by variant+signature.
// Intended for tests and for the optional no-database run mode, not for
// production volume.
type Store struct {
	mu   sync.Mutex
	data map[string]domain.TypedEvent
}

var _ store.EventStore = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]domain.TypedEvent)}
}

func key(e domain.TypedEvent) string {
	return fmt.Sprintf("%s|%s", e.Kind, e.Signature())
}

// SaveOne inserts e, silently doing nothing if its signature is already
// present.
func (s *Store) SaveOne(_ context.Context, e domain.TypedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(e)
	return nil
}

// SaveMany inserts each event, skipping duplicates individually.
func (s *Store) SaveMany(_ context.Context, es []domain.TypedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range es {
		s.insertLocked(e)
	}
	return nil
}

// SaveBatch inserts es atomically from the caller's point of view
// (single lock acquisition) and returns how many were newly inserted.
func (s *Store) SaveBatch(_ context.Context, es []domain.TypedEvent) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, e := range es {
		if s.insertLocked(e) {
			inserted++
		}
	}
	return inserted, nil
}

// insertLocked reports whether e was newly inserted (false means it was
// already present and was skipped).
func (s *Store) insertLocked(e domain.TypedEvent) bool {
	k := key(e)
	if _, exists := s.data[k]; exists {
		return false
	}
	s.data[k] = e
	return true
}

// Len returns the number of distinct events currently stored. Used by
// tests; not part of the EventStore contract.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Get returns the stored event for (kind, signature), if any. Used by
// tests.
func (s *Store) Get(kind domain.EventKind, signature string) (domain.TypedEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[fmt.Sprintf("%s|%s", kind, signature)]
	return e, ok
}
