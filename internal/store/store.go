// Package store defines the contract a persistence backend satisfies
// to receive decoded events from the ingestion engine. Concrete
// backends live in subpackages (postgres, memory).
package store

import (
	"context"
	"errors"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

// ErrDuplicateKey means the backend recognized a signature it already
// has. SaveOne/SaveMany/SaveBatch never surface this to the caller —
// it is absorbed internally, the same way the events it describes are
// meant to be silently skipped rather than treated as failures.
var ErrDuplicateKey = errors.New("store: duplicate key")

// ErrTransientStore marks a failure worth retrying (a dropped
// connection, a timeout). ErrFatalStore marks one that is not
// (a malformed query, a constraint violation unrelated to duplication).
var (
	ErrTransientStore = errors.New("store: transient failure")
	ErrFatalStore     = errors.New("store: fatal failure")
)

// EventStore persists decoded events. SaveBatch is the atomic form the
// engine's persister goroutine uses: duplicates within the batch are
// skipped rather than failing the whole batch, and the count returned
// is how many rows were newly inserted.
type EventStore interface {
	SaveOne(ctx context.Context, e domain.TypedEvent) error
	SaveMany(ctx context.Context, es []domain.TypedEvent) error
	SaveBatch(ctx context.Context, es []domain.TypedEvent) (int, error)
}
