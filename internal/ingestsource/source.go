// Package ingestsource defines the abstract pull-based producer of raw
// transactions. Concrete drivers live in subpackages; the engine only
// ever depends on the Source interface.
package ingestsource

import (
	"context"
	"errors"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
)

// Sentinel errors classifying a Next failure. Wrap one of these with
// fmt.Errorf("%w: ...", ...) from a driver so callers can errors.Is it.
var (
	// ErrSourceExhausted signals the stream is permanently over; the
	// engine returns normally when it sees this.
	ErrSourceExhausted = errors.New("ingestsource: exhausted")
	// ErrTransientSource marks a hiccup the driver is expected to retry
	// on its own; the engine logs and continues pulling.
	ErrTransientSource = errors.New("ingestsource: transient failure")
	// ErrFatalSource marks a failure the driver considers unrecoverable.
	// The engine still does not stop on it — a driver that wants to stop
	// must itself start returning ErrSourceExhausted.
	ErrFatalSource = errors.New("ingestsource: fatal failure")
)

// Source yields the next raw transaction when asked. A single Source
// instance is only ever called from one goroutine at a time; callers
// (the engine) hold exclusive access for the duration of a Next call.
//
// Next must not block the caller on CPU-bound work; it may suspend
// arbitrarily long waiting on I/O. It returns:
//   - (tx, nil) when a value is available,
//   - (nil, err) wrapping ErrSourceExhausted when the stream is over,
//   - (nil, err) wrapping ErrTransientSource or ErrFatalSource otherwise.
type Source interface {
	Next(ctx context.Context) (*domain.RawTransaction, error)
}
