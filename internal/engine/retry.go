package engine

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
	"github.com/subhdotsol/Indexer-with-benifit/internal/store"
)

// RetryPolicy opts a persister into retrying a failed SaveBatch with
// exponential backoff before giving up and dropping the batch. Absent
// (nil), one failed flush drops its batch immediately and persistence
// stays at-most-once per signature.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy is a reasonable opt-in default: five attempts,
// starting at 100ms and capping at 2s.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:     5,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

func (p *RetryPolicy) saveBatch(ctx context.Context, s store.EventStore, batch []domain.TypedEvent) (int, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval

	// MaxAttempts counts the first call, so it allows MaxAttempts-1 retries.
	retries := 0
	if p.MaxAttempts > 1 {
		retries = p.MaxAttempts - 1
	}
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)

	var inserted int
	err := backoff.Retry(func() error {
		n, err := s.SaveBatch(ctx, batch)
		if err != nil {
			if errors.Is(err, store.ErrFatalStore) {
				return backoff.Permanent(err)
			}
			return err
		}
		inserted = n
		return nil
	}, b)

	return inserted, err
}
