// Package postgres is the pgx/v5-backed EventStore: one table per
// event variant, duplicates detected by pgcode and silently skipped so
// re-ingesting a signature never aborts a batch.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subhdotsol/Indexer-with-benifit/internal/store"
)

// Pool wraps pgxpool.Pool for dependency injection in tests.
type Pool struct {
	*pgxpool.Pool
}

// NewPool parses dsn, connects, and verifies the connection with a ping.
func NewPool(ctx context.Context, dsn string) (*Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Close closes the connection pool.
func (p *Pool) Close() {
	p.Pool.Close()
}

const pgErrUniqueViolation = "23505"

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrUniqueViolation
	}
	return false
}

// classify turns a raw pgx error into one of the store package's
// sentinel errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKeyError(err) {
		return store.ErrDuplicateKey
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", store.ErrTransientStore, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %v", store.ErrFatalStore, err)
	}
	return fmt.Errorf("%w: %v", store.ErrTransientStore, err)
}
