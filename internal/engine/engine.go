// Package engine is the core streaming pipeline: a producer goroutine
// pulling raw transactions and fanning them out to parsers, and a
// persister goroutine batching the resulting events into the event
// store. The two goroutines communicate only through one bounded
// channel: the producer never blocks on a full queue (excess events are
// dropped and counted), so source liveness is never coupled to store
// latency.
package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/subhdotsol/Indexer-with-benifit/internal/domain"
	"github.com/subhdotsol/Indexer-with-benifit/internal/ingestsource"
	"github.com/subhdotsol/Indexer-with-benifit/internal/parser"
	"github.com/subhdotsol/Indexer-with-benifit/internal/store"
)

// Defaults for the three tuning parameters, construction-time only.
const (
	DefaultQueueCapacity = 1000
	DefaultBatchSize     = 50
	DefaultFlushInterval = 500 * time.Millisecond
)

// Options configures a new Engine. Source, Parsers are required; Store
// is optional — a nil Store puts the engine in no-persistence mode:
// the producer still runs and still dispatches events, but nothing is
// enqueued or retained.
type Options struct {
	Source  ingestsource.Source
	Parsers *parser.Registry
	Store   store.EventStore

	QueueCapacity int
	BatchSize     int
	FlushInterval time.Duration

	// RetryPolicy, if set, retries a failed SaveBatch with backoff
	// before dropping it. Nil drops a failed batch immediately.
	RetryPolicy *RetryPolicy

	Logger *log.Logger
}

// Engine runs exactly two goroutines in steady state: one producer, one
// persister. A single Engine is run once via Run.
type Engine struct {
	source  ingestsource.Source
	parsers *parser.Registry
	store   store.EventStore

	queueCapacity int
	batchSize     int
	flushInterval time.Duration
	retry         *RetryPolicy
	logger        *log.Logger

	events chan domain.TypedEvent // nil when store == nil
	stats  Stats
}

// New builds an Engine from opts, filling in defaults for any zero-value
// tuning parameter.
func New(opts Options) *Engine {
	e := &Engine{
		source:        opts.Source,
		parsers:       opts.Parsers,
		store:         opts.Store,
		queueCapacity: opts.QueueCapacity,
		batchSize:     opts.BatchSize,
		flushInterval: opts.FlushInterval,
		retry:         opts.RetryPolicy,
		logger:        opts.Logger,
	}

	if e.queueCapacity <= 0 {
		e.queueCapacity = DefaultQueueCapacity
	}
	if e.batchSize <= 0 {
		e.batchSize = DefaultBatchSize
	}
	if e.flushInterval <= 0 {
		e.flushInterval = DefaultFlushInterval
	}
	if e.logger == nil {
		e.logger = log.New(log.Writer(), "[engine] ", log.LstdFlags)
	}

	if e.store != nil {
		e.events = make(chan domain.TypedEvent, e.queueCapacity)
	}

	return e
}

// Stats returns a snapshot of the engine's running counters.
func (e *Engine) Stats() Snapshot {
	return e.stats.Snapshot()
}

// Run drives the producer until the source is exhausted or ctx is
// cancelled, then waits for the persister to drain and terminate. It
// returns nil on normal exhaustion and the context's error on
// cancellation.
func (e *Engine) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	if e.events != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Cancelling ctx stops the producer, not the persister's
			// store calls: the final drain still commits.
			e.runPersister(context.WithoutCancel(ctx))
		}()
	}

	err := e.runProducer(ctx)

	if e.events != nil {
		close(e.events)
		wg.Wait()
	}

	return err
}

// runProducer is the single producer goroutine: acquire the source
// (implicitly exclusive — Engine never calls Next concurrently),
// dispatch to every parser, and non-blockingly enqueue each event.
func (e *Engine) runProducer(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		tx, err := e.source.Next(ctx)
		if err != nil {
			if errors.Is(err, ingestsource.ErrSourceExhausted) {
				return nil
			}
			// Transient and fatal source errors are both logged and
			// the loop continues — the source driver is expected to
			// manage its own reconnect pacing and to return
			// ErrSourceExhausted itself if it wants to stop for good.
			e.logger.Printf("producer: source error: %v", err)
			continue
		}
		e.stats.pulled.Add(1)

		events := e.parsers.Dispatch(tx)
		e.stats.dispatched.Add(uint64(len(events)))

		if e.events == nil {
			continue // no-persistence mode: events are produced, not retained
		}

		for _, ev := range events {
			select {
			case e.events <- ev:
				e.stats.enqueued.Add(1)
			default:
				e.stats.dropped.Add(1)
				e.logger.Printf("producer: queue full, dropping event for signature %s", ev.Signature())
			}
		}
	}
}

// runPersister is the single persister goroutine: accumulate events
// into a buffer, flushing on size or on the flush timer, and draining
// on channel close.
func (e *Engine) runPersister(ctx context.Context) {
	buffer := make([]domain.TypedEvent, 0, e.batchSize)
	ticker := time.NewTicker(e.flushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		batch := buffer
		buffer = make([]domain.TypedEvent, 0, e.batchSize)
		e.commit(ctx, batch)
	}

	for {
		select {
		case ev, ok := <-e.events:
			if !ok {
				flush() // Draining --done--> Terminated
				return
			}
			buffer = append(buffer, ev)
			if len(buffer) >= e.batchSize {
				flush()
				ticker.Reset(e.flushInterval)
			}
		case <-ticker.C:
			flush()
		}
	}
}

// commit flushes one batch: on success it records the committed count,
// on failure it logs and discards the batch. A store outage shows up as
// event loss, not as pipeline stall.
func (e *Engine) commit(ctx context.Context, batch []domain.TypedEvent) {
	e.stats.flushed.Add(1)

	var (
		n   int
		err error
	)
	if e.retry != nil {
		n, err = e.retry.saveBatch(ctx, e.store, batch)
	} else {
		n, err = e.store.SaveBatch(ctx, batch)
	}

	if err != nil {
		e.stats.batchFailures.Add(1)
		e.logger.Printf("persister: save_batch failed, dropping %d events: %v", len(batch), err)
		return
	}

	e.stats.committed.Add(uint64(n))
	e.logger.Printf("persister: committed %d of %d events", n, len(batch))
}
