package engine

import "sync/atomic"

// Stats holds atomic running counters for one Engine. All fields are
// safe to read concurrently with the producer/persister goroutines;
// Snapshot copies them out for reporting.
type Stats struct {
	pulled        atomic.Uint64 // RawTransactions pulled from the source
	dispatched    atomic.Uint64 // TypedEvents produced by the parser registry
	enqueued      atomic.Uint64 // TypedEvents accepted onto the channel
	dropped       atomic.Uint64 // TypedEvents dropped because the channel was full
	flushed       atomic.Uint64 // flush operations attempted
	committed     atomic.Uint64 // rows actually written by a successful SaveBatch
	batchFailures atomic.Uint64 // SaveBatch calls that returned an error
}

// Snapshot is a point-in-time copy of Stats, safe to pass around or
// render as metrics.
type Snapshot struct {
	Pulled        uint64
	Dispatched    uint64
	Enqueued      uint64
	Dropped       uint64
	Flushed       uint64
	Committed     uint64
	BatchFailures uint64
}

// Snapshot copies the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Pulled:        s.pulled.Load(),
		Dispatched:    s.dispatched.Load(),
		Enqueued:      s.enqueued.Load(),
		Dropped:       s.dropped.Load(),
		Flushed:       s.flushed.Load(),
		Committed:     s.committed.Load(),
		BatchFailures: s.batchFailures.Load(),
	}
}
