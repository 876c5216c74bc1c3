// Package observability provides Prometheus metrics for monitoring the
// ingestion engine.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/subhdotsol/Indexer-with-benifit/internal/engine"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Engine pipeline metrics
	TransactionsPulled prometheus.Counter
	EventsDispatched   prometheus.Counter
	EventsEnqueued     prometheus.Counter
	EventsDropped      prometheus.Counter
	BatchesFlushed     prometheus.Counter
	EventsCommitted    prometheus.Counter
	BatchFailures      prometheus.Counter
	QueueDepth         prometheus.Gauge
	FlushDuration      prometheus.Histogram
	ParserEventsByKind *prometheus.CounterVec

	// Source metrics
	SourceErrors *prometheus.CounterVec

	// Store metrics
	StoreSaveDuration *prometheus.HistogramVec
	StoreSaveErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulFlush prometheus.Gauge
	UptimeSeconds       prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_indexer"
	}

	return &Metrics{
		TransactionsPulled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "transactions_pulled_total",
			Help:      "Total number of raw transactions pulled from the source",
		}),
		EventsDispatched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "events_dispatched_total",
			Help:      "Total number of typed events produced by the parser registry",
		}),
		EventsEnqueued: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "events_enqueued_total",
			Help:      "Total number of events accepted onto the persister queue",
		}),
		EventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "events_dropped_total",
			Help:      "Total number of events dropped because the queue was full",
		}),
		BatchesFlushed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "batches_flushed_total",
			Help:      "Total number of flush operations attempted",
		}),
		EventsCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "events_committed_total",
			Help:      "Total number of events successfully written by SaveBatch",
		}),
		BatchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "batch_failures_total",
			Help:      "Total number of SaveBatch calls that returned an error",
		}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "queue_depth",
			Help:      "Current number of events buffered in the persister queue",
		}),
		FlushDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "flush_duration_seconds",
			Help:      "Time spent in a single SaveBatch call",
			Buckets:   prometheus.DefBuckets,
		}),
		ParserEventsByKind: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "events_by_kind_total",
			Help:      "Total number of typed events produced, by event kind",
		}, []string{"kind"}),

		SourceErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "errors_total",
			Help:      "Total number of errors returned by the ingestion source, by class",
		}, []string{"class"}),

		StoreSaveDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "save_duration_seconds",
			Help:      "Store save call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		StoreSaveErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "save_errors_total",
			Help:      "Total number of store save errors, by class",
		}, []string{"operation", "class"}),

		LastSuccessfulFlush: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_flush_timestamp",
			Help:      "Unix timestamp of the last successful flush",
		}),
		UptimeSeconds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "uptime_seconds_total",
			Help:      "Total uptime in seconds",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// SnapshotObserver copies an engine snapshot's monotonic counters onto
// Prometheus counters by tracking the delta against the previously
// observed snapshot. Counters only move forward, so re-setting an
// absolute value would double-count across calls.
type SnapshotObserver struct {
	m    *Metrics
	prev engine.Snapshot
}

// NewSnapshotObserver returns an observer that reports deltas against
// an initially empty snapshot.
func NewSnapshotObserver(m *Metrics) *SnapshotObserver {
	return &SnapshotObserver{m: m}
}

// Observe records the delta between snap and the previously observed
// snapshot onto the underlying Metrics counters, and sets the queue
// depth gauge from the live enqueued-minus-committed estimate.
func (o *SnapshotObserver) Observe(snap engine.Snapshot) {
	o.m.TransactionsPulled.Add(float64(delta(snap.Pulled, o.prev.Pulled)))
	o.m.EventsDispatched.Add(float64(delta(snap.Dispatched, o.prev.Dispatched)))
	o.m.EventsEnqueued.Add(float64(delta(snap.Enqueued, o.prev.Enqueued)))
	o.m.EventsDropped.Add(float64(delta(snap.Dropped, o.prev.Dropped)))
	o.m.BatchesFlushed.Add(float64(delta(snap.Flushed, o.prev.Flushed)))
	o.m.EventsCommitted.Add(float64(delta(snap.Committed, o.prev.Committed)))
	o.m.BatchFailures.Add(float64(delta(snap.BatchFailures, o.prev.BatchFailures)))

	if snap.Enqueued > snap.Committed {
		o.m.QueueDepth.Set(float64(snap.Enqueued - snap.Committed))
	} else {
		o.m.QueueDepth.Set(0)
	}

	o.prev = snap
}

func delta(current, previous uint64) uint64 {
	if current < previous {
		return 0
	}
	return current - previous
}

// RecordParserEvent increments the per-kind parser event counter.
func RecordParserEvent(kind string) {
	DefaultMetrics.ParserEventsByKind.WithLabelValues(kind).Inc()
}

// RecordSourceError records a classified source error.
func RecordSourceError(class string) {
	DefaultMetrics.SourceErrors.WithLabelValues(class).Inc()
}

// RecordStoreSave records a store save call's duration and, on error,
// its error class.
func RecordStoreSave(operation string, seconds float64, errClass string) {
	DefaultMetrics.StoreSaveDuration.WithLabelValues(operation).Observe(seconds)
	if errClass != "" {
		DefaultMetrics.StoreSaveErrors.WithLabelValues(operation, errClass).Inc()
	}
}
