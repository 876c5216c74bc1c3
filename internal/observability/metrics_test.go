package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/subhdotsol/Indexer-with-benifit/internal/engine"
)

func TestSnapshotObserverReportsDeltaNotAbsolute(t *testing.T) {
	m := NewMetrics("test_" + t.Name())
	o := NewSnapshotObserver(m)

	o.Observe(engine.Snapshot{Pulled: 10, Committed: 5})
	o.Observe(engine.Snapshot{Pulled: 25, Committed: 5})

	got := counterValue(t, m.TransactionsPulled)
	if got != 25 {
		t.Fatalf("TransactionsPulled = %v, want 25 (10 + 15)", got)
	}
}

func TestSnapshotObserverQueueDepthFromEnqueuedMinusCommitted(t *testing.T) {
	m := NewMetrics("test_" + t.Name())
	o := NewSnapshotObserver(m)

	o.Observe(engine.Snapshot{Enqueued: 12, Committed: 4})

	got := gaugeValue(t, m.QueueDepth)
	if got != 8 {
		t.Fatalf("QueueDepth = %v, want 8", got)
	}
}

func TestSnapshotObserverQueueDepthNeverNegative(t *testing.T) {
	m := NewMetrics("test_" + t.Name())
	o := NewSnapshotObserver(m)

	o.Observe(engine.Snapshot{Enqueued: 4, Committed: 10})

	got := gaugeValue(t, m.QueueDepth)
	if got != 0 {
		t.Fatalf("QueueDepth = %v, want 0", got)
	}
}

func TestDeltaClampsOnCounterReset(t *testing.T) {
	if got := delta(3, 10); got != 0 {
		t.Fatalf("delta(3, 10) = %v, want 0", got)
	}
	if got := delta(10, 3); got != 7 {
		t.Fatalf("delta(10, 3) = %v, want 7", got)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetGauge().GetValue()
}
