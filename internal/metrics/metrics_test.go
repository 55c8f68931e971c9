package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	m := newMetrics(prometheus.NewRegistry())

	m.IncCycle()
	m.IncCycle()
	m.IncCycleFailure("fetch")
	m.IncSignal("STRONG_LONG")
	m.IncNarrativeRequest()
	m.IncNarrativeFailure()
	m.ObserveFetch(120 * time.Millisecond)
	m.ObserveCompute(50 * time.Microsecond)

	if got := testutil.ToFloat64(m.CyclesTotal); got != 2 {
		t.Errorf("CyclesTotal = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.CycleFailures.WithLabelValues("fetch")); got != 1 {
		t.Errorf("CycleFailures[fetch] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SignalsTotal.WithLabelValues("STRONG_LONG")); got != 1 {
		t.Errorf("SignalsTotal[STRONG_LONG] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.NarrativeRequests); got != 1 {
		t.Errorf("NarrativeRequests = %v, want 1", got)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics

	// Must not panic with metrics disabled.
	m.IncCycle()
	m.IncCycleFailure("compute")
	m.ObserveFetch(time.Second)
	m.ObserveCompute(time.Millisecond)
	m.IncSignal("WAIT")
	m.IncNarrativeRequest()
	m.IncNarrativeFailure()
}
