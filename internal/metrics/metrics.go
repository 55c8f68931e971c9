package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Metrics holds all Prometheus metrics for the refresh loop. A nil *Metrics
// is valid and records nothing, so the monitor runs unchanged with metrics
// disabled.
type Metrics struct {
	CyclesTotal       prometheus.Counter
	CycleFailures     *prometheus.CounterVec // labels: stage
	FetchDur          prometheus.Histogram
	ComputeDur        prometheus.Histogram
	SignalsTotal      *prometheus.CounterVec // labels: signal
	NarrativeRequests prometheus.Counter
	NarrativeFailures prometheus.Counter
}

// NewMetrics registers and returns all Prometheus metrics.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quantdesk_cycles_total",
			Help: "Total refresh cycles that produced a fresh snapshot",
		}),
		CycleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quantdesk_cycle_failures_total",
			Help: "Refresh cycles that failed, by stage",
		}, []string{"stage"}),
		FetchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quantdesk_fetch_duration_seconds",
			Help:    "Market data fetch latency",
			Buckets: prometheus.DefBuckets,
		}),
		ComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quantdesk_compute_duration_seconds",
			Help:    "Snapshot computation latency",
			Buckets: []float64{0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quantdesk_signals_total",
			Help: "Signals produced by the classifier, by category",
		}, []string{"signal"}),
		NarrativeRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quantdesk_narrative_requests_total",
			Help: "Verdict requests sent to the narrative backend",
		}),
		NarrativeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quantdesk_narrative_failures_total",
			Help: "Verdict requests that returned an error",
		}),
	}

	reg.MustRegister(
		m.CyclesTotal,
		m.CycleFailures,
		m.FetchDur,
		m.ComputeDur,
		m.SignalsTotal,
		m.NarrativeRequests,
		m.NarrativeFailures,
	)

	return m
}

func (m *Metrics) IncCycle() {
	if m == nil {
		return
	}
	m.CyclesTotal.Inc()
}

func (m *Metrics) IncCycleFailure(stage string) {
	if m == nil {
		return
	}
	m.CycleFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDur.Observe(d.Seconds())
}

func (m *Metrics) ObserveCompute(d time.Duration) {
	if m == nil {
		return
	}
	m.ComputeDur.Observe(d.Seconds())
}

func (m *Metrics) IncSignal(signal string) {
	if m == nil {
		return
	}
	m.SignalsTotal.WithLabelValues(signal).Inc()
}

func (m *Metrics) IncNarrativeRequest() {
	if m == nil {
		return
	}
	m.NarrativeRequests.Inc()
}

func (m *Metrics) IncNarrativeFailure() {
	if m == nil {
		return
	}
	m.NarrativeFailures.Inc()
}

// Server runs an HTTP server exposing /metrics.
type Server struct {
	addr   string
	srv    *http.Server
	logger zerolog.Logger
}

// NewServer creates a metrics server.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		addr: addr,
		srv: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		logger: log.With().Str("component", "metrics_server").Logger(),
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("Metrics server listening")
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("Metrics server error")
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) {
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Metrics server shutdown error")
	}
}
