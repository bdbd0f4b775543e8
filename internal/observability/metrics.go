package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fixmycity"

// Cluster run outcomes.
const (
	ClusterOK       = "ok"
	ClusterDegraded = "degraded"
	ClusterEmpty    = "empty"
)

// Metrics holds the Prometheus collectors for the hotspot engine and the
// geocoder.
type Metrics struct {
	ZoneRankings   prometheus.Counter
	ClusterRuns    *prometheus.CounterVec   // labels: outcome={ok,degraded,empty}
	EngineDuration *prometheus.HistogramVec // labels: operation={rank,cluster}
	SnapshotSize   prometheus.Gauge

	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,default}
}

func newMetrics() *Metrics {
	return &Metrics{
		ZoneRankings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zone_rankings_total",
			Help:      "Priority zone rankings computed.",
		}),
		ClusterRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cluster_runs_total",
			Help:      "Clustering runs by outcome.",
		}, []string{"outcome"}),
		EngineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_duration_seconds",
			Help:      "Time spent in the hotspot engine per operation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),
		SnapshotSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "complaints_snapshot_size",
			Help:      "Number of complaints in the most recent engine snapshot.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Area name lookups by outcome.",
		}, []string{"outcome"}),
	}
}

// NewMetrics creates all collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.ZoneRankings,
		m.ClusterRuns,
		m.EngineDuration,
		m.SnapshotSize,
		m.GeocodeRequests,
	)
	return m
}

// NewMetricsForTesting returns unregistered collectors, so tests can build as
// many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// ObserveEngine records how long operation took since start.
func (m *Metrics) ObserveEngine(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.EngineDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) GeocodeOutcome(usedDefault bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if usedDefault {
		outcome = "default"
	}
	m.GeocodeRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SnapshotTaken(size int) {
	if m == nil {
		return
	}
	m.SnapshotSize.Set(float64(size))
}

func (m *Metrics) ZoneRanked() {
	if m == nil {
		return
	}
	m.ZoneRankings.Inc()
}

func (m *Metrics) ClusterRun(outcome string) {
	if m == nil {
		return
	}
	m.ClusterRuns.WithLabelValues(outcome).Inc()
}
