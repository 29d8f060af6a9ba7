package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "parallel_self"
	metricsSubsystem = "scheduler"
)

// Metrics exposes Prometheus collectors for scheduled generation runs.
type Metrics struct {
	generations *prometheus.CounterVec
	runDuration prometheus.Histogram
	lastRun     prometheus.Gauge
}

// MustNewMetrics constructs Metrics and registers them with reg, which
// defaults to prometheus.DefaultRegisterer. Registration errors panic.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "generations_total",
				Help:      "Profiles processed by scheduled runs, by result.",
			},
			[]string{"result"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "run_duration_seconds",
				Help:      "Wall time of a full run over all active profiles.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last run finished.",
			},
		),
	}
	reg.MustRegister(m.generations, m.runDuration, m.lastRun)
	return m
}

func (m *Metrics) observeProfile(ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.generations.WithLabelValues(result).Inc()
}

func (m *Metrics) observeRun(d time.Duration, finished time.Time) {
	if m == nil {
		return
	}
	m.runDuration.Observe(d.Seconds())
	m.lastRun.Set(float64(finished.Unix()))
}
