package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the counters and gauges of a single run.
type Metrics struct {
	Registry *prometheus.Registry

	Runs          *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	OutputBytes   prometheus.Gauge
	LastSuccess   prometheus.Gauge
}

// New registers the run metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hn_daily_runs_total",
			Help: "Digest runs by result.",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hn_daily_fetch_duration_seconds",
			Help:    "Time spent downloading the digest.",
			Buckets: prometheus.DefBuckets,
		}),
		OutputBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hn_daily_output_bytes",
			Help: "Size of the last written outline note.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hn_daily_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.",
		}),
	}
	m.Registry.MustRegister(m.Runs, m.FetchDuration, m.OutputBytes, m.LastSuccess)
	return m
}

// ObserveFetch records how long a fetch took.
func (m *Metrics) ObserveFetch(d time.Duration) {
	m.FetchDuration.Observe(d.Seconds())
}

// Success records a completed run.
func (m *Metrics) Success(bytes int, at time.Time) {
	m.Runs.WithLabelValues("success").Inc()
	m.OutputBytes.Set(float64(bytes))
	m.LastSuccess.Set(float64(at.Unix()))
}

// Failure records a failed run.
func (m *Metrics) Failure() {
	m.Runs.WithLabelValues("failure").Inc()
}

// WriteTextfile writes the registry in text exposition format to path,
// for collection by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
