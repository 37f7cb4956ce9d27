package analyzer

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "actlog"

// Metrics exposes analysis counters as Prometheus metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	recordsRead prometheus.Counter
	malformed   prometheus.Counter
	dropped     *prometheus.CounterVec
	retained    *prometheus.CounterVec
	lastRun     prometheus.Gauge
	runDuration prometheus.Gauge
}

// NewMetrics creates metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		recordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "records_read_total",
			Help:      "Decoded activity records consumed by the analyzer.",
		}),
		malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "malformed_records_total",
			Help:      "Input lines skipped because they were not a JSON object.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_dropped_total",
			Help:      "Events excluded from the output table, by reason.",
		}, []string{"reason"}),
		retained: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_retained_total",
			Help:      "Events written to the output table, by action category.",
		}, []string{"action"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last analysis finished.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last analysis.",
		}),
	}

	m.registry.MustRegister(
		m.recordsRead,
		m.malformed,
		m.dropped,
		m.retained,
		m.lastRun,
		m.runDuration,
	)
	return m
}

// Gatherer returns the registry backing these metrics.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}

// ObserveMalformed adds records the source skipped before they reached the analyzer.
func (m *Metrics) ObserveMalformed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.malformed.Add(float64(n))
}

func (m *Metrics) observeRead() {
	if m == nil {
		return
	}
	m.recordsRead.Inc()
}

func (m *Metrics) observeDrop(reason DropReason) {
	if m == nil {
		return
	}
	label := "no_action_mapping"
	if reason == DropReasonDuplicate {
		label = "duplicate"
	}
	m.dropped.WithLabelValues(label).Inc()
}

func (m *Metrics) observeRetained(c Category) {
	if m == nil {
		return
	}
	m.retained.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) observeRun(start, end time.Time) {
	if m == nil {
		return
	}
	m.lastRun.Set(float64(end.Unix()))
	m.runDuration.Set(end.Sub(start).Seconds())
}
