// Package metrics provides Prometheus metrics for the medley sector batch job.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the batch job.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Classification metrics - the business core
	swimmersClassified *prometheus.CounterVec
	classifyLatency    prometheus.Histogram
	rosterSize         prometheus.Gauge

	// Qualifying-time table metrics
	tableEntries     *prometheus.GaugeVec
	tableRowsSkipped prometheus.Counter
	lookupMisses     prometheus.Counter

	// Persistence quality metrics
	persistAnomalies prometheus.Counter
	persistErrors    prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "medley",
		subsystem:        "sectors",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.swimmersClassified = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "swimmers_classified_total",
			Help:      "Total number of swimmers classified, labelled by assigned sector",
		},
		[]string{"sector"},
	)

	m.classifyLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "classify_latency_milliseconds",
		Help:      "Histogram of per-swimmer classification latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Number of swimmers in the roster for the current run",
	})

	m.tableEntries = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "qualifying_time_entries",
			Help:      "Number of qualifying-time entries per course table",
		},
		[]string{"course"},
	)

	m.tableRowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "qualifying_time_rows_skipped_total",
		Help:      "Total number of sheet rows skipped while building qualifying-time tables",
	})

	m.lookupMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "qualifying_time_lookup_misses_total",
		Help:      "Total number of qualifying-time lookups that found no entry (auto-qualifying swims)",
	})

	m.persistAnomalies = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_anomalies_total",
		Help:      "Total number of sector writes that affected zero rows",
	})

	m.persistErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_errors_total",
		Help:      "Total number of failed sector writes",
	})
}

// Handler returns an HTTP handler serving the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordSwimmerClassified increments the per-sector classification counter.
func (m *Manager) RecordSwimmerClassified(sector string) {
	if !m.enabled {
		return
	}
	m.swimmersClassified.WithLabelValues(sector).Inc()
}

// ObserveClassifyLatency records one per-swimmer classification duration.
func (m *Manager) ObserveClassifyLatency(d time.Duration) {
	if !m.enabled {
		return
	}
	m.classifyLatency.Observe(float64(d.Milliseconds()))
}

// SetRosterSize sets the roster gauge for the current run.
func (m *Manager) SetRosterSize(n int) {
	if !m.enabled {
		return
	}
	m.rosterSize.Set(float64(n))
}

// SetTableEntries sets the entry count for one course table.
func (m *Manager) SetTableEntries(course string, n int) {
	if !m.enabled {
		return
	}
	m.tableEntries.WithLabelValues(course).Set(float64(n))
}

// RecordTableRowSkipped increments the skipped-row counter.
func (m *Manager) RecordTableRowSkipped() {
	if !m.enabled {
		return
	}
	m.tableRowsSkipped.Inc()
}

// RecordLookupMiss increments the lookup-miss counter.
func (m *Manager) RecordLookupMiss() {
	if !m.enabled {
		return
	}
	m.lookupMisses.Inc()
}

// RecordPersistAnomaly increments the zero-rows-affected counter.
func (m *Manager) RecordPersistAnomaly() {
	if !m.enabled {
		return
	}
	m.persistAnomalies.Inc()
}

// RecordPersistError increments the failed-write counter.
func (m *Manager) RecordPersistError() {
	if !m.enabled {
		return
	}
	m.persistErrors.Inc()
}

// Package-level helpers delegating to the global manager.

// Handler returns the global manager's HTTP handler.
func Handler() http.Handler { return globalManager.Handler() }

// RecordSwimmerClassified increments the global per-sector counter.
func RecordSwimmerClassified(sector string) { globalManager.RecordSwimmerClassified(sector) }

// ObserveClassifyLatency records a classification duration on the global manager.
func ObserveClassifyLatency(d time.Duration) { globalManager.ObserveClassifyLatency(d) }

// SetRosterSize sets the global roster gauge.
func SetRosterSize(n int) { globalManager.SetRosterSize(n) }

// SetTableEntries sets the global per-course table entry gauge.
func SetTableEntries(course string, n int) { globalManager.SetTableEntries(course, n) }

// RecordTableRowSkipped increments the global skipped-row counter.
func RecordTableRowSkipped() { globalManager.RecordTableRowSkipped() }

// RecordLookupMiss increments the global lookup-miss counter.
func RecordLookupMiss() { globalManager.RecordLookupMiss() }

// RecordPersistAnomaly increments the global zero-rows-affected counter.
func RecordPersistAnomaly() { globalManager.RecordPersistAnomaly() }

// RecordPersistError increments the global failed-write counter.
func RecordPersistError() { globalManager.RecordPersistError() }
