// Package metrics provides Prometheus metrics for the leaderboard generator.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run and render outcomes used as label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Manager owns the Prometheus collectors of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Computation
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	lastSuccess prometheus.Gauge
	cells       *prometheus.CounterVec

	// Board shape
	categories    prometheus.Gauge
	teams         prometheus.Gauge
	events        prometheus.Gauge
	categoryTeams *prometheus.GaugeVec

	// Collaborators
	fetchDuration *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec
	renders       *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	memoryBytes prometheus.Gauge
	goroutines  prometheus.Gauge
	gcPause     prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by package-level helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager registered on the configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wodboard",
		subsystem:        "leaderboard",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Leaderboard computations by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_milliseconds",
		Help:        "Wall time of a full fetch-compute-render run",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.lastSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_success_timestamp_seconds",
		Help:        "Unix time of the last successful computation",
		ConstLabels: m.constLabels,
	})

	m.cells = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "result_cells_total",
		Help:        "Result cells ingested by state (scored, absent, unscorable)",
		ConstLabels: m.constLabels,
	}, []string{"state"})

	m.categories = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "categories",
		Help:        "Categories on the current board",
		ConstLabels: m.constLabels,
	})

	m.teams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "teams",
		Help:        "Teams on the current board",
		ConstLabels: m.constLabels,
	})

	m.events = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events",
		Help:        "Events (WODs) on the current board",
		ConstLabels: m.constLabels,
	})

	m.categoryTeams = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "category_teams",
		Help:        "Teams per category on the current board",
		ConstLabels: m.constLabels,
	}, []string{"category"})

	m.fetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_duration_milliseconds",
		Help:        "Time spent reading the input table by source",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_errors_total",
		Help:        "Failed attempts to read the input table by source",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "renders_total",
		Help:        "Report emissions by sink and outcome",
		ConstLabels: m.constLabels,
	}, []string{"sink", "outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "HTTP requests by endpoint, method and status",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.memoryBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_alloc_bytes",
		Help:        "Bytes of allocated heap objects",
		ConstLabels: m.constLabels,
	})

	m.goroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.gcPause = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_milliseconds",
		Help:        "Average GC pause in milliseconds, sampled periodically",
		Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
		ConstLabels: m.constLabels,
	})
}

// RecordRun records the outcome and duration of a computation.
func (m *Manager) RecordRun(success bool, durationMs float64) {
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
		m.lastSuccess.Set(float64(time.Now().Unix()))
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(durationMs)
}

// RecordCells adds ingested cell counts by state.
func (m *Manager) RecordCells(scored, absent, unscorable int) {
	m.cells.WithLabelValues("scored").Add(float64(scored))
	m.cells.WithLabelValues("absent").Add(float64(absent))
	m.cells.WithLabelValues("unscorable").Add(float64(unscorable))
}

// UpdateBoard sets the board shape gauges. teamsByCategory replaces the previous per-category values.
func (m *Manager) UpdateBoard(events int, teamsByCategory map[string]int) {
	total := 0
	m.categoryTeams.Reset()
	for category, n := range teamsByCategory {
		m.categoryTeams.WithLabelValues(category).Set(float64(n))
		total += n
	}
	m.categories.Set(float64(len(teamsByCategory)))
	m.teams.Set(float64(total))
	m.events.Set(float64(events))
}

// RecordFetch records one read of the input table.
func (m *Manager) RecordFetch(source string, durationMs float64, err error) {
	m.fetchDuration.WithLabelValues(source).Observe(durationMs)
	if err != nil {
		m.fetchErrors.WithLabelValues(source).Inc()
	}
}

// RecordRender records one report emission.
func (m *Manager) RecordRender(sink string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.renders.WithLabelValues(sink, outcome).Inc()
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) { m.memoryBytes.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(n int) { m.goroutines.Set(float64(n)) }

// RecordSystemGCPauseTime observes an average GC pause.
func (m *Manager) RecordSystemGCPauseTime(ms float64) { m.gcPause.Observe(ms) }

// Package-level helpers on the global manager.

// RecordRun records a computation on the global manager.
func RecordRun(success bool, durationMs float64) { globalManager.RecordRun(success, durationMs) }

// RecordCells adds ingested cell counts on the global manager.
func RecordCells(scored, absent, unscorable int) {
	globalManager.RecordCells(scored, absent, unscorable)
}

// UpdateBoard sets board gauges on the global manager.
func UpdateBoard(events int, teamsByCategory map[string]int) {
	globalManager.UpdateBoard(events, teamsByCategory)
}

// RecordFetch records a table read on the global manager.
func RecordFetch(source string, durationMs float64, err error) {
	globalManager.RecordFetch(source, durationMs, err)
}

// RecordRender records a report emission on the global manager.
func RecordRender(sink string, err error) { globalManager.RecordRender(sink, err) }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// UpdateSystemMemoryUsage sets the heap gauge on the global manager.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge on the global manager.
func UpdateSystemGoroutineCount(n int) { globalManager.UpdateSystemGoroutineCount(n) }

// RecordSystemGCPauseTime observes a GC pause on the global manager.
func RecordSystemGCPauseTime(ms float64) { globalManager.RecordSystemGCPauseTime(ms) }

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
