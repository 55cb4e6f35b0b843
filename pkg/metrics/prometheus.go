// Package metrics provides Prometheus metrics for the huddle dashboard
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline metrics
	pipelineRuns     prometheus.Counter
	pipelineFailures prometheus.Counter
	pipelineDuration prometheus.Histogram
	rowsLoaded       *prometheus.GaugeVec
	duplicateRows    prometheus.Counter
	parseFailures    prometheus.Counter

	// Challenge state metrics
	participants    prometheus.Gauge
	weeksTracked    prometheus.Gauge
	currentWeek     prometheus.Gauge
	missingCheckins prometheus.Gauge
	atRiskMembers   prometheus.Gauge
	totalWeightLost prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "huddle",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.pipelineRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_runs_total",
		Help:      "Number of completed pipeline runs",
	})
	m.pipelineFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_failures_total",
		Help:      "Number of failed pipeline runs",
	})
	m.pipelineDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_duration_milliseconds",
		Help:      "End-to-end pipeline run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.rowsLoaded = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_loaded",
		Help:      "Rows loaded per source table on the last run",
	}, []string{"source"})
	m.duplicateRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_rows_total",
		Help:      "Weekly rows discarded by latest-wins deduplication",
	})
	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cell_parse_failures_total",
		Help:      "Cells that failed to parse and degraded to null",
	})

	m.participants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participants",
		Help:      "Distinct participants in the intake table",
	})
	m.weeksTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "weeks_tracked",
		Help:      "Distinct week numbers present in merged data",
	})
	m.currentWeek = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "current_week",
		Help:      "Maximum week number present in merged data",
	})
	m.missingCheckins = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "missing_checkins",
		Help:      "Participants without a current-week submission",
	})
	m.atRiskMembers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "at_risk_members",
		Help:      "Current-week submitters flagged by the risk rules",
	})
	m.totalWeightLost = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_weight_lost_lbs",
		Help:      "Cohort pounds lost (negative deltas only)",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordPipelineRun increments the completed-runs counter.
func RecordPipelineRun() {
	globalManager.pipelineRuns.Inc()
}

// RecordPipelineFailure increments the failed-runs counter.
func RecordPipelineFailure() {
	globalManager.pipelineFailures.Inc()
}

// RecordPipelineDuration records one run's duration in milliseconds.
func RecordPipelineDuration(ms float64) {
	globalManager.pipelineDuration.Observe(ms)
}

// UpdateRowsLoaded sets the row count loaded for a source table.
func UpdateRowsLoaded(source string, rows int) {
	globalManager.rowsLoaded.WithLabelValues(source).Set(float64(rows))
}

// RecordDuplicateRows counts weekly rows discarded as duplicates.
func RecordDuplicateRows(n int) {
	globalManager.duplicateRows.Add(float64(n))
}

// RecordParseFailures counts cells that degraded to null.
func RecordParseFailures(n int) {
	if n > 0 {
		globalManager.parseFailures.Add(float64(n))
	}
}

// UpdateParticipants sets the distinct-participant gauge.
func UpdateParticipants(n int) {
	globalManager.participants.Set(float64(n))
}

// UpdateWeeksTracked sets the weeks-tracked gauge.
func UpdateWeeksTracked(n int) {
	globalManager.weeksTracked.Set(float64(n))
}

// UpdateCurrentWeek sets the current-week gauge.
func UpdateCurrentWeek(week int64) {
	globalManager.currentWeek.Set(float64(week))
}

// UpdateMissingCheckins sets the missing-check-in gauge.
func UpdateMissingCheckins(n int) {
	globalManager.missingCheckins.Set(float64(n))
}

// UpdateAtRiskMembers sets the at-risk gauge.
func UpdateAtRiskMembers(n int) {
	globalManager.atRiskMembers.Set(float64(n))
}

// UpdateTotalWeightLost sets the cohort weight-lost gauge.
func UpdateTotalWeightLost(lbs float64) {
	globalManager.totalWeightLost.Set(lbs)
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request's duration in
// milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// UpdateSystemMemoryUsage sets the memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
