// Package metrics provides Prometheus metrics for the Mood2Emoji service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// polarityBuckets spans the full [-1, 1] range with finer steps around the
// neutral band.
var polarityBuckets = []float64{-1, -0.75, -0.5, -0.25, -0.1, -0.05, 0, 0.05, 0.1, 0.25, 0.5, 0.75, 1} //nolint:gochecknoglobals // bucket layout

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Detection metrics
	detections       *prometheus.CounterVec
	polarity         prometheus.Histogram
	filterHits       *prometheus.CounterVec
	analyzerLatency  prometheus.Histogram
	analyzerErrors   prometheus.Counter
	rejectedTooLong  prometheus.Counter
	teacherModeViews prometheus.Counter
	configReloads    *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // custom registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager registered on the configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mood2emoji",
		subsystem:        "detector",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
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

	m.detections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "detections_total",
		Help:        "Total number of mood detections by category and pipeline branch",
		ConstLabels: m.constLabels,
	}, []string{"category", "reason"})

	m.polarity = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "polarity",
		Help:        "Distribution of polarity scores for analyzed sentences",
		Buckets:     polarityBuckets,
		ConstLabels: m.constLabels,
	})

	m.filterHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "filter_hits_total",
		Help:        "Sentences rejected by the word filter, by matched term",
		ConstLabels: m.constLabels,
	}, []string{"term"})

	m.analyzerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analyzer_latency_milliseconds",
		Help:        "Time spent computing polarity in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.analyzerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analyzer_errors_total",
		Help:        "Total number of failed polarity computations",
		ConstLabels: m.constLabels,
	})

	m.rejectedTooLong = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rejected_too_long_total",
		Help:        "Sentences rejected for exceeding the character limit",
		ConstLabels: m.constLabels,
	})

	m.teacherModeViews = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "teacher_mode_views_total",
		Help:        "Pages rendered with teacher mode enabled",
		ConstLabels: m.constLabels,
	})

	m.configReloads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "config_reloads_total",
		Help:        "Configuration reloads by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
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

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Errors by type and severity",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Errors by endpoint, method and type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

// RecordDetection counts one detection outcome.
func (m *Manager) RecordDetection(category, reason string) {
	m.detections.WithLabelValues(category, reason).Inc()
}

// ObservePolarity records the polarity of an analyzed sentence.
func (m *Manager) ObservePolarity(p float64) {
	m.polarity.Observe(p)
}

// RecordFilterHit counts a sentence rejected by term.
func (m *Manager) RecordFilterHit(term string) {
	m.filterHits.WithLabelValues(term).Inc()
}

// RecordDetection counts one detection outcome.
func RecordDetection(category, reason string) { globalManager.RecordDetection(category, reason) }

// ObservePolarity records the polarity of an analyzed sentence.
func ObservePolarity(p float64) { globalManager.ObservePolarity(p) }

// RecordFilterHit counts a sentence rejected by the word filter.
func RecordFilterHit(term string) { globalManager.RecordFilterHit(term) }

// RecordAnalyzerLatency records polarity computation time in milliseconds.
func RecordAnalyzerLatency(latencyMs float64) {
	globalManager.analyzerLatency.Observe(latencyMs)
}

// RecordAnalyzerError increments the analyzer error counter.
func RecordAnalyzerError() {
	globalManager.analyzerErrors.Inc()
}

// RecordRejectedTooLong increments the too-long rejection counter.
func RecordRejectedTooLong() {
	globalManager.rejectedTooLong.Inc()
}

// RecordTeacherModeView increments the teacher mode counter.
func RecordTeacherModeView() {
	globalManager.teacherModeViews.Inc()
}

// RecordConfigReload counts a reload attempt by outcome: ok, rejected or error.
func RecordConfigReload(outcome string) {
	globalManager.configReloads.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
