// Package metrics provides Prometheus metrics for the ringside booking simulator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	ratingBuckets    []float64
	staminaBuckets   []float64
	registry         prometheus.Registerer

	// Booking flow
	bookingsSimulated *prometheus.CounterVec
	bookingsRejected  *prometheus.CounterVec
	resultsApplied    prometheus.Counter
	resultsDuplicate  prometheus.Counter
	lookupFailures    prometheus.Counter
	simulationLatency prometheus.Histogram

	// Outcome shape
	matchRating prometheus.Histogram
	staminaLoss *prometheus.HistogramVec
	upsets      prometheus.Counter

	// Configuration
	configFallbacks *prometheus.CounterVec
	rosterSize      prometheus.Gauge
	catalogSize     prometheus.Gauge
	currentSeed     prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// Process
	memoryUsage    prometheus.Gauge
	goroutineCount prometheus.Gauge
	gcPause        prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(
		WithPrometheusRegistry(customRegistry),
		// 5µs to 10ms
		WithHistogramBuckets(prometheus.ExponentialBuckets(0.005, 2, 12)),
		WithStaminaBuckets(prometheus.LinearBuckets(2, 4, 10)),
	)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ringside",
		subsystem:        "booking",
		histogramBuckets: prometheus.DefBuckets,
		ratingBuckets:    prometheus.LinearBuckets(10, 10, 10),
		staminaBuckets:   prometheus.LinearBuckets(10, 10, 10),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.bookingsSimulated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulated_total",
		Help:      "Total number of simulated matches by category",
	}, []string{"category"})

	m.bookingsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rejected_total",
		Help:      "Total number of bookings rejected by validation, by reason",
	}, []string{"reason"})

	m.resultsApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_applied_total",
		Help:      "Total number of match results committed to the roster",
	})

	m.resultsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_duplicate_total",
		Help:      "Total number of commits rejected because the result was already applied",
	})

	m.lookupFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_failures_total",
		Help:      "Total number of simulations referencing an unknown competitor or category",
	})

	m.simulationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulation_latency_milliseconds",
		Help:      "Histogram of validate, simulate and apply latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.matchRating = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_rating",
		Help:      "Distribution of match ratings",
		Buckets:   m.ratingBuckets,
	})

	m.staminaLoss = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stamina_loss",
		Help:      "Distribution of stamina lost per match, by outcome",
		Buckets:   m.staminaBuckets,
	}, []string{"outcome"})

	m.upsets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upsets_total",
		Help:      "Total number of matches won by the less popular competitor",
	})

	m.configFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "config_fallbacks_total",
		Help:      "Total number of times built-in defaults replaced external data",
	}, []string{"source", "reason"})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Number of competitors in the loaded roster",
	})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_size",
		Help:      "Number of categories in the loaded catalog",
	})

	m.currentSeed = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "current_seed",
		Help:      "Seed the next simulation will use",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Total number of errors by type",
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of errors by endpoint",
	}, []string{"endpoint", "method", "error_type"})

	m.memoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_bytes",
		Help:      "Heap bytes allocated",
	})

	m.goroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Number of live goroutines",
	})

	m.gcPause = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Average GC pause in milliseconds, sampled periodically",
		Buckets:   m.histogramBuckets,
	})
}

// RecordBookingSimulated increments the simulated counter for category.
func RecordBookingSimulated(category string) {
	globalManager.bookingsSimulated.WithLabelValues(category).Inc()
}

// RecordBookingRejected increments the rejection counter for reason.
func RecordBookingRejected(reason string) {
	globalManager.bookingsRejected.WithLabelValues(reason).Inc()
}

// RecordResultApplied increments the applied results counter.
func RecordResultApplied() {
	globalManager.resultsApplied.Inc()
}

// RecordResultDuplicate increments the duplicate commit counter.
func RecordResultDuplicate() {
	globalManager.resultsDuplicate.Inc()
}

// RecordLookupFailure increments the lookup failure counter.
func RecordLookupFailure() {
	globalManager.lookupFailures.Inc()
}

// RecordSimulationLatency records booking latency in milliseconds.
func RecordSimulationLatency(latencyMs float64) {
	globalManager.simulationLatency.Observe(latencyMs)
}

// RecordMatchRating observes a match rating.
func RecordMatchRating(rating int) {
	globalManager.matchRating.Observe(float64(rating))
}

// RecordStaminaLoss observes stamina lost by the winner or the loser.
func RecordStaminaLoss(outcome string, loss int) {
	globalManager.staminaLoss.WithLabelValues(outcome).Observe(float64(loss))
}

// RecordUpset increments the upset counter.
func RecordUpset() {
	globalManager.upsets.Inc()
}

// RecordConfigFallback counts a switch to built-in defaults.
func RecordConfigFallback(source, reason string) {
	globalManager.configFallbacks.WithLabelValues(source, reason).Inc()
}

// UpdateRosterSize sets the roster size gauge.
func UpdateRosterSize(n int) {
	globalManager.rosterSize.Set(float64(n))
}

// UpdateCatalogSize sets the catalog size gauge.
func UpdateCatalogSize(n int) {
	globalManager.catalogSize.Set(float64(n))
}

// UpdateCurrentSeed sets the next-seed gauge.
func UpdateCurrentSeed(seed int64) {
	globalManager.currentSeed.Set(float64(seed))
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

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.memoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	globalManager.goroutineCount.Set(float64(n))
}

// RecordSystemGCPauseTime observes an average GC pause sample.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.gcPause.Observe(ms)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
