// Package metrics provides Prometheus metrics for the skillrate service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Conversions are pure arithmetic, so latencies sit far below the
// prometheus defaults.
var defaultLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000} //nolint:gochecknoglobals // bucket layout

// Conversion outcomes used as the "outcome" label.
const (
	OutcomeOK          = "ok"
	OutcomeUnsupported = "unsupported"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
)

// Manager owns every collector of the service.
type Manager struct {
	namespace       string
	subsystem       string
	latencyBuckets  []float64
	batchBuckets    []float64
	enabled         bool
	refreshInterval time.Duration
	constLabels     map[string]string
	registry        prometheus.Registerer

	// Conversion metrics
	conversions       *prometheus.CounterVec
	conversionLatency *prometheus.HistogramVec
	batches           prometheus.Counter
	batchSize         prometheus.Histogram

	// Queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueue       prometheus.Counter
	queueDequeue       prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker metrics
	workerCount             prometheus.Gauge
	workerJobsProcessed     prometheus.Counter
	workerProcessingLatency prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "skillrate",
		subsystem:       "converter",
		latencyBuckets:  defaultLatencyBuckets,
		batchBuckets:    prometheus.ExponentialBuckets(1, 2, 12),
		enabled:         true,
		refreshInterval: defaultRefreshInterval,
		constLabels:     make(map[string]string),
		registry:        prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.conversions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "conversions_total",
		Help: "Rating conversions by source system, target system and outcome",
	}, []string{"from", "to", "outcome"})

	m.conversionLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "conversion_latency_milliseconds",
		Help:    "Latency of a single conversion in milliseconds",
		Buckets: m.latencyBuckets,
	}, []string{"from", "to"})

	m.batches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "batches_total",
		Help: "Batch conversion requests accepted",
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "batch_size",
		Help:    "Number of items per batch conversion request",
		Buckets: m.batchBuckets,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "queue_size",
		Help: "Jobs currently waiting in the queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "queue_capacity",
		Help: "Maximum number of queued jobs",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "queue_utilization_ratio",
		Help: "Queue size divided by capacity",
	})

	m.queueEnqueue = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "queue_enqueue_total",
		Help: "Jobs enqueued",
	})

	m.queueDequeue = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "queue_dequeue_total",
		Help: "Jobs dequeued",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "queue_enqueue_errors_total",
		Help: "Jobs rejected because the queue was full or closed",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "worker_count",
		Help: "Running conversion workers",
	})

	m.workerJobsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "worker_jobs_processed_total",
		Help: "Jobs completed by workers, successful or not",
	})

	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "worker_processing_latency_milliseconds",
		Help:    "Time a worker spends on one job in milliseconds",
		Buckets: m.latencyBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.latencyBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "errors_by_component_total",
		Help: "Errors by component and error type",
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "system_memory_bytes",
		Help: "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "system_goroutines",
		Help: "Number of goroutines",
	})
}

// RefreshInterval is how often periodic gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RecordConversion counts one conversion and, on success, its latency.
func (m *Manager) RecordConversion(from, to, outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.conversions.WithLabelValues(from, to, outcome).Inc()
	if outcome == OutcomeOK {
		m.conversionLatency.WithLabelValues(from, to).Observe(latencyMs)
	}
}

// RecordBatch counts an accepted batch of n items.
func (m *Manager) RecordBatch(n int) {
	if !m.enabled {
		return
	}
	m.batches.Inc()
	m.batchSize.Observe(float64(n))
}

// UpdateQueue sets the queue gauges.
func (m *Manager) UpdateQueue(size, capacity int) {
	if !m.enabled {
		return
	}
	m.queueSize.Set(float64(size))
	m.queueCapacity.Set(float64(capacity))
	if capacity > 0 {
		m.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// RecordQueueEnqueue counts an accepted job.
func (m *Manager) RecordQueueEnqueue() {
	if m.enabled {
		m.queueEnqueue.Inc()
	}
}

// RecordQueueDequeue counts a job handed to a worker.
func (m *Manager) RecordQueueDequeue() {
	if m.enabled {
		m.queueDequeue.Inc()
	}
}

// RecordQueueEnqueueError counts a rejected job.
func (m *Manager) RecordQueueEnqueueError(reason string) {
	if !m.enabled {
		return
	}
	m.queueEnqueueErrors.Inc()
	m.errorsByComponent.WithLabelValues("queue", reason).Inc()
}

// UpdateWorkerCount sets the running worker gauge.
func (m *Manager) UpdateWorkerCount(n int) {
	if m.enabled {
		m.workerCount.Set(float64(n))
	}
}

// RecordWorkerJob counts one processed job and its latency.
func (m *Manager) RecordWorkerJob(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.workerJobsProcessed.Inc()
	m.workerProcessingLatency.Observe(latencyMs)
}

// RecordHTTPRequest counts one request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent counts an error raised by a component.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if m.enabled {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// UpdateSystem sets the memory and goroutine gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// Package-level helpers delegate to the global manager.

// RecordConversion counts a conversion on the global manager.
func RecordConversion(from, to, outcome string, latencyMs float64) {
	globalManager.RecordConversion(from, to, outcome, latencyMs)
}

// RecordBatch counts a batch on the global manager.
func RecordBatch(n int) { globalManager.RecordBatch(n) }

// UpdateQueue sets the queue gauges on the global manager.
func UpdateQueue(size, capacity int) { globalManager.UpdateQueue(size, capacity) }

// RecordQueueEnqueue counts an accepted job on the global manager.
func RecordQueueEnqueue() { globalManager.RecordQueueEnqueue() }

// RecordQueueDequeue counts a dequeued job on the global manager.
func RecordQueueDequeue() { globalManager.RecordQueueDequeue() }

// RecordQueueEnqueueError counts a rejected job on the global manager.
func RecordQueueEnqueueError(reason string) { globalManager.RecordQueueEnqueueError(reason) }

// UpdateWorkerCount sets the worker gauge on the global manager.
func UpdateWorkerCount(n int) { globalManager.UpdateWorkerCount(n) }

// RecordWorkerJob counts a processed job on the global manager.
func RecordWorkerJob(latencyMs float64) { globalManager.RecordWorkerJob(latencyMs) }

// RecordHTTPRequest counts a request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent counts an error on the global manager.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// UpdateSystem sets the system gauges on the global manager.
func UpdateSystem(memBytes uint64, goroutines int) { globalManager.UpdateSystem(memBytes, goroutines) }

// Configure rebuilds the global manager on a fresh registry. Call it once
// at startup, before anything is recorded.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithRegistry(customRegistry)}, opts...)...)
}

// RefreshInterval returns the refresh interval of the global manager.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
