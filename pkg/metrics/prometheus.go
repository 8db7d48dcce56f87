// Package metrics provides Prometheus metrics for the PUImURI trainer.
package metrics

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultSampleInterval = 10 * time.Second
	bytesPerMB            = 1 << 20
)

// defaultLatencyBuckets span sub-millisecond solves up to slow HTTP calls.
var defaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // read-only

// Outcome labels for graded answers.
const (
	OutcomeCorrect = "correct"
	OutcomeWrong   = "wrong"
)

// Manager owns the trainer's Prometheus collectors.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	disabled       bool
	sampleInterval time.Duration
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Exercise metrics
	exercisesGenerated *prometheus.CounterVec
	answersGraded      *prometheus.CounterVec
	solveErrors        *prometheus.CounterVec
	buildLatency       prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram

	gcMu      sync.Mutex
	lastNumGC uint32
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // shared by /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "puimuri",
		subsystem:      "trainer",
		latencyBuckets: defaultLatencyBuckets,
		sampleInterval: defaultSampleInterval,
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.exercisesGenerated = auto.NewCounterVec(
		m.counterOpts("exercises_generated_total", "Exercises generated by type and unknown variable"),
		[]string{"exercise_type", "missing"},
	)
	m.answersGraded = auto.NewCounterVec(
		m.counterOpts("answers_graded_total", "Submitted answers graded by type and outcome"),
		[]string{"exercise_type", "outcome"},
	)
	m.solveErrors = auto.NewCounterVec(
		m.counterOpts("solve_errors_total", "Exercises the solver rejected, by error kind"),
		[]string{"kind"},
	)
	m.buildLatency = auto.NewHistogram(
		m.histogramOpts("exercise_build_latency_milliseconds", "Time to sample and solve one exercise", m.latencyBuckets),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordExerciseGenerated counts one generated exercise.
func (m *Manager) RecordExerciseGenerated(exerciseType, missing string) {
	if !m.disabled {
		m.exercisesGenerated.WithLabelValues(exerciseType, missing).Inc()
	}
}

// RecordAnswerGraded counts one graded answer.
func (m *Manager) RecordAnswerGraded(exerciseType string, correct bool) {
	if m.disabled {
		return
	}
	outcome := OutcomeWrong
	if correct {
		outcome = OutcomeCorrect
	}
	m.answersGraded.WithLabelValues(exerciseType, outcome).Inc()
}

// RecordSolveError counts a solver rejection of the given kind.
func (m *Manager) RecordSolveError(kind string) {
	if !m.disabled {
		m.solveErrors.WithLabelValues(kind).Inc()
	}
}

// RecordBuildLatency records exercise build latency in milliseconds.
func (m *Manager) RecordBuildLatency(latencyMs float64) {
	if !m.disabled {
		m.buildLatency.Observe(latencyMs)
	}
}

// RecordHTTPRequest counts one HTTP request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if m.disabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.disabled {
		m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.disabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// CollectSystemMetrics samples memory, goroutines and new GC pauses once.
func (m *Manager) CollectSystemMetrics() {
	if m.disabled {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.systemMemoryUsage.Set(float64(ms.HeapAlloc))
	m.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))

	m.gcMu.Lock()
	defer m.gcMu.Unlock()
	// PauseNs is a ring of the most recent 256 pauses.
	from := m.lastNumGC
	if ms.NumGC-from > uint32(len(ms.PauseNs)) {
		from = ms.NumGC - uint32(len(ms.PauseNs))
	}
	for i := from; i < ms.NumGC; i++ {
		pause := ms.PauseNs[i%uint32(len(ms.PauseNs))]
		m.systemGCPauseTime.Observe(float64(pause) / float64(time.Millisecond))
	}
	m.lastNumGC = ms.NumGC
}

// RunSystemCollector samples system metrics every sample interval until
// ctx is done.
func (m *Manager) RunSystemCollector(ctx context.Context) {
	ticker := time.NewTicker(m.sampleInterval)
	defer ticker.Stop()
	m.CollectSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CollectSystemMetrics()
		}
	}
}

// HeapMB reports the heap in use, in megabytes.
func HeapMB() float64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return float64(ms.HeapAlloc) / bytesPerMB
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// RecordExerciseGenerated counts one generated exercise.
func RecordExerciseGenerated(exerciseType, missing string) {
	globalManager.RecordExerciseGenerated(exerciseType, missing)
}

// RecordAnswerGraded counts one graded answer.
func RecordAnswerGraded(exerciseType string, correct bool) {
	globalManager.RecordAnswerGraded(exerciseType, correct)
}

// RecordSolveError counts a solver rejection of the given kind.
func RecordSolveError(kind string) {
	globalManager.RecordSolveError(kind)
}

// RecordBuildLatency records exercise build latency in milliseconds.
func RecordBuildLatency(latencyMs float64) {
	globalManager.RecordBuildLatency(latencyMs)
}

// RecordHTTPRequest counts one HTTP request and observes its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
