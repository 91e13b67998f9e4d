package telemetry

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stage names reported by pipeline components.
const (
	StageClassification = "classification"
	StageCompliance     = "compliance"
	StagePipeline       = "pipeline"
)

// Metrics holds all Prometheus metrics for the document processor plus a
// lightweight per-stage snapshot served by the stats endpoint.
type Metrics struct {
	// Stage metrics
	stageExecutions *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec

	// Document metrics
	documentsTotal  *prometheus.CounterVec
	classifications *prometheus.CounterVec

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry

	mu     sync.RWMutex
	stages map[string]*stageCounters
}

type stageCounters struct {
	processed     int
	errors        int
	lastProcessed time.Time
}

// StageSnapshot is a point-in-time view of one stage's counters.
type StageSnapshot struct {
	Processed     int       `json:"processed_count"`
	Errors        int       `json:"error_count"`
	LastProcessed time.Time `json:"last_processed"`
}

// NewMetrics creates a metrics instance backed by its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		stageExecutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estadoc_stage_executions_total",
				Help: "Total number of stage executions by stage and status",
			},
			[]string{"stage", "status"},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "estadoc_stage_duration_seconds",
				Help:    "Stage execution latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),

		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estadoc_documents_processed_total",
				Help: "Total number of documents processed by terminal status",
			},
			[]string{"status"},
		),

		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estadoc_classifications_total",
				Help: "Total number of classification outcomes by category code",
			},
			[]string{"category_code"},
		),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estadoc_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "estadoc_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		registry: registry,
		stages:   make(map[string]*stageCounters),
	}

	registry.MustRegister(
		m.stageExecutions,
		m.stageDuration,
		m.documentsTotal,
		m.classifications,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)

	return m
}

// RecordStage records one stage invocation with its outcome and duration.
func (m *Metrics) RecordStage(stage string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.stageExecutions.WithLabelValues(stage, status).Inc()
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.stages[stage]
	if !ok {
		c = &stageCounters{}
		m.stages[stage] = c
	}
	c.processed++
	if !success {
		c.errors++
	}
	c.lastProcessed = time.Now()
}

// RecordDocument records a terminal pipeline status ("completed" or "failed").
func (m *Metrics) RecordDocument(status string) {
	m.documentsTotal.WithLabelValues(status).Inc()
}

// RecordClassification records a classification outcome by category code.
func (m *Metrics) RecordClassification(categoryCode string) {
	m.classifications.WithLabelValues(categoryCode).Inc()
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Snapshot returns a copy of the per-stage counters.
func (m *Metrics) Snapshot() map[string]StageSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]StageSnapshot, len(m.stages))
	for stage, c := range m.stages {
		out[stage] = StageSnapshot{
			Processed:     c.processed,
			Errors:        c.errors,
			LastProcessed: c.lastProcessed,
		}
	}
	return out
}

// StageCount returns the processed count for a stage. Test helper.
func (m *Metrics) StageCount(stage string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.stages[stage]; ok {
		return c.processed
	}
	return 0
}

// StageErrors returns the error count for a stage. Test helper.
func (m *Metrics) StageErrors(stage string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.stages[stage]; ok {
		return c.errors
	}
	return 0
}

// Handler returns the Prometheus metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware creates HTTP middleware that records request metrics.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		m.RecordHTTPRequest(r.Method, endpointName(r.URL.Path), strconv.Itoa(wrapped.statusCode), time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// endpointName normalizes the path into a bounded label value.
func endpointName(path string) string {
	switch path {
	case "/process":
		return "process"
	case "/health":
		return "health"
	case "/taxonomy":
		return "taxonomy"
	case "/stats":
		return "stats"
	case "/metrics":
		return "metrics"
	case "/results":
		return "results"
	default:
		if strings.HasPrefix(path, "/results/") {
			return "result"
		}
		return "unknown"
	}
}

// StageTimer measures the duration of one stage invocation. The start time is
// a value owned by the caller, never shared component state, so concurrent
// runs stay independent.
type StageTimer struct {
	start   time.Time
	metrics *Metrics
	stage   string
}

// NewStageTimer starts a timer for the given stage.
func (m *Metrics) NewStageTimer(stage string) *StageTimer {
	return &StageTimer{start: time.Now(), metrics: m, stage: stage}
}

// Success records a successful stage execution.
func (t *StageTimer) Success() {
	t.metrics.RecordStage(t.stage, true, time.Since(t.start))
}

// Error records a failed stage execution.
func (t *StageTimer) Error() {
	t.metrics.RecordStage(t.stage, false, time.Since(t.start))
}
