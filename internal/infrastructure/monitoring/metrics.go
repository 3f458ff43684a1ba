package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// State machine metrics
	TransitionsTotal *prometheus.CounterVec
	RejectedOpsTotal *prometheus.CounterVec
	TasksTracked     prometheus.Gauge
	HistoryLength    prometheus.Gauge
	KernelLoading    prometheus.Gauge

	// Loader metrics
	ManifestFetches *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec

	// History persistence metrics
	HistorySaves  prometheus.Counter
	HistoryLoads  prometheus.Counter
	HistoryClears prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kernel_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kernel_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kernel_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kernel_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// State machine metrics
		TransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kernel_transitions_total",
				Help: "Total number of state transitions",
			},
			[]string{"action", "phase"},
		),
		RejectedOpsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kernel_rejected_ops_total",
				Help: "Total number of rejected operations",
			},
			[]string{"reason"},
		),
		TasksTracked: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "kernel_tasks_tracked",
				Help: "Number of currently tracked tasks",
			},
		),
		HistoryLength: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "kernel_history_length",
				Help: "Number of entries in the history log",
			},
		),
		KernelLoading: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "kernel_loading",
				Help: "Whether any tracked task is loading (0 or 1)",
			},
		),

		// Loader metrics
		ManifestFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kernel_manifest_fetches_total",
				Help: "Total number of manifest fetch attempts",
			},
			[]string{"status"},
		),
		FetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kernel_manifest_fetch_duration_seconds",
				Help:    "Manifest fetch duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"status"},
		),

		// History persistence metrics
		HistorySaves: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kernel_history_saves_total",
				Help: "Total number of history persistence writes",
			},
		),
		HistoryLoads: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kernel_history_loads_total",
				Help: "Total number of history reads from disk",
			},
		),
		HistoryClears: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kernel_history_clears_total",
				Help: "Total number of history wipes",
			},
		),

		// WebSocket metrics
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "kernel_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kernel_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "kernel_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordTransition records one applied state transition
func (m *Metrics) RecordTransition(action, phase string) {
	if phase == "" {
		phase = "single"
	}
	m.TransitionsTotal.WithLabelValues(action, phase).Inc()
}

// RecordRejectedOp records a rejected operation by diagnostic reason
func (m *Metrics) RecordRejectedOp(reason string) {
	m.RejectedOpsTotal.WithLabelValues(reason).Inc()
}

// SetTasksTracked sets the tracked task gauge
func (m *Metrics) SetTasksTracked(count int) {
	m.TasksTracked.Set(float64(count))
}

// SetHistoryLength sets the history length gauge
func (m *Metrics) SetHistoryLength(count int) {
	m.HistoryLength.Set(float64(count))
}

// SetKernelLoading sets the aggregate loading gauge
func (m *Metrics) SetKernelLoading(loading bool) {
	if loading {
		m.KernelLoading.Set(1)
	} else {
		m.KernelLoading.Set(0)
	}
}

// RecordManifestFetch records a manifest fetch outcome
func (m *Metrics) RecordManifestFetch(status string, duration time.Duration) {
	m.ManifestFetches.WithLabelValues(status).Inc()
	m.FetchDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// IncHistorySaves increments the history save counter
func (m *Metrics) IncHistorySaves() {
	m.HistorySaves.Inc()
}

// IncHistoryLoads increments the history load counter
func (m *Metrics) IncHistoryLoads() {
	m.HistoryLoads.Inc()
}

// IncHistoryClears increments the history clear counter
func (m *Metrics) IncHistoryClears() {
	m.HistoryClears.Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
