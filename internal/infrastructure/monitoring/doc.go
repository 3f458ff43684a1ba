// Package monitoring provides Prometheus metrics for the kernel service.
//
// Metrics cover three planes:
//   - State machine: transitions by action/phase, rejected operations by
//     reason, gauges for tracked tasks, history length, and the aggregate
//     loading flag
//   - HTTP: request counts, durations, and sizes via gin middleware
//   - WebSocket: connection gauge and message counters
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	router.Use(monitoring.Middleware(metrics))
//	metrics.RecordTransition("navigateToUrlAsync", "begin")
package monitoring
