// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// It also hosts the kernel diagnostic reporter, which routes rejected
// operations and settlement failures to the log and to the rejected-op
// metrics counter.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Server starting", zap.String("port", "8000"))
//	reporter := logging.NewReporter(logger, metrics)
package logging
