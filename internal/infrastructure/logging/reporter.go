package logging

import (
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// Reporter routes kernel diagnostics to the log and the rejected-op counter.
// It satisfies the kernel's Reporter interface.
type Reporter struct {
	log     *Logger
	metrics *monitoring.Metrics
}

// NewReporter creates a diagnostic reporter. Metrics may be nil.
func NewReporter(log *Logger, metrics *monitoring.Metrics) *Reporter {
	if log == nil {
		log = NewDefault()
	}
	return &Reporter{log: log, metrics: metrics}
}

// Report logs one diagnostic event with its details.
func (r *Reporter) Report(event string, details map[string]interface{}) {
	fields := make([]zap.Field, 0, len(details)+1)
	fields = append(fields, zap.String("event", event))
	for k, v := range details {
		fields = append(fields, zap.Any(k, v))
	}
	r.log.Warn("kernel diagnostic", fields...)

	if r.metrics != nil {
		r.metrics.RecordRejectedOp(event)
	}
}
