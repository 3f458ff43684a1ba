package kernel

// Reporter is the diagnostic side channel for rejected operations and
// settlement failures. Reporting is the only effect a transition has beyond
// the returned snapshot.
type Reporter interface {
	Report(event string, details map[string]interface{})
}

// NopReporter discards all diagnostics.
type NopReporter struct{}

// Report implements Reporter.
func (NopReporter) Report(string, map[string]interface{}) {}
