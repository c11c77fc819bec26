// Package progress: the Reporter interface and its no-op default.
package progress

// Severity grades a warning.
type Severity int

const (
	// Info is advisory.
	Info Severity = iota

	// Warning means the result stands with reduced confidence.
	Warning

	// Error means a stage failed and a fallback was taken.
	Error
)

// String names the severity.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Reporter receives pipeline events. Implementations must be safe to
// call from the solving goroutine; they are never called concurrently
// for one pipeline invocation.
type Reporter interface {
	// PhaseStarted announces a named pipeline phase.
	PhaseStarted(phase string)

	// PhaseCompleted closes a named pipeline phase.
	PhaseCompleted(phase string)

	// RecurrenceDetected reports a recurrence entering the pipeline,
	// rendered for humans.
	RecurrenceDetected(description string)

	// RecurrenceSolved reports the solved bound, rendered for humans.
	RecurrenceSolved(description, solution string)

	// Warning reports a severity-tagged diagnostic; location may be
	// empty when the event has no source position.
	Warning(severity Severity, code, msg, location string)

	// Progress reports completion percentage and the current item.
	Progress(percent float64, currentItem string)
}

// Nop is the default Reporter: it drops every event.
type Nop struct{}

// PhaseStarted implements Reporter.
func (Nop) PhaseStarted(string) {}

// PhaseCompleted implements Reporter.
func (Nop) PhaseCompleted(string) {}

// RecurrenceDetected implements Reporter.
func (Nop) RecurrenceDetected(string) {}

// RecurrenceSolved implements Reporter.
func (Nop) RecurrenceSolved(string, string) {}

// Warning implements Reporter.
func (Nop) Warning(Severity, string, string, string) {}

// Progress implements Reporter.
func (Nop) Progress(float64, string) {}

// OrNop substitutes the no-op sink for a nil Reporter.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}

	return r
}
