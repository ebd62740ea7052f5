package phonofix

import "github.com/google/uuid"

// EventKind identifies the category of an observability [Event].
type EventKind string

const (
	EventCorrection EventKind = "correction"
	EventFuzzyError EventKind = "fuzzy_error"
	EventDegraded   EventKind = "degraded"
	EventWarning    EventKind = "warning"
)

// Event is an observability record emitted during Correct. The core emits
// events, it does not format or sink them; callers register an Observer to
// consume the stream.
type Event struct {
	Kind    EventKind
	TraceID string

	// Correction fields, set when Kind == EventCorrection or EventWarning.
	Start        int
	End          int
	AliasSurface string
	Canonical    string
	Score        float64

	// Message carries free-form detail for FuzzyError/Degraded/Warning
	// events (e.g. the offending span or the reason a window was skipped).
	Message string
}

// Observer receives events emitted by a Corrector. It must not block:
// observers are called synchronously, in registration order, from inside
// Correct, so a slow Observer delays the Correct call that emitted the event.
type Observer func(Event)

// newTraceID returns a fresh trace identifier. It is a local value threaded
// through a single Correct call and is never stored on the Corrector, so
// concurrent calls never race over it.
func newTraceID() string {
	return uuid.NewString()
}
