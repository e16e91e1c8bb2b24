package live

import "connections/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventTrial delivers a trial status update.
	EventTrial
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind   EventKind
	RunID  string
	Model  string
	Trials int
	Trial  runner.TrialEvent
}
