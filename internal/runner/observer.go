package runner

import "time"

// TrialEventType identifies a trial status update for observers.
type TrialEventType string

const (
	// TrialQueued marks a trial known but not yet picked up by a worker.
	TrialQueued TrialEventType = "queued"
	// TrialRunning marks a trial picked up by a worker.
	TrialRunning TrialEventType = "running"
	// TrialGuess marks one submitted guess with its verdict.
	TrialGuess TrialEventType = "guess"
	// TrialRetrying marks a transient call failure being retried.
	TrialRetrying TrialEventType = "retrying"
	// TrialFinished marks a trial that produced its result.
	TrialFinished TrialEventType = "finished"
)

// TrialEvent carries a single status update for one trial.
type TrialEvent struct {
	PuzzleID   int
	Ordinal    int
	Trial      int
	Type       TrialEventType
	GuessIndex int
	Verdict    string
	Message    string
	Outcome    Outcome
	Tokens     int
	Error      string
	EmittedAt  time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, model string, trials int)
	// OnTrialEvent delivers a trial status update.
	OnTrialEvent(event TrialEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// emitTrialEvent delivers an event to an optional observer.
func emitTrialEvent(observer RunObserver, event TrialEvent) {
	if observer == nil {
		return
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now()
	}
	observer.OnTrialEvent(event)
}
