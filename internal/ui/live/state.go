package live

import (
	"time"

	"connections/internal/runner"
)

// TrialRow holds UI state for a single trial.
type TrialRow struct {
	Ordinal    int
	PuzzleID   int
	Trial      int
	Status     runner.TrialEventType
	Guesses    int
	Verdict    string
	Outcome    runner.Outcome
	Tokens     int
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates row counts by status bucket.
type StatusCounts struct {
	Queued    int
	Running   int
	Done      int
	Won       int
	Lost      int
	Failed    int
	Cancelled int
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	Model     string
	Trials    int
	StartedAt time.Time
	LastEvent string
	Rows      []TrialRow
	Counts    StatusCounts
}
