package live

import (
	"fmt"

	"connections/internal/runner"
)

// Reduce applies a trial event to the UI state.
func Reduce(state State, event runner.TrialEvent) State {
	state = ensureRow(state, event)
	state = applyTrialEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target ordinal.
func ensureRow(state State, event runner.TrialEvent) State {
	if event.Ordinal < 0 {
		return state
	}
	if event.Ordinal < len(state.Rows) {
		return state
	}
	rows := make([]TrialRow, event.Ordinal+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = TrialRow{Ordinal: i, Status: runner.TrialQueued}
	}
	state.Rows = rows
	return state
}

// applyTrialEvent updates a row with the given event.
func applyTrialEvent(state State, event runner.TrialEvent) State {
	if event.Ordinal < 0 || event.Ordinal >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Ordinal]
	if row.PuzzleID == 0 {
		row.PuzzleID = event.PuzzleID
	}
	if row.Trial == 0 {
		row.Trial = event.Trial
	}
	switch event.Type {
	case runner.TrialGuess:
		row.Guesses = event.GuessIndex
		row.Verdict = event.Verdict
		if row.Status == runner.TrialRetrying {
			row.Status = runner.TrialRunning
		}
	case runner.TrialRunning:
		row.Status = event.Type
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case runner.TrialFinished:
		row.Status = event.Type
		row.Outcome = event.Outcome
		row.Tokens = event.Tokens
		row.Error = event.Error
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
	default:
		row.Status = event.Type
	}
	state.Rows[event.Ordinal] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []TrialRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.TrialQueued:
			counts.Queued++
		case runner.TrialRunning, runner.TrialRetrying:
			counts.Running++
		case runner.TrialFinished:
			counts.Done++
			switch row.Outcome {
			case runner.OutcomeWon:
				counts.Won++
			case runner.OutcomeLostMaxMistakes, runner.OutcomeLostMaxInvalid, runner.OutcomeLostMaxGuesses:
				counts.Lost++
			case runner.OutcomeInfraFailure:
				counts.Failed++
			case runner.OutcomeCancelled:
				counts.Cancelled++
			}
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.TrialEvent) string {
	switch event.Type {
	case runner.TrialGuess:
		return fmt.Sprintf("puzzle %d trial %d guess %d: %s", event.PuzzleID, event.Trial, event.GuessIndex, event.Verdict)
	case runner.TrialFinished:
		if event.Error != "" {
			return fmt.Sprintf("puzzle %d trial %d: %s (%s)", event.PuzzleID, event.Trial, event.Outcome, event.Error)
		}
		return fmt.Sprintf("puzzle %d trial %d: %s", event.PuzzleID, event.Trial, event.Outcome)
	}
	return ""
}
