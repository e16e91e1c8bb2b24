package runner

import (
	"fmt"
	"io"
)

// ProgressObserver prints one line per trial lifecycle event. Events
// arrive from worker goroutines, so writes go through a locked writer.
type ProgressObserver struct {
	w io.Writer
}

// NewProgressObserver wraps a writer for plain-text run progress.
func NewProgressObserver(w io.Writer) *ProgressObserver {
	return &ProgressObserver{w: &lockedWriter{w: w}}
}

// OnRunStart prints the run header.
func (o *ProgressObserver) OnRunStart(runID string, model string, trials int) {
	fmt.Fprintf(o.w, "run %s model=%s trials=%d\n", runID, model, trials)
}

// OnTrialEvent prints running, guess, and finished events.
func (o *ProgressObserver) OnTrialEvent(event TrialEvent) {
	switch event.Type {
	case TrialRunning:
		fmt.Fprintf(o.w, "puzzle %d trial %d: running\n", event.PuzzleID, event.Trial)
	case TrialGuess:
		fmt.Fprintf(o.w, "puzzle %d trial %d: guess %d %s\n", event.PuzzleID, event.Trial, event.GuessIndex, event.Verdict)
	case TrialFinished:
		if event.Error != "" {
			fmt.Fprintf(o.w, "puzzle %d trial %d: %s (%s)\n", event.PuzzleID, event.Trial, event.Outcome, event.Error)
			return
		}
		fmt.Fprintf(o.w, "puzzle %d trial %d: %s\n", event.PuzzleID, event.Trial, event.Outcome)
	}
}

// OnRunEnd prints the run summary line.
func (o *ProgressObserver) OnRunEnd(results Results) {
	summary := results.Summary
	fmt.Fprintf(o.w, "done: %d/%d solved (%.0f%%), %d infra failures, %d cancelled, %d tokens (%s)\n",
		summary.Wins, summary.TrialsTotal, summary.SolveRate*100,
		summary.InfraFailures, summary.Cancelled, summary.TotalTokens, summary.TokenMethod)
}
