package runner

import (
	"context"
	"math/rand"
	"sync"
)

// Orchestrator fans trials out to a bounded pool of workers. Each trial
// gets its own rand.Rand derived from the run seed and the trial ordinal,
// so results do not depend on worker count or scheduling.
type Orchestrator struct {
	Runner   *TrialRunner
	Workers  int
	Seed     int64
	Observer RunObserver
}

// Run executes every trial and streams results in completion order. The
// channel carries exactly one result per trial and closes when all
// workers have drained; cancellation surfaces as cancelled results, never
// as missing ones.
func (o *Orchestrator) Run(ctx context.Context, trials []Trial) <-chan PuzzleResult {
	workers := o.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(trials) && len(trials) > 0 {
		workers = len(trials)
	}

	jobs := make(chan Trial)
	results := make(chan PuzzleResult, len(trials))

	for _, trial := range trials {
		emitTrialEvent(o.Observer, TrialEvent{
			PuzzleID: trial.Puzzle.ID,
			Ordinal:  trial.Ordinal,
			Trial:    trial.Trial,
			Type:     TrialQueued,
		})
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for trial := range jobs {
				emitTrialEvent(o.Observer, TrialEvent{
					PuzzleID: trial.Puzzle.ID,
					Ordinal:  trial.Ordinal,
					Trial:    trial.Trial,
					Type:     TrialRunning,
				})
				rng := rand.New(rand.NewSource(trial.Seed))
				result := o.Runner.Run(ctx, trial, rng, func(event TrialEvent) {
					emitTrialEvent(o.Observer, event)
				})
				emitTrialEvent(o.Observer, TrialEvent{
					PuzzleID: trial.Puzzle.ID,
					Ordinal:  trial.Ordinal,
					Trial:    trial.Trial,
					Type:     TrialFinished,
					Outcome:  result.Outcome,
					Tokens:   result.TotalTokens,
					Error:    result.Error,
				})
				results <- result
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, trial := range trials {
			trial.Seed = o.Seed + int64(trial.Ordinal)
			// Feed every trial even after cancellation; the runner turns
			// a cancelled context into a cancelled result immediately.
			jobs <- trial
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
