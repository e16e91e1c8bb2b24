package runner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"connections/internal/game"
	"connections/internal/logging"
	"connections/internal/prompt"
	"connections/internal/puzzle"
	"connections/internal/responder"
)

// RunParams bundles everything a run needs. Zero values fall back to
// defaults where a default exists.
type RunParams struct {
	RunID           string
	Model           string
	Seed            int64
	Puzzles         []puzzle.Puzzle
	TrialsPerPuzzle int
	Rules           game.Rules
	Template        prompt.Template
	Responder       responder.Responder
	Retry           responder.RetryPolicy
	Workers         int
	Sink            logging.Sink
	Observer        RunObserver
	OutputDir       string

	now func() time.Time
}

// Run evaluates every selected puzzle and returns the folded results.
// Trial results stream in completion order and are folded by this single
// consumer; the serialized results are sorted by ordinal so a fixed seed
// yields byte-identical output regardless of worker count.
func Run(ctx context.Context, params RunParams) (Results, error) {
	if params.Responder == nil {
		return Results{}, fmt.Errorf("responder is required")
	}
	if len(params.Puzzles) == 0 {
		return Results{}, fmt.Errorf("no puzzles selected")
	}
	if params.RunID == "" {
		runID, err := NewRunID()
		if err != nil {
			return Results{}, err
		}
		params.RunID = runID
	}
	if params.TrialsPerPuzzle < 1 {
		params.TrialsPerPuzzle = 1
	}
	if params.Sink == nil {
		params.Sink = logging.Nop{}
	}
	now := params.now
	if now == nil {
		now = time.Now
	}

	trials := ExpandTrials(params.Puzzles, params.TrialsPerPuzzle)
	if params.Observer != nil {
		params.Observer.OnRunStart(params.RunID, params.Model, len(trials))
	}

	orchestrator := &Orchestrator{
		Runner: &TrialRunner{
			Responder: params.Responder,
			Template:  params.Template,
			Rules:     params.Rules,
			Retry:     params.Retry,
			Sink:      params.Sink,
			RunID:     params.RunID,
			Model:     params.Model,
			now:       now,
		},
		Workers:  params.Workers,
		Seed:     params.Seed,
		Observer: params.Observer,
	}

	results := Results{
		RunID:     params.RunID,
		Model:     params.Model,
		Seed:      params.Seed,
		StartedAt: now(),
	}
	var stats EvalStats
	for result := range orchestrator.Run(ctx, trials) {
		results.Trials = append(results.Trials, result)
		stats.Accumulate(result)
	}
	sort.Slice(results.Trials, func(i, j int) bool {
		return results.Trials[i].Ordinal < results.Trials[j].Ordinal
	})
	results.FinishedAt = now()
	results.Summary = stats.Summary()

	difficulties := make(map[int]float64, len(params.Puzzles))
	for _, p := range params.Puzzles {
		difficulties[p.ID] = p.Difficulty
	}
	results.Rankings = Rank(results.Trials, difficulties)

	params.Sink.Summary(results.Summary)
	if params.Observer != nil {
		params.Observer.OnRunEnd(results)
	}

	if params.OutputDir != "" {
		if _, err := WriteRunOutputs(results, params.OutputDir); err != nil {
			return results, err
		}
	}
	return results, nil
}
