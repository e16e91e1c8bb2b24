package runner

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"testing"

	"connections/internal/game"
	"connections/internal/puzzle"
	"connections/internal/responder"
)

// stubResponder answers every call with the same content.
type stubResponder struct {
	content string
}

func (s stubResponder) Propose(_ context.Context, messages []responder.Message) (responder.Reply, error) {
	return responder.Reply{
		Content:          s.content,
		PromptTokens:     responder.ApproxMessagesTokenCount(messages),
		CompletionTokens: responder.ApproxTokenCount(s.content),
		TokenMethod:      responder.TokenMethodApproximate,
	}, nil
}

func testPuzzles(n int) []puzzle.Puzzle {
	puzzles := make([]puzzle.Puzzle, 0, n)
	for i := 1; i <= n; i++ {
		puzzles = append(puzzles, testPuzzle(i))
	}
	return puzzles
}

func runTrials(t *testing.T, workers int, trials []Trial, observer RunObserver) []PuzzleResult {
	t.Helper()
	orchestrator := &Orchestrator{
		Runner: &TrialRunner{
			Responder: stubResponder{content: "no idea"},
			Template:  testTemplate(t),
			Rules:     game.DefaultRules(),
			Retry:     responder.RetryPolicy{MaxAttempts: 3},
			RunID:     "test-run",
			Model:     "test-model",
		},
		Workers:  workers,
		Seed:     99,
		Observer: observer,
	}
	var results []PuzzleResult
	for result := range orchestrator.Run(context.Background(), trials) {
		results = append(results, result)
	}
	return results
}

func TestOrchestratorOneResultPerTrial(t *testing.T) {
	trials := ExpandTrials(testPuzzles(3), 2)
	results := runTrials(t, 4, trials, nil)

	if len(results) != len(trials) {
		t.Fatalf("results = %d, want %d", len(results), len(trials))
	}
	seen := map[int]bool{}
	for _, result := range results {
		if seen[result.Ordinal] {
			t.Errorf("duplicate result for ordinal %d", result.Ordinal)
		}
		seen[result.Ordinal] = true
	}
}

func TestOrchestratorDeterministicAcrossWorkerCounts(t *testing.T) {
	trials := ExpandTrials(testPuzzles(4), 2)

	serial := runTrials(t, 1, trials, nil)
	parallel := runTrials(t, 8, trials, nil)

	normalize := func(results []PuzzleResult) []PuzzleResult {
		sort.Slice(results, func(i, j int) bool { return results[i].Ordinal < results[j].Ordinal })
		for i := range results {
			results[i].ElapsedSeconds = 0
			for j := range results[i].History {
				results[i].History[j].SubmittedAt = serial[0].History[0].SubmittedAt
			}
		}
		return results
	}
	serialNorm := normalize(serial)
	parallelNorm := normalize(parallel)
	if !reflect.DeepEqual(serialNorm, parallelNorm) {
		t.Errorf("results differ between 1 and 8 workers:\n%+v\n%+v", serialNorm, parallelNorm)
	}
}

func TestOrchestratorSeedsTrialsByOrdinal(t *testing.T) {
	trials := ExpandTrials(testPuzzles(2), 1)
	results := runTrials(t, 2, trials, nil)

	sort.Slice(results, func(i, j int) bool { return results[i].Ordinal < results[j].Ordinal })
	for i, result := range results {
		if want := int64(99 + i); result.Seed != want {
			t.Errorf("trial %d seed = %d, want %d", i, result.Seed, want)
		}
	}
}

func TestOrchestratorCancellationEmitsCancelledResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trials := ExpandTrials(testPuzzles(3), 2)
	orchestrator := &Orchestrator{
		Runner: &TrialRunner{
			Responder: stubResponder{content: "no idea"},
			Template:  testTemplate(t),
			Rules:     game.DefaultRules(),
			Retry:     responder.RetryPolicy{MaxAttempts: 3},
		},
		Workers: 2,
	}

	count := 0
	for result := range orchestrator.Run(ctx, trials) {
		count++
		if result.Outcome != OutcomeCancelled {
			t.Errorf("ordinal %d outcome = %s, want %s", result.Ordinal, result.Outcome, OutcomeCancelled)
		}
	}
	if count != len(trials) {
		t.Errorf("results = %d, want %d", count, len(trials))
	}
}

// recordingObserver collects events with a mutex since workers emit
// concurrently.
type recordingObserver struct {
	mu     sync.Mutex
	starts int
	events []TrialEvent
	ends   int
}

func (o *recordingObserver) OnRunStart(string, string, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.starts++
}

func (o *recordingObserver) OnTrialEvent(event TrialEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) OnRunEnd(Results) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ends++
}

func TestOrchestratorEmitsLifecycleEvents(t *testing.T) {
	observer := &recordingObserver{}
	trials := ExpandTrials(testPuzzles(2), 1)
	runTrials(t, 2, trials, observer)

	counts := map[TrialEventType]int{}
	for _, event := range observer.events {
		counts[event.Type]++
	}
	if counts[TrialQueued] != len(trials) {
		t.Errorf("queued events = %d, want %d", counts[TrialQueued], len(trials))
	}
	if counts[TrialRunning] != len(trials) {
		t.Errorf("running events = %d, want %d", counts[TrialRunning], len(trials))
	}
	if counts[TrialFinished] != len(trials) {
		t.Errorf("finished events = %d, want %d", counts[TrialFinished], len(trials))
	}
	if counts[TrialGuess] == 0 {
		t.Error("no guess events emitted")
	}
}
