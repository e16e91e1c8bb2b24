package report

import (
	"strings"
	"testing"

	"connections/internal/runner"
)

func TestRenderSummary(t *testing.T) {
	summary := runner.Summary{
		TrialsTotal:      10,
		Wins:             6,
		LostMaxMistakes:  2,
		LostMaxInvalid:   1,
		InfraFailures:    1,
		SolveRate:        6.0 / 9.0,
		GuessAccuracy:    0.8,
		Guesses:          50,
		Mistakes:         10,
		Invalids:         4,
		PromptTokens:     1000,
		CompletionTokens: 500,
		TotalTokens:      1500,
		TokenMethod:      "API",
		Cost:             0.25,
	}

	out := RenderSummary(summary, true)
	for _, want := range []string{"10 (6 won, 3 lost, 1 infra failures, 0 cancelled)", "66.7%", "1500 (API)", "$0.2500"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderIncludesRankings(t *testing.T) {
	results := runner.Results{
		RunID: "run-1",
		Model: "test-model",
		Summary: runner.Summary{TrialsTotal: 2, Wins: 1, SolveRate: 0.5, TokenMethod: "APPROXIMATE"},
		Rankings: []runner.PuzzleRank{
			{PuzzleID: 42, Difficulty: 3.5, Trials: 2, Finished: 2, Wins: 1, SolveRate: 0.5, AvgGuesses: 5.5, AvgMistakes: 2},
		},
	}

	out := Render(results, true)
	if !strings.Contains(out, "run-1") {
		t.Errorf("report missing run id:\n%s", out)
	}
	if !strings.Contains(out, "42") || !strings.Contains(out, "50%") {
		t.Errorf("report missing ranking row:\n%s", out)
	}
}

func TestRenderSummaryOmitsZeroCost(t *testing.T) {
	out := RenderSummary(runner.Summary{TokenMethod: "APPROXIMATE"}, true)
	if strings.Contains(out, "Cost:") {
		t.Errorf("zero-cost summary shows cost line:\n%s", out)
	}
}
