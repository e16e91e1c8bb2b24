package runner

import (
	"math"
	"testing"

	"connections/internal/responder"
)

func TestEvalStatsAccumulate(t *testing.T) {
	var stats EvalStats
	stats.Accumulate(PuzzleResult{Outcome: OutcomeWon, Won: true, Guesses: 4, PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150, TokenMethod: responder.TokenMethodApproximate, Cost: 0.01})
	stats.Accumulate(PuzzleResult{Outcome: OutcomeLostMaxMistakes, Guesses: 7, Mistakes: 4, TotalTokens: 300, TokenMethod: responder.TokenMethodAPI, Cost: 0.02, UpstreamCost: 0.015})
	stats.Accumulate(PuzzleResult{Outcome: OutcomeLostMaxInvalid, Invalids: 3, TokenMethod: responder.TokenMethodApproximate})
	stats.Accumulate(PuzzleResult{Outcome: OutcomeInfraFailure, Guesses: 1})
	stats.Accumulate(PuzzleResult{Outcome: OutcomeCancelled})

	summary := stats.Summary()
	if summary.TrialsTotal != 5 {
		t.Errorf("TrialsTotal = %d, want 5", summary.TrialsTotal)
	}
	if summary.Wins != 1 || summary.LostMaxMistakes != 1 || summary.LostMaxInvalid != 1 {
		t.Errorf("outcome counts = %d/%d/%d", summary.Wins, summary.LostMaxMistakes, summary.LostMaxInvalid)
	}
	if summary.InfraFailures != 1 || summary.Cancelled != 1 {
		t.Errorf("infra/cancelled = %d/%d, want 1/1", summary.InfraFailures, summary.Cancelled)
	}
	// Solve rate counts finished games only; infra failures and
	// cancellations never dilute it.
	if want := 1.0 / 3.0; math.Abs(summary.SolveRate-want) > 1e-9 {
		t.Errorf("SolveRate = %f, want %f", summary.SolveRate, want)
	}
	if want := float64(12-4) / 12; math.Abs(summary.GuessAccuracy-want) > 1e-9 {
		t.Errorf("GuessAccuracy = %f, want %f", summary.GuessAccuracy, want)
	}
	if summary.TotalTokens != 450 {
		t.Errorf("TotalTokens = %d, want 450", summary.TotalTokens)
	}
	if summary.TokenMethod != responder.TokenMethodAPI {
		t.Errorf("TokenMethod = %q, want API once any trial reported API counts", summary.TokenMethod)
	}
	if math.Abs(summary.Cost-0.03) > 1e-9 || math.Abs(summary.UpstreamCost-0.015) > 1e-9 {
		t.Errorf("cost = %f/%f", summary.Cost, summary.UpstreamCost)
	}
}

func TestEvalStatsEmpty(t *testing.T) {
	var stats EvalStats
	summary := stats.Summary()
	if summary.SolveRate != 0 || summary.GuessAccuracy != 0 {
		t.Errorf("rates = %f/%f, want zero", summary.SolveRate, summary.GuessAccuracy)
	}
	if summary.TokenMethod != responder.TokenMethodApproximate {
		t.Errorf("TokenMethod = %q, want %q", summary.TokenMethod, responder.TokenMethodApproximate)
	}
}
