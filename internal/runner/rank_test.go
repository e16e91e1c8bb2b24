package runner

import (
	"math"
	"testing"
)

func TestRankOrdersHardestFirst(t *testing.T) {
	results := []PuzzleResult{
		// Puzzle 1: solved both trials.
		{PuzzleID: 1, Outcome: OutcomeWon, Won: true, Guesses: 4},
		{PuzzleID: 1, Outcome: OutcomeWon, Won: true, Guesses: 6, Mistakes: 2},
		// Puzzle 2: never solved.
		{PuzzleID: 2, Outcome: OutcomeLostMaxMistakes, Guesses: 5, Mistakes: 4},
		{PuzzleID: 2, Outcome: OutcomeLostMaxInvalid},
		// Puzzle 3: one win, one loss.
		{PuzzleID: 3, Outcome: OutcomeWon, Won: true, Guesses: 5, Mistakes: 1},
		{PuzzleID: 3, Outcome: OutcomeLostMaxMistakes, Guesses: 6, Mistakes: 4},
	}

	ranks := Rank(results, map[int]float64{1: 1.5, 2: 4.0, 3: 3.0})
	if len(ranks) != 3 {
		t.Fatalf("ranks = %d, want 3", len(ranks))
	}
	order := []int{ranks[0].PuzzleID, ranks[1].PuzzleID, ranks[2].PuzzleID}
	if order[0] != 2 || order[1] != 3 || order[2] != 1 {
		t.Errorf("order = %v, want [2 3 1] hardest first", order)
	}

	hardest := ranks[0]
	if hardest.SolveRate != 0 {
		t.Errorf("puzzle 2 SolveRate = %f, want 0", hardest.SolveRate)
	}
	if hardest.Difficulty != 4.0 {
		t.Errorf("puzzle 2 Difficulty = %f, want 4.0", hardest.Difficulty)
	}
	easiest := ranks[2]
	if easiest.SolveRate != 1 {
		t.Errorf("puzzle 1 SolveRate = %f, want 1", easiest.SolveRate)
	}
	if easiest.AvgGuesses != 5 {
		t.Errorf("puzzle 1 AvgGuesses = %f, want 5", easiest.AvgGuesses)
	}
	if want := 1.0; math.Abs(easiest.GuessStdDev-want) > 1e-9 {
		t.Errorf("puzzle 1 GuessStdDev = %f, want %f", easiest.GuessStdDev, want)
	}
	if easiest.AvgMistakes != 1 {
		t.Errorf("puzzle 1 AvgMistakes = %f, want 1", easiest.AvgMistakes)
	}
}

func TestRankReportsFailuresSeparately(t *testing.T) {
	results := []PuzzleResult{
		{PuzzleID: 7, Outcome: OutcomeWon, Won: true, Guesses: 4},
		{PuzzleID: 7, Outcome: OutcomeInfraFailure, Guesses: 2},
		{PuzzleID: 7, Outcome: OutcomeCancelled},
	}

	ranks := Rank(results, nil)
	if len(ranks) != 1 {
		t.Fatalf("ranks = %d, want 1", len(ranks))
	}
	rank := ranks[0]
	if rank.Trials != 3 || rank.Finished != 1 {
		t.Errorf("trials/finished = %d/%d, want 3/1", rank.Trials, rank.Finished)
	}
	if rank.InfraFailures != 1 || rank.Cancelled != 1 {
		t.Errorf("infra/cancelled = %d/%d, want 1/1", rank.InfraFailures, rank.Cancelled)
	}
	// Only the finished game feeds the rates.
	if rank.SolveRate != 1 || rank.AvgGuesses != 4 {
		t.Errorf("rates = %f/%f, want 1/4", rank.SolveRate, rank.AvgGuesses)
	}
}

func TestRankEmptyResults(t *testing.T) {
	if ranks := Rank(nil, nil); len(ranks) != 0 {
		t.Errorf("ranks = %v, want empty", ranks)
	}
}
