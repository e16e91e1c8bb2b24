package runner

import (
	"math"
	"sort"
)

// DefaultTrialsPerPuzzle is the trial count used by difficulty ranking.
const DefaultTrialsPerPuzzle = 5

// PuzzleRank aggregates trial results for one puzzle. Averages and the
// guess deviation cover finished games only; infra failures and
// cancellations are reported separately and never dilute the rates.
type PuzzleRank struct {
	PuzzleID      int     `json:"puzzle_id"`
	Difficulty    float64 `json:"difficulty"`
	Trials        int     `json:"trials"`
	Finished      int     `json:"finished"`
	Wins          int     `json:"wins"`
	InfraFailures int     `json:"infra_failures"`
	Cancelled     int     `json:"cancelled"`
	SolveRate     float64 `json:"solve_rate"`
	AvgGuesses    float64 `json:"avg_guesses"`
	AvgMistakes   float64 `json:"avg_mistakes"`
	GuessStdDev   float64 `json:"guess_std_dev"`
}

// Rank groups results by puzzle and orders them hardest first: lowest
// solve rate, then highest average mistakes, then puzzle id.
func Rank(results []PuzzleResult, difficulties map[int]float64) []PuzzleRank {
	byPuzzle := map[int][]PuzzleResult{}
	ids := []int{}
	for _, result := range results {
		if _, seen := byPuzzle[result.PuzzleID]; !seen {
			ids = append(ids, result.PuzzleID)
		}
		byPuzzle[result.PuzzleID] = append(byPuzzle[result.PuzzleID], result)
	}

	ranks := make([]PuzzleRank, 0, len(ids))
	for _, id := range ids {
		rank := PuzzleRank{PuzzleID: id, Difficulty: difficulties[id]}
		guesses := []float64{}
		mistakes := 0
		for _, result := range byPuzzle[id] {
			rank.Trials++
			switch result.Outcome {
			case OutcomeInfraFailure:
				rank.InfraFailures++
				continue
			case OutcomeCancelled:
				rank.Cancelled++
				continue
			}
			rank.Finished++
			if result.Won {
				rank.Wins++
			}
			guesses = append(guesses, float64(result.Guesses))
			mistakes += result.Mistakes
		}
		if rank.Finished > 0 {
			rank.SolveRate = float64(rank.Wins) / float64(rank.Finished)
			rank.AvgGuesses = mean(guesses)
			rank.AvgMistakes = float64(mistakes) / float64(rank.Finished)
			rank.GuessStdDev = stdDev(guesses)
		}
		ranks = append(ranks, rank)
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].SolveRate != ranks[j].SolveRate {
			return ranks[i].SolveRate < ranks[j].SolveRate
		}
		if ranks[i].AvgMistakes != ranks[j].AvgMistakes {
			return ranks[i].AvgMistakes > ranks[j].AvgMistakes
		}
		return ranks[i].PuzzleID < ranks[j].PuzzleID
	})
	return ranks
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	avg := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - avg
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)))
}
