package runner

import (
	"time"

	"connections/internal/game"
)

// Outcome classifies how a trial ended. Game losses, infrastructure
// failures, and cancellations are never conflated.
type Outcome string

const (
	// OutcomeWon marks a trial where all four groups were solved.
	OutcomeWon Outcome = "won"
	// OutcomeLostMaxMistakes marks a loss by reaching the mistake cap.
	OutcomeLostMaxMistakes Outcome = "lost_max_mistakes"
	// OutcomeLostMaxInvalid marks a loss by reaching the invalid-response cap.
	OutcomeLostMaxInvalid Outcome = "lost_max_invalid"
	// OutcomeLostMaxGuesses marks a loss by reaching the guess ceiling.
	OutcomeLostMaxGuesses Outcome = "lost_max_guesses"
	// OutcomeInfraFailure marks a trial abandoned after a model call failed.
	OutcomeInfraFailure Outcome = "infra_failure"
	// OutcomeCancelled marks a trial interrupted by context cancellation.
	OutcomeCancelled Outcome = "cancelled"
)

// Terminal reports whether the outcome represents a finished game,
// as opposed to an abandoned or interrupted one.
func (o Outcome) Terminal() bool {
	switch o {
	case OutcomeWon, OutcomeLostMaxMistakes, OutcomeLostMaxInvalid, OutcomeLostMaxGuesses:
		return true
	}
	return false
}

// PuzzleResult records the outcome of a single trial of one puzzle.
type PuzzleResult struct {
	PuzzleID         int                `json:"puzzle_id"`
	Ordinal          int                `json:"ordinal"`
	Trial            int                `json:"trial"`
	Seed             int64              `json:"seed"`
	Outcome          Outcome            `json:"outcome"`
	Won              bool               `json:"won"`
	Guesses          int                `json:"guesses"`
	Mistakes         int                `json:"mistakes"`
	Invalids         int                `json:"invalids"`
	SolvedGroups     []string           `json:"solved_groups"`
	ElapsedSeconds   float64            `json:"elapsed_seconds"`
	PromptTokens     int                `json:"prompt_tokens"`
	CompletionTokens int                `json:"completion_tokens"`
	TotalTokens      int                `json:"total_tokens"`
	TokenMethod      string             `json:"token_method"`
	Cost             float64            `json:"cost"`
	UpstreamCost     float64            `json:"upstream_cost"`
	History          []game.GuessRecord `json:"history,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// Results is the top-level payload written to results.json.
type Results struct {
	RunID      string         `json:"run_id"`
	Model      string         `json:"model"`
	Seed       int64          `json:"seed"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Trials     []PuzzleResult `json:"trials"`
	Summary    Summary        `json:"summary"`
	Rankings   []PuzzleRank   `json:"rankings,omitempty"`
}
