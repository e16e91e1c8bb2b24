package runner

import "connections/internal/responder"

// EvalStats folds trial results into run-level aggregates. Accumulate is
// O(1) per result; derived rates are computed on read. Stats are folded
// by a single consumer and need no locking.
type EvalStats struct {
	TrialsTotal      int
	Wins             int
	LostMaxMistakes  int
	LostMaxInvalid   int
	LostMaxGuesses   int
	InfraFailures    int
	Cancelled        int
	Guesses          int
	Mistakes         int
	Invalids         int
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Cost             float64
	UpstreamCost     float64

	sawAPITokens bool
}

// Accumulate folds one trial result into the aggregates.
func (s *EvalStats) Accumulate(result PuzzleResult) {
	s.TrialsTotal++
	switch result.Outcome {
	case OutcomeWon:
		s.Wins++
	case OutcomeLostMaxMistakes:
		s.LostMaxMistakes++
	case OutcomeLostMaxInvalid:
		s.LostMaxInvalid++
	case OutcomeLostMaxGuesses:
		s.LostMaxGuesses++
	case OutcomeInfraFailure:
		s.InfraFailures++
	case OutcomeCancelled:
		s.Cancelled++
	}
	s.Guesses += result.Guesses
	s.Mistakes += result.Mistakes
	s.Invalids += result.Invalids
	s.PromptTokens += result.PromptTokens
	s.CompletionTokens += result.CompletionTokens
	s.TotalTokens += result.TotalTokens
	s.Cost += result.Cost
	s.UpstreamCost += result.UpstreamCost
	if result.TokenMethod == responder.TokenMethodAPI {
		s.sawAPITokens = true
	}
}

// Terminal returns the number of trials that finished their game.
func (s *EvalStats) Terminal() int {
	return s.Wins + s.LostMaxMistakes + s.LostMaxInvalid + s.LostMaxGuesses
}

// SolveRate returns wins over finished games, zero when none finished.
func (s *EvalStats) SolveRate() float64 {
	terminal := s.Terminal()
	if terminal == 0 {
		return 0
	}
	return float64(s.Wins) / float64(terminal)
}

// GuessAccuracy returns correct valid guesses over all valid guesses.
func (s *EvalStats) GuessAccuracy() float64 {
	if s.Guesses == 0 {
		return 0
	}
	return float64(s.Guesses-s.Mistakes) / float64(s.Guesses)
}

// TokenMethod reports API when any trial carried provider-reported
// counts, otherwise APPROXIMATE.
func (s *EvalStats) TokenMethod() string {
	if s.sawAPITokens {
		return responder.TokenMethodAPI
	}
	return responder.TokenMethodApproximate
}

// Summary is the serialized run-level aggregate.
type Summary struct {
	TrialsTotal      int     `json:"trials_total"`
	Wins             int     `json:"wins"`
	LostMaxMistakes  int     `json:"lost_max_mistakes"`
	LostMaxInvalid   int     `json:"lost_max_invalid"`
	LostMaxGuesses   int     `json:"lost_max_guesses"`
	InfraFailures    int     `json:"infra_failures"`
	Cancelled        int     `json:"cancelled"`
	SolveRate        float64 `json:"solve_rate"`
	GuessAccuracy    float64 `json:"guess_accuracy"`
	Guesses          int     `json:"guesses"`
	Mistakes         int     `json:"mistakes"`
	Invalids         int     `json:"invalids"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	TokenMethod      string  `json:"token_method"`
	Cost             float64 `json:"cost"`
	UpstreamCost     float64 `json:"upstream_cost"`
}

// Summary materializes the aggregates with derived rates.
func (s *EvalStats) Summary() Summary {
	return Summary{
		TrialsTotal:      s.TrialsTotal,
		Wins:             s.Wins,
		LostMaxMistakes:  s.LostMaxMistakes,
		LostMaxInvalid:   s.LostMaxInvalid,
		LostMaxGuesses:   s.LostMaxGuesses,
		InfraFailures:    s.InfraFailures,
		Cancelled:        s.Cancelled,
		SolveRate:        s.SolveRate(),
		GuessAccuracy:    s.GuessAccuracy(),
		Guesses:          s.Guesses,
		Mistakes:         s.Mistakes,
		Invalids:         s.Invalids,
		PromptTokens:     s.PromptTokens,
		CompletionTokens: s.CompletionTokens,
		TotalTokens:      s.TotalTokens,
		TokenMethod:      s.TokenMethod(),
		Cost:             s.Cost,
		UpstreamCost:     s.UpstreamCost,
	}
}
