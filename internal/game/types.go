package game

import "time"

// Status identifies the lifecycle state of a game session.
type Status string

const (
	// StatusInProgress marks a session that still accepts guesses.
	StatusInProgress Status = "in_progress"
	// StatusWon marks a session with all four groups solved.
	StatusWon Status = "won"
	// StatusLostMaxMistakes marks a session that hit the mistake cap.
	StatusLostMaxMistakes Status = "lost_max_mistakes"
	// StatusLostMaxInvalid marks a session that hit the invalid-response cap.
	StatusLostMaxInvalid Status = "lost_max_invalid"
	// StatusLostMaxGuesses marks a session that hit the optional
	// total-guess ceiling before solving all groups.
	StatusLostMaxGuesses Status = "lost_max_guesses"
)

// Terminal reports whether a status is absorbing.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

// Rules configures the caps enforced by a session.
type Rules struct {
	// MaxMistakes is the number of incorrect valid guesses that loses the game.
	MaxMistakes int
	// MaxInvalid is the number of malformed responses that loses the game.
	MaxInvalid int
	// MaxGuesses optionally caps total valid guesses; zero disables the cap.
	MaxGuesses int
}

// DefaultRules returns the standard Connections rules: four mistakes,
// three invalid responses, no separate total-guess ceiling.
func DefaultRules() Rules {
	return Rules{MaxMistakes: 4, MaxInvalid: 3}
}

// Verdict classifies the outcome of one submitted guess.
type Verdict string

const (
	// VerdictCorrect marks an exact match with an unsolved group.
	VerdictCorrect Verdict = "CORRECT"
	// VerdictIncorrect marks a valid guess that matched no group.
	VerdictIncorrect Verdict = "INCORRECT"
	// VerdictInvalid marks a malformed or rule-violating guess.
	VerdictInvalid Verdict = "INVALID_RESPONSE"
)

// Feedback is the information surface a session exposes to the responder
// after a guess: the verdict and remaining-attempt counts, never which
// words were right.
type Feedback struct {
	Verdict           Verdict
	Message           string
	SolvedGroups      int
	RemainingMistakes int
	Terminal          bool
}

// GuessRecord keeps the full detail of one submitted guess for logging.
type GuessRecord struct {
	Words       []string  `json:"words"`
	Raw         string    `json:"raw"`
	Valid       bool      `json:"valid"`
	Correct     bool      `json:"correct"`
	SubmittedAt time.Time `json:"submitted_at"`
}
