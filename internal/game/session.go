package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"connections/internal/puzzle"
)

// ErrFinished is returned when a guess is submitted to a terminal session.
var ErrFinished = errors.New("game session is already finished")

// Session owns one puzzle play-through: guess history, counters, and
// termination. A session is never shared across goroutines.
type Session struct {
	puzzle       puzzle.Puzzle
	rules        Rules
	status       Status
	solvedColors map[string]struct{}
	guesses      []GuessRecord
	mistakes     int
	invalids     int
	now          func() time.Time
}

// NewSession starts an in-progress session for a puzzle.
func NewSession(p puzzle.Puzzle, rules Rules) *Session {
	return NewSessionAt(p, rules, time.Now)
}

// NewSessionAt starts a session with an injected clock.
func NewSessionAt(p puzzle.Puzzle, rules Rules, now func() time.Time) *Session {
	if rules.MaxMistakes <= 0 {
		rules.MaxMistakes = DefaultRules().MaxMistakes
	}
	if rules.MaxInvalid <= 0 {
		rules.MaxInvalid = DefaultRules().MaxInvalid
	}
	if now == nil {
		now = time.Now
	}
	return &Session{
		puzzle:       p,
		rules:        rules,
		status:       StatusInProgress,
		solvedColors: map[string]struct{}{},
		now:          now,
	}
}

// Submit parses a raw responder message, applies the transition rule, and
// returns the feedback to relay. Terminal sessions reject further guesses.
func (s *Session) Submit(raw string) (Feedback, error) {
	if s.status.Terminal() {
		return Feedback{}, ErrFinished
	}
	words := ParseGuess(raw)
	record := GuessRecord{Words: words, Raw: raw, SubmittedAt: s.now()}

	if reason := s.validate(words); reason != "" {
		s.invalids++
		s.guesses = append(s.guesses, record)
		if s.invalids >= s.rules.MaxInvalid {
			s.status = StatusLostMaxInvalid
		}
		return s.feedback(VerdictInvalid, s.invalidMessage(reason, words)), nil
	}

	record.Valid = true
	guessSet := wordSet(words)
	for _, group := range s.puzzle.Groups {
		if _, solved := s.solvedColors[group.Color]; solved {
			continue
		}
		if setsEqual(guessSet, wordSet(group.Words)) {
			record.Correct = true
			s.guesses = append(s.guesses, record)
			s.solvedColors[group.Color] = struct{}{}
			if len(s.solvedColors) >= puzzle.GroupsPerPuzzle {
				s.status = StatusWon
				return s.feedback(VerdictCorrect, "CORRECT"), nil
			}
			s.checkGuessCeiling()
			if s.status.Terminal() {
				return s.feedback(VerdictCorrect, "CORRECT"), nil
			}
			return s.feedback(VerdictCorrect, "CORRECT. NEXT GUESS?"), nil
		}
	}

	s.guesses = append(s.guesses, record)
	s.mistakes++
	if s.mistakes >= s.rules.MaxMistakes {
		s.status = StatusLostMaxMistakes
	} else {
		s.checkGuessCeiling()
	}
	remaining := s.rules.MaxMistakes - s.mistakes
	return s.feedback(VerdictIncorrect, fmt.Sprintf("INCORRECT. %d INCORRECT GUESSES REMAINING", remaining)), nil
}

// validate returns an empty string for a valid guess, or the violation.
func (s *Session) validate(words []string) string {
	if len(words) != puzzle.WordsPerGroup {
		return fmt.Sprintf("expected %d words, got %d", puzzle.WordsPerGroup, len(words))
	}
	if len(wordSet(words)) != puzzle.WordsPerGroup {
		return "duplicate words are not allowed"
	}
	inPuzzle := wordSet(s.puzzle.Words)
	solved := s.solvedWords()
	for _, word := range words {
		if _, ok := inPuzzle[word]; !ok {
			return fmt.Sprintf("word %q is not in the puzzle", word)
		}
		if _, ok := solved[word]; ok {
			return fmt.Sprintf("word %q is from an already solved group", word)
		}
	}
	return ""
}

func (s *Session) checkGuessCeiling() {
	if s.rules.MaxGuesses > 0 && s.validGuessCount() >= s.rules.MaxGuesses {
		s.status = StatusLostMaxGuesses
	}
}

func (s *Session) invalidMessage(reason string, words []string) string {
	provided := "no valid words"
	if len(words) > 0 {
		provided = strings.Join(words, ", ")
	}
	return fmt.Sprintf("INVALID_RESPONSE: %s. Available words: %s. You provided: %s",
		reason, strings.Join(s.RemainingWords(), ", "), provided)
}

func (s *Session) feedback(verdict Verdict, message string) Feedback {
	return Feedback{
		Verdict:           verdict,
		Message:           message,
		SolvedGroups:      len(s.solvedColors),
		RemainingMistakes: s.rules.MaxMistakes - s.mistakes,
		Terminal:          s.status.Terminal(),
	}
}

// Status returns the current session status.
func (s *Session) Status() Status {
	return s.status
}

// Won reports whether the session ended with all groups solved.
func (s *Session) Won() bool {
	return s.status == StatusWon
}

// Mistakes returns the incorrect-but-valid guess count.
func (s *Session) Mistakes() int {
	return s.mistakes
}

// Invalids returns the malformed-response count.
func (s *Session) Invalids() int {
	return s.invalids
}

// GuessCount returns the number of valid guesses submitted so far.
func (s *Session) GuessCount() int {
	return s.validGuessCount()
}

// SolvedGroups returns the number of groups solved so far.
func (s *Session) SolvedGroups() int {
	return len(s.solvedColors)
}

// SolvedColors returns the colors of solved groups in puzzle order.
func (s *Session) SolvedColors() []string {
	colors := make([]string, 0, len(s.solvedColors))
	for _, group := range s.puzzle.Groups {
		if _, ok := s.solvedColors[group.Color]; ok {
			colors = append(colors, group.Color)
		}
	}
	return colors
}

// History returns the full guess history in submission order.
func (s *Session) History() []GuessRecord {
	history := make([]GuessRecord, len(s.guesses))
	copy(history, s.guesses)
	return history
}

// RemainingWords returns the sorted words not yet part of a solved group.
func (s *Session) RemainingWords() []string {
	solved := s.solvedWords()
	remaining := make([]string, 0, len(s.puzzle.Words))
	for _, word := range s.puzzle.Words {
		if _, ok := solved[word]; !ok {
			remaining = append(remaining, word)
		}
	}
	sort.Strings(remaining)
	return remaining
}

func (s *Session) validGuessCount() int {
	count := 0
	for _, record := range s.guesses {
		if record.Valid {
			count++
		}
	}
	return count
}

func (s *Session) solvedWords() map[string]struct{} {
	solved := map[string]struct{}{}
	for _, group := range s.puzzle.Groups {
		if _, ok := s.solvedColors[group.Color]; ok {
			for _, word := range group.Words {
				solved[word] = struct{}{}
			}
		}
	}
	return solved
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for key := range a {
		if _, ok := b[key]; !ok {
			return false
		}
	}
	return true
}
