package cucumber

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"connections/internal/game"
	"connections/internal/puzzle"
)

type gameState struct {
	session  *game.Session
	feedback game.Feedback
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &gameState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*state = gameState{}
		return ctx, nil
	})

	ctx.Step(`^a puzzle with groups:$`, state.aPuzzleWithGroups)
	ctx.Step(`^the player guesses "([^"]*)"$`, state.thePlayerGuesses)
	ctx.Step(`^the player makes (\d+) wrong guesses$`, state.thePlayerMakesWrongGuesses)
	ctx.Step(`^the player submits (\d+) unparseable responses$`, state.thePlayerSubmitsUnparseableResponses)
	ctx.Step(`^the feedback is "([^"]*)"$`, state.theFeedbackIs)
	ctx.Step(`^the feedback starts with "([^"]*)"$`, state.theFeedbackStartsWith)
	ctx.Step(`^the feedback lists the available words$`, state.theFeedbackListsAvailableWords)
	ctx.Step(`^the game status is "([^"]*)"$`, state.theGameStatusIs)
	ctx.Step(`^submitting another guess fails$`, state.submittingAnotherGuessFails)
}

func (s *gameState) aPuzzleWithGroups(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header row and group rows")
	}
	p := puzzle.Puzzle{ID: 1}
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected color and words cells, got %d", len(row.Cells))
		}
		words := splitWords(row.Cells[1].Value)
		p.Groups = append(p.Groups, puzzle.Group{
			Name:  row.Cells[0].Value,
			Color: row.Cells[0].Value,
			Words: words,
		})
		p.Words = append(p.Words, words...)
	}
	s.session = game.NewSession(p, game.DefaultRules())
	return nil
}

func (s *gameState) thePlayerGuesses(guess string) error {
	feedback, err := s.session.Submit("<guess>" + guess + "</guess>")
	if err != nil {
		return err
	}
	s.feedback = feedback
	return nil
}

func (s *gameState) thePlayerMakesWrongGuesses(count int) error {
	// One word from each group is never a valid group.
	for i := 0; i < count; i++ {
		if err := s.thePlayerGuesses("APPLE, ANT, RED, NORTH"); err != nil {
			return err
		}
	}
	return nil
}

func (s *gameState) thePlayerSubmitsUnparseableResponses(count int) error {
	for i := 0; i < count; i++ {
		feedback, err := s.session.Submit("i cannot solve this")
		if err != nil {
			return err
		}
		s.feedback = feedback
	}
	return nil
}

func (s *gameState) theFeedbackIs(expected string) error {
	if s.feedback.Message != expected {
		return fmt.Errorf("feedback = %q, want %q", s.feedback.Message, expected)
	}
	return nil
}

func (s *gameState) theFeedbackStartsWith(prefix string) error {
	if !strings.HasPrefix(s.feedback.Message, prefix) {
		return fmt.Errorf("feedback = %q, want prefix %q", s.feedback.Message, prefix)
	}
	return nil
}

func (s *gameState) theFeedbackListsAvailableWords() error {
	for _, word := range s.session.RemainingWords() {
		if !strings.Contains(s.feedback.Message, word) {
			return fmt.Errorf("feedback %q does not list %q", s.feedback.Message, word)
		}
	}
	return nil
}

func (s *gameState) theGameStatusIs(expected string) error {
	if string(s.session.Status()) != expected {
		return fmt.Errorf("status = %q, want %q", s.session.Status(), expected)
	}
	return nil
}

func (s *gameState) submittingAnotherGuessFails() error {
	_, err := s.session.Submit("<guess>APPLE, BANANA, CHERRY, DATE</guess>")
	if !errors.Is(err, game.ErrFinished) {
		return fmt.Errorf("err = %v, want %v", err, game.ErrFinished)
	}
	return nil
}

func splitWords(list string) []string {
	parts := strings.Split(list, ",")
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		words = append(words, strings.TrimSpace(part))
	}
	return words
}
