package responder

import (
	"context"
	"fmt"
	"sync"
)

// Scripted replays a fixed sequence of replies or errors. It backs
// deterministic evaluation runs and the test suites; it is safe for use
// by a single trial at a time.
type Scripted struct {
	mu    sync.Mutex
	steps []ScriptStep
	index int
}

// ScriptStep is one scripted responder turn.
type ScriptStep struct {
	Content string
	Err     error
}

// NewScripted builds a scripted responder from ordered steps.
func NewScripted(steps ...ScriptStep) *Scripted {
	return &Scripted{steps: steps}
}

// Propose returns the next scripted step.
func (s *Scripted) Propose(ctx context.Context, _ []Message) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= len(s.steps) {
		return Reply{}, Permanent(fmt.Errorf("scripted responder exhausted after %d steps", len(s.steps)))
	}
	step := s.steps[s.index]
	s.index++
	if step.Err != nil {
		return Reply{}, step.Err
	}
	return Reply{
		Content:          step.Content,
		PromptTokens:     ApproxTokenCount(step.Content),
		CompletionTokens: ApproxTokenCount(step.Content),
		TokenMethod:      TokenMethodApproximate,
	}, nil
}
