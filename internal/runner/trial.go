package runner

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"connections/internal/game"
	"connections/internal/logging"
	"connections/internal/prompt"
	"connections/internal/puzzle"
	"connections/internal/responder"
)

// Trial identifies one play-through of one puzzle within a run.
type Trial struct {
	Puzzle  puzzle.Puzzle
	Ordinal int
	Trial   int
	Seed    int64
}

// ExpandTrials lays out trialsPerPuzzle trials for each puzzle, assigning
// run-wide ordinals in puzzle order.
func ExpandTrials(puzzles []puzzle.Puzzle, trialsPerPuzzle int) []Trial {
	if trialsPerPuzzle < 1 {
		trialsPerPuzzle = 1
	}
	trials := make([]Trial, 0, len(puzzles)*trialsPerPuzzle)
	ordinal := 0
	for _, p := range puzzles {
		for t := 1; t <= trialsPerPuzzle; t++ {
			trials = append(trials, Trial{Puzzle: p, Ordinal: ordinal, Trial: t})
			ordinal++
		}
	}
	return trials
}

// TrialRunner plays complete games against a responder. It is safe for
// concurrent use: all per-trial state lives in Run.
type TrialRunner struct {
	Responder responder.Responder
	Template  prompt.Template
	Rules     game.Rules
	Retry     responder.RetryPolicy
	Sink      logging.Sink
	RunID     string
	Model     string

	now func() time.Time
}

// Run plays one trial to completion and returns exactly one result,
// whatever happens. The trial rng drives both the word shuffle and the
// retry jitter, so a fixed seed replays the same trial.
func (r *TrialRunner) Run(ctx context.Context, trial Trial, rng *rand.Rand, emit func(TrialEvent)) PuzzleResult {
	now := r.now
	if now == nil {
		now = time.Now
	}
	sink := r.Sink
	if sink == nil {
		sink = logging.Nop{}
	}
	start := now()

	result := PuzzleResult{
		PuzzleID:    trial.Puzzle.ID,
		Ordinal:     trial.Ordinal,
		Trial:       trial.Trial,
		Seed:        trial.Seed,
		TokenMethod: responder.TokenMethodApproximate,
	}

	words := shuffledWords(trial.Puzzle.Words, rng)
	session := game.NewSessionAt(trial.Puzzle, r.Rules, now)
	messages := []responder.Message{{
		Role:    "user",
		Content: r.Template.Render(trial.Puzzle.ID, trial.Puzzle.Difficulty, words),
	}}

	for guessIndex := 1; !session.Status().Terminal(); guessIndex++ {
		if ctx.Err() != nil {
			return r.finish(result, session, start, now(), OutcomeCancelled, ctx.Err().Error())
		}

		callStart := now()
		retry := r.Retry
		retry.OnRetry = func(attempt int, retryErr error) {
			if emit != nil {
				emit(TrialEvent{
					PuzzleID:   trial.Puzzle.ID,
					Ordinal:    trial.Ordinal,
					Trial:      trial.Trial,
					Type:       TrialRetrying,
					GuessIndex: guessIndex,
					Message:    retryErr.Error(),
					EmittedAt:  now(),
				})
			}
		}
		reply, err := retry.Do(ctx, rng, func(ctx context.Context) (responder.Reply, error) {
			return r.Responder.Propose(ctx, messages)
		})
		latency := now().Sub(callStart)

		result.PromptTokens += reply.PromptTokens
		result.CompletionTokens += reply.CompletionTokens
		result.Cost += reply.Cost
		result.UpstreamCost += reply.UpstreamCost
		if reply.TokenMethod == responder.TokenMethodAPI {
			result.TokenMethod = responder.TokenMethodAPI
		}

		if err != nil && responder.KindOf(err) != responder.KindMalformed {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return r.finish(result, session, start, now(), OutcomeCancelled, err.Error())
			}
			r.logExchange(sink, trial, guessIndex, messages, reply, latency, game.Structured{}, "error: "+err.Error())
			return r.finish(result, session, start, now(), OutcomeInfraFailure, err.Error())
		}

		// A malformed reply still goes through the session so it counts
		// against the invalid-response cap.
		structured := game.ParseStructured(reply.Content)
		feedback, submitErr := session.Submit(reply.Content)
		if submitErr != nil {
			return r.finish(result, session, start, now(), OutcomeInfraFailure, submitErr.Error())
		}
		r.logExchange(sink, trial, guessIndex, messages, reply, latency, structured, string(feedback.Verdict))
		if emit != nil {
			emit(TrialEvent{
				PuzzleID:   trial.Puzzle.ID,
				Ordinal:    trial.Ordinal,
				Trial:      trial.Trial,
				Type:       TrialGuess,
				GuessIndex: guessIndex,
				Verdict:    string(feedback.Verdict),
				Message:    feedback.Message,
				Tokens:     reply.TotalTokens(),
				EmittedAt:  now(),
			})
		}

		messages = append(messages,
			responder.Message{Role: "assistant", Content: reply.Content},
			responder.Message{Role: "user", Content: feedback.Message},
		)
	}

	return r.finish(result, session, start, now(), outcomeFor(session.Status()), "")
}

// finish fills the session-derived fields into the result.
func (r *TrialRunner) finish(result PuzzleResult, session *game.Session, start, end time.Time, outcome Outcome, errText string) PuzzleResult {
	result.Outcome = outcome
	result.Won = outcome == OutcomeWon
	result.Guesses = session.GuessCount()
	result.Mistakes = session.Mistakes()
	result.Invalids = session.Invalids()
	result.SolvedGroups = session.SolvedColors()
	result.History = session.History()
	result.ElapsedSeconds = end.Sub(start).Seconds()
	result.TotalTokens = result.PromptTokens + result.CompletionTokens
	result.Error = errText
	return result
}

// logExchange records one responder call in the exchange log.
func (r *TrialRunner) logExchange(sink logging.Sink, trial Trial, guessIndex int, messages []responder.Message, reply responder.Reply, latency time.Duration, structured game.Structured, outcome string) {
	request := ""
	if len(messages) > 0 {
		request = messages[len(messages)-1].Content
	}
	sink.Exchange(logging.ExchangeRecord{
		RunID:            r.RunID,
		ExchangeID:       logging.NewExchangeID(),
		Model:            r.Model,
		PuzzleID:         trial.Puzzle.ID,
		Trial:            trial.Trial,
		GuessIndex:       guessIndex,
		Request:          request,
		Response:         reply.Content,
		Thinking:         structured.Thinking,
		Guess:            structured.Guess,
		Confidence:       structured.Confidence,
		LatencyMS:        latency.Milliseconds(),
		PromptTokens:     reply.PromptTokens,
		CompletionTokens: reply.CompletionTokens,
		Cost:             reply.Cost,
		UpstreamCost:     reply.UpstreamCost,
		Result:           outcome,
	})
}

// outcomeFor maps a terminal session status to a trial outcome.
func outcomeFor(status game.Status) Outcome {
	switch status {
	case game.StatusWon:
		return OutcomeWon
	case game.StatusLostMaxMistakes:
		return OutcomeLostMaxMistakes
	case game.StatusLostMaxInvalid:
		return OutcomeLostMaxInvalid
	case game.StatusLostMaxGuesses:
		return OutcomeLostMaxGuesses
	}
	return OutcomeInfraFailure
}

// shuffledWords returns a shuffled copy so the puzzle stays untouched.
func shuffledWords(words []string, rng *rand.Rand) []string {
	shuffled := make([]string, len(words))
	copy(shuffled, words)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
