package duckdb

import (
	"database/sql"
	"sync"

	"connections/internal/logging"
)

// Sink streams exchange records into the exchanges table. Sink writes
// are fire-and-forget like every logging sink; the first insert error is
// kept for inspection after the run.
type Sink struct {
	db *sql.DB

	mu  sync.Mutex
	err error
}

// NewSink wraps an open result database as a logging sink.
func NewSink(db *sql.DB) *Sink {
	return &Sink{db: db}
}

// Exchange inserts one exchange record.
func (s *Sink) Exchange(record logging.ExchangeRecord) {
	_, err := s.db.Exec(
		`INSERT INTO exchanges (exchange_id, run_id, puzzle_id, trial, guess_index,
		                        request, response, thinking, guess, confidence,
		                        latency_ms, prompt_tokens, completion_tokens,
		                        cost, upstream_cost, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (exchange_id) DO NOTHING`,
		record.ExchangeID,
		record.RunID,
		record.PuzzleID,
		record.Trial,
		record.GuessIndex,
		record.Request,
		record.Response,
		record.Thinking,
		record.Guess,
		record.Confidence,
		record.LatencyMS,
		record.PromptTokens,
		record.CompletionTokens,
		record.Cost,
		record.UpstreamCost,
		record.Result,
	)
	s.recordErr(err)
}

// Summary is a no-op; run summaries land in the runs table at ingest.
func (s *Sink) Summary(any) {}

// Err returns the first insert error seen, if any.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Sink) recordErr(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}
