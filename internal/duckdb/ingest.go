package duckdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"connections/internal/runner"
)

// CanonicalJSON returns deterministic JSON bytes for hashing and storage.
func CanonicalJSON(value any) ([]byte, error) {
	normalized, err := normalizeJSON(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// FingerprintJSON returns a SHA-256 hex digest for the canonical JSON.
func FingerprintJSON(value any) (string, error) {
	data, err := CanonicalJSON(value)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// normalizeJSON round-trips raw payloads through generic values so that
// marshaling sorts map keys deterministically.
func normalizeJSON(value any) (any, error) {
	switch v := value.(type) {
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil, fmt.Errorf("normalize json: %w", err)
		}
		return decoded, nil
	case []byte:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil, fmt.Errorf("normalize json: %w", err)
		}
		return decoded, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("normalize json: %w", err)
		}
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("normalize json: %w", err)
		}
		return decoded, nil
	}
}

// IngestResults stores a finished run and its trials. Reingesting the
// same run is a no-op: rows are keyed by run id and ordinal.
func IngestResults(ctx context.Context, db *sql.DB, results runner.Results) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	runKey, err := FingerprintJSON(results)
	if err != nil {
		return err
	}
	summary, err := CanonicalJSON(results.Summary)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, run_key, model, seed, started_at, finished_at, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id) DO NOTHING`,
		results.RunID,
		runKey,
		results.Model,
		results.Seed,
		results.StartedAt,
		results.FinishedAt,
		string(summary),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, trial := range results.Trials {
		solved, err := json.Marshal(trial.SolvedGroups)
		if err != nil {
			return fmt.Errorf("marshal solved groups: %w", err)
		}
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO trials (run_id, ordinal, puzzle_id, trial, seed, outcome, won,
			                     guesses, mistakes, invalids, solved_groups, elapsed_seconds,
			                     prompt_tokens, completion_tokens, total_tokens, token_method,
			                     cost, upstream_cost, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (run_id, ordinal) DO NOTHING`,
			results.RunID,
			trial.Ordinal,
			trial.PuzzleID,
			trial.Trial,
			trial.Seed,
			string(trial.Outcome),
			trial.Won,
			trial.Guesses,
			trial.Mistakes,
			trial.Invalids,
			string(solved),
			trial.ElapsedSeconds,
			trial.PromptTokens,
			trial.CompletionTokens,
			trial.TotalTokens,
			trial.TokenMethod,
			trial.Cost,
			trial.UpstreamCost,
			trial.Error,
		); err != nil {
			return fmt.Errorf("insert trial %d: %w", trial.Ordinal, err)
		}
	}
	return nil
}
