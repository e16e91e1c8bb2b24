package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfigYAML = `inputs:
  puzzles_file: inputs/connections_puzzles.yml
  prompt_file: inputs/prompt_template.xml
  models_file: inputs/model_mappings.yml
workers: 8
output_dir: results
`

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".connections.yml")
	if err := os.WriteFile(path, []byte(validConfigYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.OutputDir != "results" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "results")
	}
	if cfg.Rules.MaxMistakes != DefaultMaxMistakes {
		t.Errorf("Rules.MaxMistakes = %d, want %d", cfg.Rules.MaxMistakes, DefaultMaxMistakes)
	}
	if cfg.Rules.MaxInvalid != DefaultMaxInvalid {
		t.Errorf("Rules.MaxInvalid = %d, want %d", cfg.Rules.MaxInvalid, DefaultMaxInvalid)
	}
	if cfg.Retry.MaxAttempts != DefaultRetryAttempts {
		t.Errorf("Retry.MaxAttempts = %d, want %d", cfg.Retry.MaxAttempts, DefaultRetryAttempts)
	}
	if cfg.Retry.BaseDelayMS != DefaultBaseDelayMS {
		t.Errorf("Retry.BaseDelayMS = %d, want %d", cfg.Retry.BaseDelayMS, DefaultBaseDelayMS)
	}
	if cfg.LogDir != DefaultLogDir {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, DefaultLogDir)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(validConfigYAML + "bogus: true\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseRejectsMultipleDocuments(t *testing.T) {
	_, err := Parse([]byte(validConfigYAML + "---\nworkers: 2\n"))
	if err == nil {
		t.Fatal("expected error for multiple documents")
	}
	if !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Errorf("error = %v, want multiple-documents message", err)
	}
}

func TestValidateCollectsIssues(t *testing.T) {
	cfg := Config{
		Rules:   RulesConfig{MaxMistakes: 4, MaxInvalid: 3, MaxGuesses: -1},
		Retry:   RetryConfig{MaxAttempts: 3},
		Workers: 0,
	}

	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}

	wantFields := []string{
		"inputs.puzzles_file",
		"inputs.prompt_file",
		"inputs.models_file",
		"rules.max_guesses",
		"workers",
		"output_dir",
	}
	got := map[string]bool{}
	for _, issue := range verr.Issues {
		got[issue.Field] = true
	}
	for _, field := range wantFields {
		if !got[field] {
			t.Errorf("missing issue for %s; got %v", field, verr.Issues)
		}
	}
}
