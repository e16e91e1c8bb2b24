package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	var c issueCollector

	if strings.TrimSpace(cfg.Inputs.PuzzlesFile) == "" {
		c.add("inputs.puzzles_file", "is required")
	}
	if strings.TrimSpace(cfg.Inputs.PromptFile) == "" {
		c.add("inputs.prompt_file", "is required")
	}
	if strings.TrimSpace(cfg.Inputs.ModelsFile) == "" {
		c.add("inputs.models_file", "is required")
	}

	if cfg.Rules.MaxMistakes < 1 {
		c.add("rules.max_mistakes", "must be >= 1")
	}
	if cfg.Rules.MaxInvalid < 1 {
		c.add("rules.max_invalid", "must be >= 1")
	}
	if cfg.Rules.MaxGuesses < 0 {
		c.add("rules.max_guesses", "must be >= 0")
	}

	if cfg.Retry.MaxAttempts < 1 {
		c.add("retry.max_attempts", "must be >= 1")
	}
	if cfg.Retry.BaseDelayMS < 0 {
		c.add("retry.base_delay_ms", "must be >= 0")
	}

	if cfg.Workers < 1 {
		c.add("workers", "must be >= 1")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		c.add("output_dir", "is required")
	}

	return c.result()
}
