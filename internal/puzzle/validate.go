package puzzle

import (
	"fmt"
	"sort"
	"strings"
)

// Issue captures a validation problem in a puzzle catalog.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("puzzle catalog validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeCatalog uppercases words, sorts puzzles by id, and validates the
// catalog invariants: distinct ids, 16 distinct words per puzzle, and 4
// groups of 4 that partition the word set exactly.
func NormalizeCatalog(catalog Catalog) (Catalog, error) {
	collector := &issueCollector{}
	if len(catalog.Puzzles) == 0 {
		collector.add("puzzles", "must include at least one entry")
	}

	seenIDs := map[int]struct{}{}
	for i, entry := range catalog.Puzzles {
		prefix := fmt.Sprintf("puzzles[%d]", i)
		if entry.ID < 0 {
			collector.add(prefix+".id", fmt.Sprintf("must be non-negative, got %d", entry.ID))
		}
		if _, exists := seenIDs[entry.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %d", entry.ID))
		} else {
			seenIDs[entry.ID] = struct{}{}
		}

		entry.Words = normalizeWords(entry.Words)
		wordSet := map[string]struct{}{}
		for wordIndex, word := range entry.Words {
			if word == "" {
				collector.add(fmt.Sprintf("%s.words[%d]", prefix, wordIndex), "is required")
				continue
			}
			if _, exists := wordSet[word]; exists {
				collector.add(fmt.Sprintf("%s.words[%d]", prefix, wordIndex), fmt.Sprintf("duplicate word %q", word))
			}
			wordSet[word] = struct{}{}
		}
		if len(entry.Words) != WordsPerPuzzle {
			collector.add(prefix+".words", fmt.Sprintf("must have exactly %d entries, got %d", WordsPerPuzzle, len(entry.Words)))
		}

		if len(entry.Groups) != GroupsPerPuzzle {
			collector.add(prefix+".groups", fmt.Sprintf("must have exactly %d entries, got %d", GroupsPerPuzzle, len(entry.Groups)))
		}
		grouped := map[string]struct{}{}
		seenColors := map[string]struct{}{}
		for groupIndex, group := range entry.Groups {
			groupPrefix := fmt.Sprintf("%s.groups[%d]", prefix, groupIndex)
			group.Name = strings.TrimSpace(group.Name)
			if group.Name == "" {
				collector.add(groupPrefix+".name", "is required")
			}
			group.Color = strings.ToLower(strings.TrimSpace(group.Color))
			if group.Color == "" {
				collector.add(groupPrefix+".color", "is required")
			} else if _, exists := seenColors[group.Color]; exists {
				collector.add(groupPrefix+".color", fmt.Sprintf("duplicate color %q", group.Color))
			} else {
				seenColors[group.Color] = struct{}{}
			}

			group.Words = normalizeWords(group.Words)
			if len(group.Words) != WordsPerGroup {
				collector.add(groupPrefix+".words", fmt.Sprintf("must have exactly %d entries, got %d", WordsPerGroup, len(group.Words)))
			}
			for wordIndex, word := range group.Words {
				if word == "" {
					collector.add(fmt.Sprintf("%s.words[%d]", groupPrefix, wordIndex), "is required")
					continue
				}
				if _, ok := wordSet[word]; !ok {
					collector.add(fmt.Sprintf("%s.words[%d]", groupPrefix, wordIndex), fmt.Sprintf("word %q is not in the puzzle", word))
				}
				if _, exists := grouped[word]; exists {
					collector.add(fmt.Sprintf("%s.words[%d]", groupPrefix, wordIndex), fmt.Sprintf("word %q appears in more than one group", word))
				}
				grouped[word] = struct{}{}
			}
			entry.Groups[groupIndex] = group
		}
		for _, word := range entry.Words {
			if word == "" {
				continue
			}
			if _, ok := grouped[word]; !ok {
				collector.add(prefix+".groups", fmt.Sprintf("word %q is not covered by any group", word))
			}
		}
		catalog.Puzzles[i] = entry
	}

	if err := collector.result(); err != nil {
		return Catalog{}, err
	}
	sort.Slice(catalog.Puzzles, func(a, b int) bool {
		return catalog.Puzzles[a].ID < catalog.Puzzles[b].ID
	})
	return catalog, nil
}
