package puzzle

import "strings"

// NormalizeWord trims whitespace and uppercases a puzzle word for matching.
func NormalizeWord(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func normalizeWords(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, NormalizeWord(value))
	}
	return normalized
}
