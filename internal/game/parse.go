package game

import (
	"regexp"
	"strings"

	"connections/internal/puzzle"
)

var (
	guessTagPattern      = regexp.MustCompile(`(?is)<guess>(.*?)</guess>`)
	thinkingTagPattern   = regexp.MustCompile(`(?is)<thinking>(.*?)</thinking>`)
	confidenceTagPattern = regexp.MustCompile(`(?is)<confidence>(.*?)</confidence>`)
	capsListPattern      = regexp.MustCompile(`\b[A-Z][A-Z\s]*\b(?:\s*,\s*[A-Z][A-Z\s]*\b){3,}`)
)

// ParseGuess extracts candidate words from a raw responder message.
// It prefers a <guess> tag, then a run of four or more comma-separated
// all-caps words, then a bare comma split of the whole message. The
// caps fallback captures the whole run so an over-long list surfaces
// as too many words instead of being silently truncated to four.
func ParseGuess(response string) []string {
	if match := guessTagPattern.FindStringSubmatch(response); match != nil {
		return splitWords(match[1])
	}
	if match := capsListPattern.FindString(response); match != "" {
		return splitWords(match)
	}
	return splitWords(response)
}

// Structured holds the tagged sections of a responder message.
type Structured struct {
	Thinking   string
	Guess      string
	Confidence string
}

// ParseStructured extracts the thinking, guess, and confidence sections
// from a responder message for exchange logging. Missing sections are
// left empty.
func ParseStructured(response string) Structured {
	var structured Structured
	if match := thinkingTagPattern.FindStringSubmatch(response); match != nil {
		structured.Thinking = strings.TrimSpace(match[1])
	}
	if match := guessTagPattern.FindStringSubmatch(response); match != nil {
		structured.Guess = strings.TrimSpace(match[1])
	}
	if match := confidenceTagPattern.FindStringSubmatch(response); match != nil {
		structured.Confidence = strings.TrimSpace(match[1])
	}
	return structured
}

func splitWords(text string) []string {
	parts := strings.Split(text, ",")
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		word := puzzle.NormalizeWord(part)
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}
