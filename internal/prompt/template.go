package prompt

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Template renders the puzzle prompt shown to a responder. Placeholders
// {{WORDS}}, {{PUZZLE_ID}}, and {{DIFFICULTY}} are substituted per trial.
type Template struct {
	text string
}

// LoadTemplate reads a prompt template file.
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("read prompt template: %w", err)
	}
	return NewTemplate(string(data))
}

// NewTemplate wraps template text, requiring the words placeholder.
func NewTemplate(text string) (Template, error) {
	if !strings.Contains(text, "{{WORDS}}") {
		return Template{}, fmt.Errorf("prompt template is missing the {{WORDS}} placeholder")
	}
	return Template{text: text}, nil
}

// Render substitutes puzzle data into the template.
func (t Template) Render(puzzleID int, difficulty float64, words []string) string {
	replacer := strings.NewReplacer(
		"{{WORDS}}", strings.Join(words, ", "),
		"{{PUZZLE_ID}}", strconv.Itoa(puzzleID),
		"{{DIFFICULTY}}", strconv.FormatFloat(difficulty, 'g', -1, 64),
	)
	return replacer.Replace(t.text)
}
