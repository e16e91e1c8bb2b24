package game

import (
	"reflect"
	"testing"
)

// TestParseGuess covers the staged guess extraction fallbacks.
func TestParseGuess(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			"guess tag",
			"<thinking>hmm</thinking>\n<guess>apple, pear, plum, fig</guess>",
			[]string{"APPLE", "PEAR", "PLUM", "FIG"},
		},
		{
			"guess tag mixed case",
			"<GUESS>Apple, Pear, Plum, Fig</GUESS>",
			[]string{"APPLE", "PEAR", "PLUM", "FIG"},
		},
		{
			"caps list fallback",
			"I think the answer is APPLE, PEAR, PLUM, FIG because they are fruit.",
			[]string{"APPLE", "PEAR", "PLUM", "FIG"},
		},
		{
			"caps list keeps extra words",
			"My final answer: A, B, C, D, E",
			[]string{"A", "B", "C", "D", "E"},
		},
		{
			"bare comma split",
			"apple, pear, plum, fig",
			[]string{"APPLE", "PEAR", "PLUM", "FIG"},
		},
		{
			"empty entries dropped",
			"apple,, pear, ",
			[]string{"APPLE", "PEAR"},
		},
		{
			"no commas",
			"I give up",
			[]string{"I GIVE UP"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseGuess(tc.response)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

// TestParseStructured verifies tagged sections are extracted for logging.
func TestParseStructured(t *testing.T) {
	response := "<thinking>fruit theme</thinking><guess>A, B, C, D</guess><confidence>high</confidence>"
	structured := ParseStructured(response)
	if structured.Thinking != "fruit theme" {
		t.Fatalf("unexpected thinking %q", structured.Thinking)
	}
	if structured.Guess != "A, B, C, D" {
		t.Fatalf("unexpected guess %q", structured.Guess)
	}
	if structured.Confidence != "high" {
		t.Fatalf("unexpected confidence %q", structured.Confidence)
	}
}

// TestParseStructuredMissingSections verifies absent tags stay empty.
func TestParseStructuredMissingSections(t *testing.T) {
	structured := ParseStructured("just words")
	if structured != (Structured{}) {
		t.Fatalf("expected empty structured, got %+v", structured)
	}
}
