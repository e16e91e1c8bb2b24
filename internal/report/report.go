// Package report renders run results for the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"connections/internal/runner"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
)

// Render builds the full text report: run header, summary, and the
// difficulty ranking table.
func Render(results runner.Results, noColor bool) string {
	sections := []string{
		renderHeader(results, noColor),
		RenderSummary(results.Summary, noColor),
	}
	if len(results.Rankings) > 0 {
		sections = append(sections, RenderRankings(results.Rankings, noColor))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func renderHeader(results runner.Results, noColor bool) string {
	line := fmt.Sprintf("Run %s | model %s | seed %d", results.RunID, results.Model, results.Seed)
	if noColor {
		return line
	}
	return titleStyle.Render(line)
}

// RenderSummary renders the run-level aggregate block.
func RenderSummary(summary runner.Summary, noColor bool) string {
	lines := []string{
		fmt.Sprintf("Trials:      %d (%d won, %d lost, %d infra failures, %d cancelled)",
			summary.TrialsTotal, summary.Wins,
			summary.LostMaxMistakes+summary.LostMaxInvalid+summary.LostMaxGuesses,
			summary.InfraFailures, summary.Cancelled),
		fmt.Sprintf("Solve rate:  %.1f%%", summary.SolveRate*100),
		fmt.Sprintf("Accuracy:    %.1f%% over %d valid guesses (%d mistakes, %d invalid responses)",
			summary.GuessAccuracy*100, summary.Guesses, summary.Mistakes, summary.Invalids),
		fmt.Sprintf("Tokens:      %d prompt + %d completion = %d (%s)",
			summary.PromptTokens, summary.CompletionTokens, summary.TotalTokens, summary.TokenMethod),
	}
	if summary.Cost > 0 || summary.UpstreamCost > 0 {
		lines = append(lines, fmt.Sprintf("Cost:        $%.4f ($%.4f upstream)", summary.Cost, summary.UpstreamCost))
	}
	block := strings.Join(lines, "\n")
	if noColor {
		return block
	}
	return mutedStyle.Render(block)
}

// RenderRankings renders the hardest-first puzzle table.
func RenderRankings(ranks []runner.PuzzleRank, noColor bool) string {
	t := table.New().
		Headers("Puzzle", "Difficulty", "Trials", "Solve rate", "Avg guesses", "Avg mistakes", "Guess stddev", "Failures")
	if !noColor {
		t = t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	}
	for _, rank := range ranks {
		failures := strconv.Itoa(rank.InfraFailures)
		if rank.Cancelled > 0 {
			failures += "+" + strconv.Itoa(rank.Cancelled) + " cancelled"
		}
		t = t.Row(
			strconv.Itoa(rank.PuzzleID),
			fmt.Sprintf("%.1f", rank.Difficulty),
			fmt.Sprintf("%d/%d", rank.Finished, rank.Trials),
			fmt.Sprintf("%.0f%%", rank.SolveRate*100),
			fmt.Sprintf("%.1f", rank.AvgGuesses),
			fmt.Sprintf("%.1f", rank.AvgMistakes),
			fmt.Sprintf("%.2f", rank.GuessStdDev),
			failures,
		)
	}
	return t.Render()
}
