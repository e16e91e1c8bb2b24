package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"connections/internal/runner"
)

// formatTrialID returns the display id for a trial row.
func formatTrialID(row TrialRow) string {
	if row.PuzzleID == 0 {
		return "#" + strconv.Itoa(row.Ordinal+1)
	}
	return strconv.Itoa(row.PuzzleID) + "/" + strconv.Itoa(row.Trial)
}

// formatStatus renders a status string for a row.
func formatStatus(row TrialRow, noColor bool) string {
	label := statusLabel(row)
	if noColor {
		return label
	}
	return statusStyle(row).Render(label)
}

// statusLabel maps row statuses to display labels.
func statusLabel(row TrialRow) string {
	switch row.Status {
	case runner.TrialQueued:
		return "queued"
	case runner.TrialRunning:
		if row.Verdict != "" {
			return "running (" + row.Verdict + ")"
		}
		return "running"
	case runner.TrialRetrying:
		return "retrying"
	case runner.TrialFinished:
		return string(row.Outcome)
	default:
		return string(row.Status)
	}
}

// formatGuesses renders the guess counter for a row.
func formatGuesses(row TrialRow) string {
	if row.Guesses <= 0 {
		return ""
	}
	return strconv.Itoa(row.Guesses)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row TrialRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatTokens formats token counts for display.
func formatTokens(tokens int) string {
	if tokens <= 0 {
		return ""
	}
	return strconv.Itoa(tokens)
}

// statusStyle selects a style for a row.
func statusStyle(row TrialRow) lipgloss.Style {
	color := lipgloss.Color("244")
	switch row.Status {
	case runner.TrialRunning:
		color = lipgloss.Color("33")
	case runner.TrialRetrying:
		color = lipgloss.Color("39")
	case runner.TrialFinished:
		switch row.Outcome {
		case runner.OutcomeWon:
			color = lipgloss.Color("42")
		case runner.OutcomeInfraFailure:
			color = lipgloss.Color("196")
		case runner.OutcomeCancelled:
			color = lipgloss.Color("246")
		default:
			color = lipgloss.Color("220")
		}
	}
	return lipgloss.NewStyle().Foreground(color)
}
