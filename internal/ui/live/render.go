package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.Model != "" {
		line += " | Model: " + state.Model
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Queued: " + strconv.Itoa(counts.Queued) +
		" Running: " + strconv.Itoa(counts.Running) +
		" Done: " + strconv.Itoa(counts.Done) + "/" + strconv.Itoa(state.Trials) +
		" Won: " + strconv.Itoa(counts.Won) +
		" Lost: " + strconv.Itoa(counts.Lost) +
		" Failed: " + strconv.Itoa(counts.Failed) +
		" Cancelled: " + strconv.Itoa(counts.Cancelled)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
