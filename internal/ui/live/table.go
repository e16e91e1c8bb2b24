package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the trial table layout.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth sizes the status column to the available width.
func columnsForWidth(width int) []table.Column {
	fixed := 10 + 8 + 10 + 10
	status := width - fixed - 8
	if status < 16 {
		status = 16
	}
	return []table.Column{
		{Title: "Puzzle", Width: 10},
		{Title: "Guess", Width: 8},
		{Title: "Status", Width: status},
		{Title: "Time", Width: 10},
		{Title: "Tokens", Width: 10},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatTrialID(row),
			formatGuesses(row),
			formatStatus(row, noColor),
			formatRowDuration(row, now),
			formatTokens(row.Tokens),
		})
	}
	return rows
}
