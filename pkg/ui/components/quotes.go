// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// QuoteRow represents one completed quote in the history list.
type QuoteRow struct {
	At     time.Time
	Market string
	Label  string // e.g. "sell PT" or "buy YT"
	In     decimal.Decimal
	Out    decimal.Decimal
	MinOut decimal.Decimal
	Stale  bool
}

// QuotesComponent renders the recent-quote history.
type QuotesComponent struct {
	rows    []QuoteRow
	maxRows int
}

// NewQuotesComponent creates a new quotes component.
func NewQuotesComponent(maxRows int) *QuotesComponent {
	return &QuotesComponent{
		rows:    make([]QuoteRow, 0),
		maxRows: maxRows,
	}
}

// Add adds a new quote to the top of the list.
func (q *QuotesComponent) Add(row QuoteRow) {
	q.rows = append([]QuoteRow{row}, q.rows...)
	if len(q.rows) > q.maxRows {
		q.rows = q.rows[:q.maxRows]
	}
}

// MarkStale flags every held quote as stale (a new checkpoint landed).
func (q *QuotesComponent) MarkStale() {
	for i := range q.rows {
		q.rows[i].Stale = true
	}
}

// Clear clears the history.
func (q *QuotesComponent) Clear() {
	q.rows = make([]QuoteRow, 0)
}

// View renders the quotes component.
func (q *QuotesComponent) View() string {
	if len(q.rows) == 0 {
		return "Type an amount to quote..."
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	freshStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	staleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	result := headerStyle.Render(fmt.Sprintf("QUOTES (last %d)\n", q.maxRows))
	result += "┌──────────┬─────────┬──────────┬────────────┬────────────┬────────────┬───────┐\n"
	result += "│   Time   │ Market  │  Action  │     In     │    Out     │  Min out   │ State │\n"
	result += "├──────────┼─────────┼──────────┼────────────┼────────────┼────────────┼───────┤\n"

	for _, row := range q.rows {
		state := freshStyle.Render("fresh")
		if row.Stale {
			state = staleStyle.Render("stale")
		}
		result += fmt.Sprintf("│ %s │%8s │%9s │%11s │%11s │%11s │ %s │\n",
			row.At.Format("15:04:05"),
			row.Market,
			row.Label,
			row.In.StringFixed(4),
			row.Out.StringFixed(4),
			row.MinOut.StringFixed(4),
			state,
		)
	}

	result += "└──────────┴─────────┴──────────┴────────────┴────────────┴────────────┴───────┘"

	return result
}
