package renderer

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/etnz/spend"
)

type expenseRow struct {
	spend.Expense
	Age string
}

// ExpensesMarkdown renders a table of expenses. Ages are relative to 'now'.
func ExpensesMarkdown(expenses []spend.Expense, now time.Time) string {
	rows := make([]expenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, expenseRow{
			Expense: e,
			Age:     humanize.RelTime(e.Date.Time(), now, "ago", "from now"),
		})
	}
	return renderTemplate("expenses", "expenses.md", nil, rows)
}
