package renderer

import (
	"github.com/etnz/spend"
)

// SummaryMarkdown renders the totals and the categories with spending.
func SummaryMarkdown(s *spend.Summary) string {
	partials := map[string]string{
		"summary_categories": "summary_categories.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

type breakdownRow struct {
	Category spend.Category
	Amount   spend.Money
	Share    float64
}

type breakdownView struct {
	Rows  []breakdownRow
	Total spend.Money
}

// BreakdownMarkdown renders every category, zeros included, with its share of
// the total spending.
func BreakdownMarkdown(b spend.Breakdown) string {
	view := breakdownView{Total: b.Total()}
	for _, ct := range b {
		view.Rows = append(view.Rows, breakdownRow{
			Category: ct.Category,
			Amount:   ct.Amount,
			Share:    ct.Amount.Percent(view.Total),
		})
	}
	return renderTemplate("breakdown", "breakdown.md", nil, view)
}
