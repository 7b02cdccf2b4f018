// Package chart draws the expenses of a ledger as images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/etnz/spend"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	// DefaultFile is the file written by WritePieFile when none is given.
	DefaultFile = "expenses_pie_chart.png"
	// DefaultTitle is the title of the pie chart.
	DefaultTitle = "Expenses by Category"

	width  = 800
	height = 600
)

// ErrNothingToPlot is returned when there is no expense to draw.
var ErrNothingToPlot = errors.New("no expenses to plot")

// PieValues returns one slice per category with spending, labelled with the
// category name and its share in percent.
func PieValues(b spend.Breakdown) []gochart.Value {
	nz := b.NonZero()
	total := nz.Total()
	values := make([]gochart.Value, 0, len(nz))
	for _, ct := range nz {
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", ct.Category, ct.Amount.Percent(total)),
			Value: ct.Amount.AsFloat(),
		})
	}
	return values
}

// WritePie renders a PNG pie chart of the breakdown into w.
// It returns ErrNothingToPlot without writing anything if all totals are zero.
func WritePie(w io.Writer, b spend.Breakdown, title string) error {
	values := PieValues(b)
	if len(values) == 0 {
		return ErrNothingToPlot
	}
	pie := gochart.PieChart{
		Title:  title,
		Width:  width,
		Height: height,
		Values: values,
	}
	if err := pie.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("could not render pie chart: %w", err)
	}
	return nil
}

// WritePieFile renders the pie chart into the file at 'path'. The file is
// only created when there is something to plot.
func WritePieFile(path string, b spend.Breakdown, title string) error {
	if len(b.NonZero()) == 0 {
		return ErrNothingToPlot
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating chart file %q: %w", path, err)
	}
	if err := WritePie(f, b, title); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
