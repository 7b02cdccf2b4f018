package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/spend"
	"github.com/etnz/spend/chart"
	"github.com/google/subcommands"
)

type plotCmd struct {
	output string
	title  string
}

func (*plotCmd) Name() string     { return "plot" }
func (*plotCmd) Synopsis() string { return "save a pie chart of expenses by category" }
func (*plotCmd) Usage() string {
	return `spn plot [-o <file>] [-title <title>]

  Saves a PNG pie chart of the expenses of every category with spending.
  Nothing is written when there are no expenses.
`
}

func (c *plotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", chart.DefaultFile, "Output PNG file")
	f.StringVar(&c.title, "title", chart.DefaultTitle, "Chart title")
}

func (c *plotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(t *spend.Tracker) subcommands.ExitStatus {
		return plot(stdout, t.CategoryBreakdown(), c.output, c.title)
	})
}

// plot writes the chart and reports the outcome. An empty breakdown is not an
// error.
func plot(w io.Writer, b spend.Breakdown, output, title string) subcommands.ExitStatus {
	err := chart.WritePieFile(output, b, title)
	switch {
	case errors.Is(err, chart.ErrNothingToPlot):
		fmt.Fprintln(w, "No expenses to plot.")
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	default:
		fmt.Fprintf(w, "Pie chart saved as %q.\n", output)
	}
	return subcommands.ExitSuccess
}
