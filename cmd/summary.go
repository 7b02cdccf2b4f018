package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/spend"
	"github.com/etnz/spend/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	html bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a financial summary" }
func (*summaryCmd) Usage() string {
	return `spn summary [-html]

  Displays the total income, the total expenses, the current balance and the
  expenses of every category with spending.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.html, "html", false, "Print the summary as an HTML fragment")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(t *spend.Tracker) subcommands.ExitStatus {
		md := renderer.SummaryMarkdown(t.Summarize())
		if !c.html {
			printMarkdown(md)
			return subcommands.ExitSuccess
		}
		html, err := renderer.HTML(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprint(stdout, html)
		return subcommands.ExitSuccess
	})
}

type breakdownCmd struct{}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "display the expenses of every category" }
func (*breakdownCmd) Usage() string {
	return `spn breakdown

  Displays the total and the share of every configured category, including
  the ones without spending.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {}

func (c *breakdownCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(t *spend.Tracker) subcommands.ExitStatus {
		printMarkdown(renderer.BreakdownMarkdown(t.CategoryBreakdown()))
		return subcommands.ExitSuccess
	})
}
