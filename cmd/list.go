package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/spend"
	"github.com/etnz/spend/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	head     int
	tail     int
	category string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list recorded expenses" }
func (*listCmd) Usage() string {
	return `spn list [-c <category>] [-head <n>] [-tail <n>]

  Lists expenses in the order they were recorded.
`
}

func (p *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.head, "head", 0, "Show only the first N expenses.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N expenses.")
	f.StringVar(&p.category, "c", "", "Show only the expenses of this category.")
}

func (p *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	return withTracker(ctx, func(t *spend.Tracker) subcommands.ExitStatus {
		var expenses []spend.Expense
		for _, e := range t.Ledger().Expenses() {
			if p.category == "" || e.Category == canonical(t.Categories(), p.category) {
				expenses = append(expenses, e)
			}
		}

		if p.head > 0 && len(expenses) > p.head {
			expenses = expenses[:p.head]
		}
		if p.tail > 0 && len(expenses) > p.tail {
			expenses = expenses[len(expenses)-p.tail:]
		}

		printMarkdown(renderer.ExpensesMarkdown(expenses, time.Now()))
		return subcommands.ExitSuccess
	})
}
