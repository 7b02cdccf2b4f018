package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/spend"
	"github.com/google/subcommands"
)

// report prints the outcome of a mutation. Validation errors are expected user
// mistakes, anything else is a storage failure.
func report(err error, success string) subcommands.ExitStatus {
	switch {
	case err == nil:
		fmt.Fprintln(stdout, success)
		return subcommands.ExitSuccess
	case spend.IsValidation(err):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error writing ledger %q: %v\n", app.LedgerFile, err)
	}
	return subcommands.ExitFailure
}

// --- Income Command ---

type incomeCmd struct{}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "add income to the balance" }
func (*incomeCmd) Usage() string {
	return `spn income <amount>

  Adds a non-negative amount to the income and the balance.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {}

func (c *incomeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := spend.ParseAmount(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return withTracker(ctx, func(t *spend.Tracker) subcommands.ExitStatus {
		err := t.AddIncome(ctx, amount)
		return report(err, fmt.Sprintf("Added %v to income. New balance: %v",
			spend.M(amount, app.currency()), t.Ledger().Balance()))
	})
}

// --- Expense Command ---

type expenseCmd struct {
	category    string
	description string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record an expense" }
func (*expenseCmd) Usage() string {
	return `spn expense -c <category> [-m <description>] <amount>

  Records a positive amount spent in one of the configured categories, and
  deducts it from the balance. The category is case insensitive.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Expense category")
	f.StringVar(&c.description, "m", "", "An optional description of the expense")
}

func (c *expenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.category == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := spend.ParseAmount(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return withTracker(ctx, func(t *spend.Tracker) subcommands.ExitStatus {
		category := canonical(t.Categories(), c.category)
		err := t.AddExpense(ctx, amount, category, c.description)
		return report(err, fmt.Sprintf("Added expense: %v in %s. New balance: %v",
			spend.M(amount, app.currency()), category, t.Ledger().Balance()))
	})
}

// canonical returns the configured spelling of 'name', or 'name' itself when
// it is not a known category so that validation reports it.
func canonical(cs spend.Categories, name string) spend.Category {
	if c, ok := cs.Lookup(name); ok {
		return c
	}
	return spend.Category(name)
}
