package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/spend"
	"github.com/google/subcommands"
)

type checkCmd struct {
	fix bool
}

func (*checkCmd) Name() string { return "check" }
func (*checkCmd) Synopsis() string {
	return "verify that the balance matches the income and the expenses"
}
func (*checkCmd) Usage() string {
	return `spn check [-fix]

  Verifies that the stored balance equals the income minus the sum of all
  expenses. With -fix, an inconsistent balance is recomputed and saved.
`
}

func (p *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.fix, "fix", false, "Recompute and save an inconsistent balance")
}

func (p *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(t *spend.Tracker) subcommands.ExitStatus {
		err := t.Ledger().Check()
		if err == nil {
			fmt.Fprintf(stdout, "Ledger %q is consistent.\n", app.LedgerFile)
			return subcommands.ExitSuccess
		}
		if !p.fix {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if _, err := t.Reconcile(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing ledger %q: %v\n", app.LedgerFile, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Balance fixed. New balance: %v\n", t.Ledger().Balance())
		return subcommands.ExitSuccess
	})
}
