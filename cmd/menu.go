package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/spend"
	"github.com/etnz/spend/chart"
	"github.com/etnz/spend/renderer"
	"github.com/google/subcommands"
)

// DefaultCommand is run when no subcommand is given.
const DefaultCommand = "menu"

// stdin is where the menu reads answers from.
var stdin io.Reader = os.Stdin

type menuCmd struct {
	output string
}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "run the interactive expense tracker" }
func (*menuCmd) Usage() string {
	return `spn [menu] [-o <file>]

  Runs an interactive loop to add income, add expenses, show the summary and
  plot expenses. This is the default when no subcommand is given.
`
}

func (c *menuCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", chart.DefaultFile, "Output PNG file for the pie chart")
}

func (c *menuCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withTracker(ctx, func(t *spend.Tracker) subcommands.ExitStatus {
		s := &session{
			tracker: t,
			in:      bufio.NewScanner(stdin),
			out:     stdout,
			output:  c.output,
		}
		if err := s.run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

// session is one run of the interactive menu.
type session struct {
	tracker *spend.Tracker
	in      *bufio.Scanner
	out     io.Writer
	output  string // chart file
}

// ask prints 'prompt' and returns the next line. ok is false at the end of
// the input.
func (s *session) ask(prompt string) (answer string, ok bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// run loops until the user exits or the input ends. Only storage failures are
// returned, validation errors are printed and the loop goes on.
func (s *session) run(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "=== Personal Expense Tracker ===")
		fmt.Fprintln(s.out, "1. Add Income")
		fmt.Fprintln(s.out, "2. Add Expense")
		fmt.Fprintln(s.out, "3. Show Summary")
		fmt.Fprintln(s.out, "4. Plot Expenses")
		fmt.Fprintln(s.out, "5. Exit")
		choice, ok := s.ask("Select an option: ")
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		var err error
		switch choice {
		case "1":
			err = s.addIncome(ctx)
		case "2":
			err = s.addExpense(ctx)
		case "3":
			writeMarkdown(s.out, renderer.SummaryMarkdown(s.tracker.Summarize()))
		case "4":
			plot(s.out, s.tracker.CategoryBreakdown(), s.output, chart.DefaultTitle)
		case "5":
			fmt.Fprintln(s.out, "Thank you for using the expense tracker!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

// failed prints validation errors and returns the others.
func (s *session) failed(err error) error {
	if spend.IsValidation(err) {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return nil
	}
	return err
}

func (s *session) addIncome(ctx context.Context) error {
	answer, _ := s.ask("Enter income amount: ")
	amount, err := spend.ParseAmount(answer)
	if err == nil {
		err = s.tracker.AddIncome(ctx, amount)
	}
	if err != nil {
		return s.failed(err)
	}
	fmt.Fprintf(s.out, "Added %v to income. New balance: %v\n", spend.M(amount, s.tracker.Ledger().Currency()), s.tracker.Ledger().Balance())
	return nil
}

func (s *session) addExpense(ctx context.Context) error {
	fmt.Fprintln(s.out, "Categories: "+s.tracker.Categories().String())
	name, _ := s.ask("Enter expense category: ")
	category := canonical(s.tracker.Categories(), name)
	answer, _ := s.ask("Enter expense amount: ")
	description, _ := s.ask("Enter expense description (optional): ")

	amount, err := spend.ParseAmount(answer)
	if err == nil {
		err = s.tracker.AddExpense(ctx, amount, category, description)
	}
	if err != nil {
		return s.failed(err)
	}
	fmt.Fprintf(s.out, "Added expense: %v in %s. New balance: %v\n", spend.M(amount, s.tracker.Ledger().Currency()), category, s.tracker.Ledger().Balance())
	return nil
}
