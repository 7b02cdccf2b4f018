package cmd

import (
	"github.com/google/subcommands"
)

// groups lists the subcommands by group, in help order.
var groups = []struct {
	name     string
	commands []subcommands.Command
}{
	{"ledger", []subcommands.Command{&incomeCmd{}, &expenseCmd{}, &checkCmd{}}},
	{"reports", []subcommands.Command{&summaryCmd{}, &breakdownCmd{}, &listCmd{}, &plotCmd{}, &queryCmd{}}},
	{"interactive", []subcommands.Command{&menuCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// Commands returns all the subcommands.
func Commands() []subcommands.Command {
	var all []subcommands.Command
	for _, g := range groups {
		all = append(all, g.commands...)
	}
	return all
}

// Lookup returns the subcommand called 'name', or nil.
func Lookup(name string) subcommands.Command {
	for _, c := range Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
