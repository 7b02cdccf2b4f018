package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/spend/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.DefineFlags(flag.CommandLine)
	cmd.Complete(name, flag.CommandLine)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if flag.NArg() == 0 {
		flag.CommandLine.Parse(append(os.Args[1:], cmd.DefaultCommand))
	}

	sub := flag.Arg(0)
	if cmd.Lookup(sub) == nil && sub != "help" && sub != "flags" && sub != "commands" {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
