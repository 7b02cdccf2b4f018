package cmd

import (
	"flag"

	"github.com/etnz/spend/docs"
	"github.com/etnz/spend/store"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors overrides the default prediction of some flags.
func flagPredictors() map[string]complete.Predictor {
	categories := make(predict.Set, 0)
	for _, c := range app.categories() {
		categories = append(categories, string(c))
	}
	return map[string]complete.Predictor{
		"ledger-file": predict.Files("*"),
		"backend":     predict.Set{string(store.JSON), string(store.SQLite)},
		"categories":  predict.Something,
		"c":           categories,
		"o":           predict.Files("*.png"),
	}
}

func predictFlags(f *flag.FlagSet, overrides map[string]complete.Predictor) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := overrides[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		if bf, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion tree of the application, global
// flags taken from 'global'.
func Completion(global *flag.FlagSet) *complete.Command {
	overrides := flagPredictors()
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(global, overrides),
	}
	for _, c := range Commands() {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{Flags: predictFlags(f, overrides)}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	return root
}

// Complete runs the shell completion if requested by the shell, and exits.
// It does nothing otherwise.
func Complete(name string, global *flag.FlagSet) {
	Completion(global).Complete(name)
}
