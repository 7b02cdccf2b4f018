// Package cmd implements the CLI application to track income and expenses.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/spend"
	"github.com/etnz/spend/store"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

const (
	EnvLedgerFile = "SPEND_LEDGER_FILE"
	EnvBackend    = "SPEND_BACKEND"
	EnvCurrency   = "SPEND_CURRENCY"
	EnvCategories = "SPEND_CATEGORIES"
	EnvStrict     = "SPEND_STRICT"
	EnvPlain      = "SPEND_PLAIN"
	EnvVerbose    = "SPEND_VERBOSE"
)

// Config holds the global flags.
type Config struct {
	LedgerFile string
	Backend    string
	Currency   string
	Categories string // comma separated, empty for the default set
	Strict     bool   // fail on a corrupted ledger instead of starting over
	Plain      bool   // print raw Markdown
	Verbose    bool
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var app = Config{
	LedgerFile: store.DefaultPath,
	Backend:    string(store.JSON),
	Currency:   "USD",
}

// stdout is where reports are printed.
var stdout io.Writer = os.Stdout

// DefineFlags loads the .env file if any, and registers the global flags on
// f with defaults taken from the environment.
func DefineFlags(f *flag.FlagSet) {
	_ = godotenv.Load()

	f.StringVar(&app.LedgerFile, "ledger-file", getEnv(EnvLedgerFile, app.LedgerFile), "Path to the ledger document")
	f.StringVar(&app.Backend, "backend", getEnv(EnvBackend, app.Backend), "Storage backend (json, sqlite)")
	f.StringVar(&app.Currency, "currency", getEnv(EnvCurrency, app.Currency), "Currency used to display amounts")
	f.StringVar(&app.Categories, "categories", getEnv(EnvCategories, app.Categories), "Comma separated list of expense categories")
	f.BoolVar(&app.Strict, "strict", getEnvBool(EnvStrict, app.Strict), "Refuse to start over when the ledger is corrupted")
	f.BoolVar(&app.Plain, "plain", getEnvBool(EnvPlain, app.Plain), "Print raw Markdown instead of styled text")
	f.BoolVar(&app.Verbose, "v", getEnvBool(EnvVerbose, app.Verbose), "Verbose logging")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// Validate returns all configuration errors at once.
func (c Config) Validate() error {
	var errs error
	if strings.TrimSpace(c.Currency) == "" {
		errs = errors.Join(errs, errors.New("currency cannot be empty"))
	} else if money.GetCurrency(c.currency()) == nil {
		errs = errors.Join(errs, fmt.Errorf("unknown currency %q: use an ISO 4217 code such as USD or EUR", c.Currency))
	}
	if _, err := spend.ParseCategories(c.Categories); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := c.storeConfig().Validate(); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}

func (c Config) storeConfig() store.Config {
	return store.Config{Type: store.Type(c.Backend), Path: c.LedgerFile}
}

// currency returns the configured currency code, in upper case.
func (c Config) currency() string { return strings.ToUpper(strings.TrimSpace(c.Currency)) }

func (c Config) categories() spend.Categories {
	cs, err := spend.ParseCategories(c.Categories)
	if err != nil {
		return spend.DefaultCategories
	}
	return cs
}

// newLogger returns the logger for storage notices, on stderr.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if app.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openTracker opens the configured store and loads the ledger. The returned
// function releases the store.
func openTracker(ctx context.Context) (*spend.Tracker, func(), error) {
	if err := app.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := newLogger()
	slog.SetDefault(logger)

	s, err := store.Open(ctx, app.storeConfig())
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := s.Close(); err != nil {
			logger.Warn("could not close ledger", "store", s, "error", err)
		}
	}

	tracker := spend.NewTracker(s,
		spend.WithCurrency(app.currency()),
		spend.WithCategories(app.categories()),
		spend.WithStrict(app.Strict),
		spend.WithLogger(logger),
	)
	if err := tracker.Load(ctx); err != nil {
		closer()
		return nil, nil, err
	}
	return tracker, closer, nil
}

// withTracker runs 'f' on the loaded tracker and reports any error on stderr.
func withTracker(ctx context.Context, f func(*spend.Tracker) subcommands.ExitStatus) subcommands.ExitStatus {
	tracker, closer, err := openTracker(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger %q: %v\n", app.LedgerFile, err)
		return subcommands.ExitFailure
	}
	defer closer()
	return f(tracker)
}

// termRenderer is initialized once per process.
var termRenderer = sync.OnceValues(func() (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
})

// writeMarkdown writes 'md' to w, styled for the terminal unless plain output
// is requested.
func writeMarkdown(w io.Writer, md string) {
	if !app.Plain {
		if r, err := termRenderer(); err == nil {
			if styled, err := r.Render(md); err == nil {
				md = styled
			}
		}
	}
	fmt.Fprint(w, md)
}

func printMarkdown(md string) { writeMarkdown(stdout, md) }
