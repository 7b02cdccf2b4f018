package spend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Store persists a ledger document.
//
// Load returns an error wrapping fs.ErrNotExist when there is no document yet
// and one wrapping ErrCorrupted when the document cannot be decoded.
type Store interface {
	Load(ctx context.Context) (*Ledger, error)
	Save(ctx context.Context, l *Ledger) error
}

// Tracker binds a Ledger to a Store: every successful mutation is persisted
// by overwriting the whole document.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	store      Store
	ledger     *Ledger
	currency   string
	categories Categories
	strict     bool
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithCurrency sets the display currency of the ledger.
func WithCurrency(cur string) Option { return func(t *Tracker) { t.currency = cur } }

// WithCategories sets the category set expenses are validated against.
func WithCategories(cs Categories) Option { return func(t *Tracker) { t.categories = cs } }

// WithStrict makes Load fail on a corrupted document instead of starting over
// with an empty ledger.
func WithStrict(strict bool) Option { return func(t *Tracker) { t.strict = strict } }

// WithClock sets the clock used to timestamp expenses.
func WithClock(now func() time.Time) Option { return func(t *Tracker) { t.now = now } }

// WithLogger sets the logger used for storage notices.
func WithLogger(logger *slog.Logger) Option { return func(t *Tracker) { t.logger = logger } }

// NewTracker returns a Tracker on 'store'. It holds an empty ledger until Load
// is called.
func NewTracker(store Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:      store,
		currency:   "USD",
		categories: DefaultCategories,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.ledger = t.configure(NewLedger())
	return t
}

func (t *Tracker) configure(l *Ledger) *Ledger {
	l.SetCurrency(t.currency)
	l.SetCategories(t.categories)
	return l
}

// Ledger returns the current ledger. It must not be modified directly.
func (t *Tracker) Ledger() *Ledger { return t.ledger }

// Categories returns the configured category set.
func (t *Tracker) Categories() Categories { return t.categories }

// Load reads the ledger from the store.
//
// A missing document yields an empty ledger. A corrupted document is reported
// as a warning and replaced by an empty ledger, unless the tracker is strict.
func (t *Tracker) Load(ctx context.Context) error {
	l, err := t.store.Load(ctx)
	switch {
	case err == nil:
		if err := l.Check(); err != nil {
			t.logger.WarnContext(ctx, "ledger balance is inconsistent", "store", t.store, "error", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		t.logger.DebugContext(ctx, "ledger does not exist, starting with an empty ledger", "store", t.store)
		l = NewLedger()
	case errors.Is(err, ErrCorrupted) && !t.strict:
		t.logger.WarnContext(ctx, "corrupted ledger, starting fresh", "store", t.store, "error", err)
		l = NewLedger()
	default:
		return fmt.Errorf("could not load ledger from %v: %w", t.store, err)
	}
	t.ledger = t.configure(l)
	return nil
}

// Persist overwrites the stored document with the current ledger.
func (t *Tracker) Persist(ctx context.Context) error {
	return t.save(ctx, t.ledger)
}

func (t *Tracker) save(ctx context.Context, l *Ledger) error {
	if err := t.store.Save(ctx, l); err != nil {
		return fmt.Errorf("could not save ledger to %v: %w", t.store, err)
	}
	return nil
}

// mutate applies 'change' to a copy of the ledger, persists the copy and
// makes it current. On any error the current ledger is left untouched.
func (t *Tracker) mutate(ctx context.Context, change func(*Ledger) error) error {
	next := t.ledger.Clone()
	if err := change(next); err != nil {
		return err
	}
	if err := t.save(ctx, next); err != nil {
		return err
	}
	t.ledger = next
	return nil
}

// AddIncome adds a non-negative 'amount' to the income and the balance, then
// persists the ledger.
func (t *Tracker) AddIncome(ctx context.Context, amount decimal.Decimal) error {
	return t.mutate(ctx, func(l *Ledger) error { return l.AddIncome(amount) })
}

// AddExpense records a positive 'amount' spent in 'category' now, then
// persists the ledger.
func (t *Tracker) AddExpense(ctx context.Context, amount decimal.Decimal, category Category, description string) error {
	e := NewExpense(M(amount, t.currency), category, description, NewTimestamp(t.now()))
	return t.mutate(ctx, func(l *Ledger) error { return l.AddExpense(e) })
}

// Reconcile fixes an inconsistent balance and persists the ledger. It
// reports whether the balance had to be changed.
func (t *Tracker) Reconcile(ctx context.Context) (bool, error) {
	if t.ledger.Check() == nil {
		return false, nil
	}
	err := t.mutate(ctx, func(l *Ledger) error {
		l.Reconcile()
		return nil
	})
	return err == nil, err
}

// Summarize returns the totals of the current ledger.
func (t *Tracker) Summarize() *Summary { return t.ledger.Summarize() }

// CategoryBreakdown returns the totals of every configured category.
func (t *Tracker) CategoryBreakdown() Breakdown { return t.ledger.CategoryBreakdown() }
