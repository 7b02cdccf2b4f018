package spend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// memStore keeps the encoded document in memory.
type memStore struct {
	data    []byte
	exists  bool
	saves   int
	failing bool
}

func (s *memStore) Load(context.Context) (*Ledger, error) {
	if !s.exists {
		return nil, fmt.Errorf("memory: %w", fs.ErrNotExist)
	}
	return DecodeLedger(bytes.NewReader(s.data))
}

func (s *memStore) Save(_ context.Context, l *Ledger) error {
	if s.failing {
		return errors.New("disk full")
	}
	var b bytes.Buffer
	if err := EncodeLedger(&b, l); err != nil {
		return err
	}
	s.data, s.exists = b.Bytes(), true
	s.saves++
	return nil
}

func (s *memStore) String() string { return "memory" }

var noon = time.Date(2025, time.August, 1, 12, 30, 0, 0, time.Local)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestTracker(t *testing.T, store *memStore, opts ...Option) *Tracker {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return noon })}, opts...)
	tr := NewTracker(store, opts...)
	if err := tr.Load(context.Background()); err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}
	return tr
}

func TestTracker_Scenario(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	tr := newTestTracker(t, store)

	if err := tr.AddIncome(ctx, d("1000")); err != nil {
		t.Fatalf("AddIncome() error: %v", err)
	}
	if err := tr.AddExpense(ctx, d("50.25"), "Food", "lunch"); err != nil {
		t.Fatalf("AddExpense() error: %v", err)
	}
	if err := tr.AddExpense(ctx, d("20"), "Transport", ""); err != nil {
		t.Fatalf("AddExpense() error: %v", err)
	}

	got := tr.Summarize()
	want := &Summary{
		Currency:      "USD",
		Income:        M(1000, "USD"),
		TotalExpenses: M(d("70.25"), "USD"),
		Balance:       M(d("929.75"), "USD"),
		Categories: Breakdown{
			{Category: "Food", Amount: M(d("50.25"), "USD")},
			{Category: "Transport", Amount: M(20, "USD")},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}

	wantBreakdown := Breakdown{
		{Category: "Food", Amount: M(d("50.25"), "USD")},
		{Category: "Transport", Amount: M(20, "USD")},
		{Category: "Entertainment", Amount: M(0, "USD")},
		{Category: "Utilities", Amount: M(0, "USD")},
		{Category: "Other", Amount: M(0, "USD")},
	}
	if diff := cmp.Diff(wantBreakdown, tr.CategoryBreakdown()); diff != "" {
		t.Errorf("CategoryBreakdown() mismatch (-want +got):\n%s", diff)
	}

	if store.saves != 3 {
		t.Errorf("store saved %d times, want 3", store.saves)
	}
}

func TestTracker_Rejections(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		op   func(*Tracker) error
		want error
	}{
		{"negative income", func(tr *Tracker) error { return tr.AddIncome(ctx, d("-5")) }, ErrNegativeAmount},
		{"zero expense", func(tr *Tracker) error { return tr.AddExpense(ctx, d("0"), "Food", "") }, ErrNonPositiveAmount},
		{"negative expense", func(tr *Tracker) error { return tr.AddExpense(ctx, d("-3"), "Food", "") }, ErrNonPositiveAmount},
		{"unknown category", func(tr *Tracker) error { return tr.AddExpense(ctx, d("10"), "Rent", "") }, ErrUnknownCategory},
		{"category is case sensitive", func(tr *Tracker) error { return tr.AddExpense(ctx, d("10"), "food", "") }, ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			tr := newTestTracker(t, store)
			if err := tr.AddIncome(ctx, d("100")); err != nil {
				t.Fatalf("AddIncome() error: %v", err)
			}
			before := store.data

			err := tt.op(tr)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got error %v, want %v", err, tt.want)
			}
			if !IsValidation(err) {
				t.Errorf("IsValidation(%v) = false, want true", err)
			}
			if store.saves != 1 || !bytes.Equal(store.data, before) {
				t.Errorf("rejected operation has been persisted")
			}
			l := tr.Ledger()
			if !l.Income().Equal(M(100, "USD")) || !l.Balance().Equal(M(100, "USD")) || l.Len() != 0 {
				t.Errorf("ledger changed: income=%v balance=%v expenses=%d", l.Income(), l.Balance(), l.Len())
			}
		})
	}
}

func TestTracker_UnknownCategoryListsValidOnes(t *testing.T) {
	tr := newTestTracker(t, &memStore{})
	err := tr.AddExpense(context.Background(), d("10"), "Rent", "")
	if err == nil {
		t.Fatal("AddExpense() should fail")
	}
	if want := "Choose from: Food, Transport, Entertainment, Utilities, Other"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err, want)
	}
}

func TestTracker_IncomeSequence(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, &memStore{})
	amounts := []string{"0", "10.10", "0.2", "1e3", "33.333"}
	sum := decimal.Zero
	for _, a := range amounts {
		if err := tr.AddIncome(ctx, d(a)); err != nil {
			t.Fatalf("AddIncome(%s) error: %v", a, err)
		}
		sum = sum.Add(d(a))
	}
	// rejected amounts do not count.
	_ = tr.AddIncome(ctx, d("-1"))

	l := tr.Ledger()
	if !l.Income().Decimal().Equal(sum) {
		t.Errorf("income = %v, want %v", l.Income().Decimal(), sum)
	}
	if !l.Balance().Decimal().Equal(sum) {
		t.Errorf("balance = %v, want %v", l.Balance().Decimal(), sum)
	}
}

func TestTracker_BalanceInvariant(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t, &memStore{})
	_ = tr.AddIncome(ctx, d("500"))
	expenses := []struct {
		amount   string
		category Category
	}{
		{"12.5", "Food"}, {"0", "Food"}, {"99.99", "Utilities"}, {"7", "Rent"}, {"400", "Other"}, {"-2", "Other"},
	}
	for _, e := range expenses {
		_ = tr.AddExpense(ctx, d(e.amount), e.category, "")
	}
	l := tr.Ledger()
	if l.Len() != 3 {
		t.Fatalf("got %d expenses, want 3", l.Len())
	}
	if err := l.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
	if want := d("-12.49"); !l.Balance().Decimal().Equal(want) {
		t.Errorf("balance = %v, want %v", l.Balance().Decimal(), want)
	}
}

func TestTracker_ExpenseTimestamp(t *testing.T) {
	tr := newTestTracker(t, &memStore{})
	if err := tr.AddExpense(context.Background(), d("1"), "Other", "gum"); err != nil {
		t.Fatal(err)
	}
	got := tr.Ledger().Expenses()[0].Date.String()
	if want := "2025-08-01 12:30:00"; got != want {
		t.Errorf("date = %q, want %q", got, want)
	}
}

func TestTracker_LoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	tr := newTestTracker(t, store)
	_ = tr.AddIncome(ctx, d("1000"))
	_ = tr.AddExpense(ctx, d("50.25"), "Food", "lunch")
	_ = tr.AddExpense(ctx, d("20"), "Transport", "")

	reloaded := newTestTracker(t, store)
	want, got := tr.Ledger(), reloaded.Ledger()
	if !want.Income().Equal(got.Income()) || !want.Balance().Equal(got.Balance()) {
		t.Errorf("totals mismatch: got %v/%v, want %v/%v", got.Income(), got.Balance(), want.Income(), want.Balance())
	}
	if diff := cmp.Diff(want.Expenses(), got.Expenses()); diff != "" {
		t.Errorf("expenses mismatch (-want +got):\n%s", diff)
	}
}

func TestTracker_LoadCorrupted(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	store := &memStore{data: []byte("{not json"), exists: true}

	tr := newTestTracker(t, store, WithLogger(logger))
	l := tr.Ledger()
	if !l.Income().IsZero() || !l.Balance().IsZero() || l.Len() != 0 {
		t.Errorf("corrupted ledger should load as empty, got income=%v balance=%v expenses=%d", l.Income(), l.Balance(), l.Len())
	}
	if !strings.Contains(logs.String(), "corrupted ledger") {
		t.Errorf("corruption has not been reported, logs: %q", logs.String())
	}
}

func TestTracker_LoadCorruptedStrict(t *testing.T) {
	store := &memStore{data: []byte("{not json"), exists: true}
	tr := NewTracker(store, WithStrict(true))
	err := tr.Load(context.Background())
	if !errors.Is(err, ErrCorrupted) {
		t.Errorf("Load() = %v, want %v", err, ErrCorrupted)
	}
}

func TestTracker_PersistFailure(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	tr := newTestTracker(t, store)
	store.failing = true

	if err := tr.AddIncome(ctx, d("10")); err == nil || IsValidation(err) {
		t.Fatalf("AddIncome() = %v, want a storage error", err)
	}
	if !tr.Ledger().Income().IsZero() {
		t.Errorf("income = %v after a failed save, want 0", tr.Ledger().Income())
	}
}

func TestTracker_Reconcile(t *testing.T) {
	store := &memStore{exists: true, data: []byte(`{"income": 100, "balance": 10, "expenses": [{"amount": 30, "category": "Food", "description": "", "date": "2025-08-01 10:00:00"}]}`)}
	tr := newTestTracker(t, store)

	var mismatch *BalanceMismatchError
	if err := tr.Ledger().Check(); !errors.As(err, &mismatch) {
		t.Fatalf("Check() = %v, want a *BalanceMismatchError", err)
	}
	if !mismatch.Expected.Equal(M(70, "USD")) {
		t.Errorf("expected balance = %v, want 70", mismatch.Expected)
	}

	changed, err := tr.Reconcile(context.Background())
	if err != nil || !changed {
		t.Fatalf("Reconcile() = %v, %v; want true, nil", changed, err)
	}
	if err := tr.Ledger().Check(); err != nil {
		t.Errorf("Check() after Reconcile() = %v", err)
	}
	if changed, _ := tr.Reconcile(context.Background()); changed {
		t.Errorf("second Reconcile() reported a change")
	}
}

func TestTracker_LoadFloatDrift(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	store := &memStore{exists: true, data: []byte(`{"income": 100.0, "balance": 33.34000000000001, "expenses": [
		{"amount": 33.33, "category": "Food", "description": "", "date": "2025-08-01 10:00:00"},
		{"amount": 33.33, "category": "Food", "description": "", "date": "2025-08-01 11:00:00"}]}`)}

	newTestTracker(t, store, WithLogger(logger))
	if strings.Contains(logs.String(), "inconsistent") {
		t.Errorf("a float drift below the currency precision has been reported: %q", logs.String())
	}
}
