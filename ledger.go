package spend

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Ledger is the persisted financial state: income, balance and the list of
// expenses.
//
// In a Ledger expenses are always kept in insertion order, and the balance is
// updated incrementally so that it stays equal to the income minus the sum of
// all expenses.
type Ledger struct {
	income   Money
	balance  Money
	expenses []Expense

	// configuration, not persisted.
	currency   string
	categories Categories
}

// NewLedger creates an empty ledger using DefaultCategories and no currency.
func NewLedger() *Ledger {
	return &Ledger{
		expenses:   make([]Expense, 0),
		categories: DefaultCategories,
	}
}

// Clone returns a deep copy of l.
func (l *Ledger) Clone() *Ledger {
	c := *l
	c.expenses = slices.Clone(l.expenses)
	if c.expenses == nil {
		c.expenses = make([]Expense, 0)
	}
	return &c
}

// Income returns the cumulated income.
func (l *Ledger) Income() Money { return l.income.In(l.currency) }

// Balance returns the stored balance.
func (l *Ledger) Balance() Money { return l.balance.In(l.currency) }

// Currency returns the display currency of the ledger.
func (l *Ledger) Currency() string { return l.currency }

// Categories returns the configured category set.
func (l *Ledger) Categories() Categories { return l.categories }

// SetCurrency sets the display currency of every amount in the ledger.
func (l *Ledger) SetCurrency(cur string) {
	l.currency = cur
	l.income = l.income.In(cur)
	l.balance = l.balance.In(cur)
	for i := range l.expenses {
		l.expenses[i].Amount = l.expenses[i].Amount.In(cur)
	}
}

// SetCategories sets the category set used to validate and report expenses.
// Expenses already recorded are kept as they are.
func (l *Ledger) SetCategories(cs Categories) {
	if len(cs) == 0 {
		cs = DefaultCategories
	}
	l.categories = cs
}

// Len returns the number of expenses.
func (l *Ledger) Len() int { return len(l.expenses) }

// Expenses returns a copy of all expenses in insertion order.
func (l *Ledger) Expenses() []Expense { return slices.Clone(l.expenses) }

// TotalExpenses returns the sum of all expense amounts.
func (l *Ledger) TotalExpenses() Money {
	total := M(0, l.currency)
	for _, e := range l.expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// AddIncome adds 'amount' to the income and the balance.
//
// A negative amount is rejected with a *ValidationError and the ledger is left
// unchanged.
func (l *Ledger) AddIncome(amount decimal.Decimal) error {
	m := M(amount, l.currency)
	if err := validateIncome(m); err != nil {
		return err
	}
	l.income = l.income.Add(m)
	l.balance = l.balance.Add(m)
	return nil
}

// AddExpense appends 'e' and subtracts its amount from the balance.
//
// A non-positive amount or a category outside of the configured set is
// rejected with a *ValidationError and the ledger is left unchanged.
func (l *Ledger) AddExpense(e Expense) error {
	e.Amount = e.Amount.In(l.currency)
	if err := validateExpense(e, l.categories); err != nil {
		return err
	}
	l.expenses = append(l.expenses, e)
	l.balance = l.balance.Sub(e.Amount)
	return nil
}

// Check verifies that the stored balance equals income minus expenses, at
// the precision of the currency. It returns a *BalanceMismatchError
// otherwise.
//
// Documents written with floating point amounts carry drifts such as
// 33.34000000000001, they are consistent.
func (l *Ledger) Check() error {
	expected := l.Income().Sub(l.TotalExpenses())
	places := expected.Fraction()
	if !expected.Decimal().Round(places).Equal(l.balance.Decimal().Round(places)) {
		return &BalanceMismatchError{Stored: l.Balance(), Expected: expected}
	}
	return nil
}

// Reconcile recomputes the balance from the income and the expenses.
// It reports whether the balance has changed.
func (l *Ledger) Reconcile() bool {
	if l.Check() == nil {
		return false
	}
	l.balance = l.Income().Sub(l.TotalExpenses())
	return true
}
