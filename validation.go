package spend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotANumber is returned when an amount cannot be read as a number.
	ErrNotANumber = errors.New("not a number")
	// ErrNegativeAmount is returned when an income is negative.
	ErrNegativeAmount = errors.New("income cannot be negative")
	// ErrNonPositiveAmount is returned when an expense is zero or negative.
	ErrNonPositiveAmount = errors.New("expense must be positive")
	// ErrUnknownCategory is returned when a category is not part of the configured set.
	ErrUnknownCategory = errors.New("invalid category")
	// ErrCorrupted is returned when a stored ledger cannot be decoded.
	ErrCorrupted = errors.New("corrupted ledger")
)

// ValidationError reports an input rejected before any change to the ledger.
type ValidationError struct {
	Field string
	Value string
	Err   error  // one of the Err* sentinels
	Hint  string // optional, e.g. the list of valid values
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a validation error, i.e. the operation
// was aborted and nothing changed.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// BalanceMismatchError reports a ledger whose stored balance does not match
// its income and expenses.
type BalanceMismatchError struct {
	Stored   Money
	Expected Money
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("balance is %v, expected %v (income minus expenses)", e.Stored, e.Expected)
}

func validateIncome(amount Money) error {
	if amount.IsNegative() {
		return &ValidationError{Field: "income", Value: amount.Decimal().String(), Err: ErrNegativeAmount}
	}
	return nil
}

func validateExpense(e Expense, categories Categories) error {
	if !e.Amount.IsPositive() {
		return &ValidationError{Field: "expense", Value: e.Amount.Decimal().String(), Err: ErrNonPositiveAmount}
	}
	if !categories.Contains(e.Category) {
		return &ValidationError{
			Field: "category",
			Value: string(e.Category),
			Err:   ErrUnknownCategory,
			Hint:  "Choose from: " + categories.String(),
		}
	}
	return nil
}
