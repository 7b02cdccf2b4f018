package spend

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// maxMinorUnits is the largest amount, in minor units, go-money can format.
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// Money represents a monetary value.
//
// The value is exact, the currency is only used for display. An empty
// currency is weak: it takes the currency of the other operand.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of 'value' in 'currency'.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	}
	return decimal.Zero
}

// ParseAmount parses a user provided amount.
//
// Surrounding spaces are ignored, scientific notation is accepted. Anything
// that is not a finite number fails with ErrNotANumber.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Value: s, Err: ErrNotANumber}
	}
	return d, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, using the
// currency formatter (e.g. "$1,000.00").
func (m Money) String() string {
	if m.cur == "" {
		return m.value.StringFixed(2)
	}
	cur := m.currency()
	rounded := m.value.Round(int32(cur.Fraction))
	if dec := rounded.Shift(int32(cur.Fraction)); dec.Abs().LessThanOrEqual(maxMinorUnits) {
		return cur.Formatter().Format(dec.IntPart())
	}
	return formatLarge(rounded, cur.Formatter())
}

// formatLarge formats amounts beyond the int64 range of go-money with the same
// template.
func formatLarge(v decimal.Decimal, f *money.Formatter) string {
	abs := v.Abs()
	whole := abs.Truncate(0)
	amount := strings.ReplaceAll(humanize.BigComma(whole.BigInt()), ",", f.Thousand)
	if f.Fraction > 0 {
		frac := abs.Sub(whole).StringFixed(int32(f.Fraction)) // "0.xx"
		amount += f.Decimal + frac[2:]
	}
	s := strings.Replace(f.Template, "1", amount, 1)
	s = strings.Replace(s, "$", f.Grapheme, 1)
	if v.IsNegative() {
		s = "-" + s
	}
	return s
}

// Fraction returns the number of decimal places of the currency, 2 when it
// has none.
func (m Money) Fraction() int32 {
	if m.cur == "" {
		return 2
	}
	return int32(m.currency().Fraction)
}

// In returns a copy of m in currency 'cur'.
func (m Money) In(cur string) Money { return Money{value: m.value, cur: cur} }

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Percent returns m as a percentage of 'total', or 0 if total is zero.
func (m Money) Percent(total Money) float64 {
	if total.IsZero() {
		return 0
	}
	return m.value.Div(total.value).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// AsFloat returns an approximation of the value, for charts only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// MarshalJSON writes the amount as a bare JSON number, the currency is not persisted.
func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.value.String()), nil }

// UnmarshalJSON reads a JSON number (or a quoted number) into m.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	m.value = d
	return nil
}
