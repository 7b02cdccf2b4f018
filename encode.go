package spend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// indent is the indentation of the ledger document.
const indent = "    "

// document is the decoding shape of the ledger document.
type document struct {
	Income   Money     `json:"income"`
	Balance  Money     `json:"balance"`
	Expenses []Expense `json:"expenses"`
}

// DecodeLedger reads a ledger document from r.
//
// Any content that cannot be decoded as a ledger document, including an empty
// one, returns an error wrapping ErrCorrupted. The returned ledger has no
// currency and uses DefaultCategories.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	return RestoreLedger(doc.Income.Decimal(), doc.Balance.Decimal(), doc.Expenses), nil
}

// RestoreLedger rebuilds a ledger from stored values. The balance is taken as
// is, use Check to verify it.
func RestoreLedger(income, balance decimal.Decimal, expenses []Expense) *Ledger {
	ledger := NewLedger()
	ledger.income = M(income, "")
	ledger.balance = M(balance, "")
	if expenses != nil {
		ledger.expenses = expenses
	}
	return ledger
}

// MarshalJSON writes the ledger document in compact form with its keys in
// document order.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("income", l.income)
	w.Append("balance", l.balance)
	w.Append("expenses", l.expenses)
	return w.MarshalJSON()
}

// EncodeLedger writes the full ledger document to w, indented with four
// spaces.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	compact, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", indent); err != nil {
		return fmt.Errorf("failed to indent ledger: %w", err)
	}
	out.WriteByte('\n')
	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}
