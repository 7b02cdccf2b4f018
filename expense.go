package spend

import (
	"encoding/json"
	"fmt"
)

// Expense is one categorized, timestamped expenditure.
type Expense struct {
	Amount      Money
	Category    Category
	Description string
	Date        Timestamp
}

// NewExpense returns an expense of 'amount' in 'category' recorded at 'when'.
func NewExpense(amount Money, category Category, description string, when Timestamp) Expense {
	return Expense{Amount: amount, Category: category, Description: description, Date: when}
}

// MarshalJSON writes the expense with the keys in document order.
func (e Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", e.Amount)
	w.Append("category", e.Category)
	w.Append("description", e.Description)
	w.Append("date", e.Date)
	return w.MarshalJSON()
}

func (e *Expense) UnmarshalJSON(data []byte) error {
	var temp struct {
		Amount      Money     `json:"amount"`
		Category    Category  `json:"category"`
		Description string    `json:"description"`
		Date        Timestamp `json:"date"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("could not decode expense %s: %w", data, err)
	}
	*e = Expense(temp)
	return nil
}
