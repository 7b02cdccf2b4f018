package spend

// CategoryTotal is the sum of the expenses of one category.
type CategoryTotal struct {
	Category Category
	Amount   Money
}

// Breakdown lists category totals in category set order.
type Breakdown []CategoryTotal

// NonZero returns the totals that are strictly positive.
func (b Breakdown) NonZero() Breakdown {
	var nz Breakdown
	for _, ct := range b {
		if ct.Amount.IsPositive() {
			nz = append(nz, ct)
		}
	}
	return nz
}

// Amount returns the total of category c, zero if c is not in the breakdown.
func (b Breakdown) Amount(c Category) Money {
	for _, ct := range b {
		if ct.Category == c {
			return ct.Amount
		}
	}
	return Money{}
}

// Total returns the sum of all category totals.
func (b Breakdown) Total() Money {
	var total Money
	for _, ct := range b {
		total = total.Add(ct.Amount)
	}
	return total
}

// Summary is a read-only view of the ledger totals.
type Summary struct {
	Currency      string
	Income        Money
	TotalExpenses Money
	Balance       Money
	Categories    Breakdown // only categories with spending
}

// CategoryBreakdown returns the total of every configured category, zeros
// included. Expenses whose category is not configured are not reported.
func (l *Ledger) CategoryBreakdown() Breakdown {
	b := make(Breakdown, len(l.categories))
	index := make(map[Category]int, len(l.categories))
	for i, c := range l.categories {
		b[i] = CategoryTotal{Category: c, Amount: M(0, l.currency)}
		index[c] = i
	}
	for _, e := range l.expenses {
		if i, ok := index[e.Category]; ok {
			b[i].Amount = b[i].Amount.Add(e.Amount)
		}
	}
	return b
}

// Summarize computes the totals of the ledger.
func (l *Ledger) Summarize() *Summary {
	return &Summary{
		Currency:      l.currency,
		Income:        l.Income(),
		TotalExpenses: l.TotalExpenses(),
		Balance:       l.Balance(),
		Categories:    l.CategoryBreakdown().NonZero(),
	}
}
