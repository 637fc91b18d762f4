package core

import "sort"

// CategoryTotal is an amount aggregated under one category label.
type CategoryTotal struct {
	Category string
	Amount   Money
}

// Summarize groups rows by category and sums their amounts, ordered by
// sum descending. Ties keep the order categories were first seen in the
// input, which callers supply timestamp-descending.
func Summarize(rows []Expense) []CategoryTotal {
	sums := make(map[string]int64, len(rows))
	var order []string
	for _, row := range rows {
		if _, seen := sums[row.Category]; !seen {
			order = append(order, row.Category)
		}
		sums[row.Category] += row.Amount.Cents
	}

	totals := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		totals = append(totals, CategoryTotal{
			Category: category,
			Amount:   Money{Cents: sums[category]},
		})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount.Cents > totals[j].Amount.Cents
	})
	return totals
}

// Total sums the amounts of every row, regardless of any display
// truncation a caller applies afterwards.
func Total(rows []Expense) Money {
	var cents int64
	for _, row := range rows {
		cents += row.Amount.Cents
	}
	return Money{Cents: cents}
}
