package core

import (
	"testing"
	"time"
)

func expenseAt(category string, cents int64, offset time.Duration) Expense {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return Expense{
		OwnerID:   "U1",
		Amount:    Money{Cents: cents},
		Category:  category,
		CreatedAt: base.Add(offset),
	}
}

func TestSummarize(t *testing.T) {
	// Rows arrive timestamp-descending, as ListExpenses returns them.
	rows := []Expense{
		expenseAt("Transport", 2000, -1*time.Hour),
		expenseAt("Food", 500, -2*time.Hour),
		expenseAt("Food", 1000, -3*time.Hour),
	}

	got := Summarize(rows)
	want := []CategoryTotal{
		{Category: "Transport", Amount: Money{Cents: 2000}},
		{Category: "Food", Amount: Money{Cents: 1500}},
	}

	if len(got) != len(want) {
		t.Fatalf("Summarize returned %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Summarize[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSummarizeTieOrder(t *testing.T) {
	rows := []Expense{
		expenseAt("Bar", 1000, -1*time.Hour),
		expenseAt("Cinema", 1000, -2*time.Hour),
	}

	got := Summarize(rows)
	if len(got) != 2 {
		t.Fatalf("Summarize returned %d categories, want 2", len(got))
	}
	// Equal sums keep first-encountered order.
	if got[0].Category != "Bar" || got[1].Category != "Cinema" {
		t.Errorf("tie order = [%s %s], want [Bar Cinema]", got[0].Category, got[1].Category)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("Summarize(nil) = %v, want empty", got)
	}
}

func TestTotal(t *testing.T) {
	rows := []Expense{
		expenseAt("Food", 1000, 0),
		expenseAt("Food", 500, -time.Hour),
		expenseAt("Transport", 2000, -2*time.Hour),
	}
	if got := Total(rows); got.Cents != 3500 {
		t.Errorf("Total = %d cents, want 3500", got.Cents)
	}
	if got := Total(nil); got.Cents != 0 {
		t.Errorf("Total(nil) = %d cents, want 0", got.Cents)
	}
}
