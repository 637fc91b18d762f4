package core

import (
	"math"
	"strconv"
	"time"
)

type (
	// Money is an amount in cents. Negative and zero amounts are valid:
	// the ledger accepts refunds and corrections as plain entries.
	Money struct {
		Cents int64
	}

	// Expense is the sole persistent entity. ID and CreatedAt are
	// assigned by the store and never change afterwards.
	Expense struct {
		ID        int64
		OwnerID   string
		Amount    Money
		Category  string
		CreatedAt time.Time
	}

	// Period selects a relative time window over Expense.CreatedAt.
	Period string

	// Filter narrows a query to one owner's records. Limit only applies
	// when Period is PeriodLastN; a non-positive Limit means no cap.
	Filter struct {
		Period   Period
		Category string
		Limit    int
	}
)

const (
	PeriodToday     Period = "today"
	PeriodThisMonth Period = "this_month"
	PeriodLast7Days Period = "last_7_days"
	PeriodLastN     Period = "last_n"
	PeriodTotal     Period = "total"
)

// ParsePeriod maps a period token to its Period. Unknown or empty
// tokens behave as PeriodTotal.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodToday, PeriodThisMonth, PeriodLast7Days, PeriodLastN, PeriodTotal:
		return Period(s)
	default:
		return PeriodTotal
	}
}

// MoneyFromFloat converts a decimal amount to cents with half-up
// rounding on the third decimal place.
func MoneyFromFloat(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

// Float returns the decimal value for rendering. Use cents for
// arithmetic to avoid floating-point drift.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Format renders the amount with exactly two decimal places.
func (m Money) Format() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

// Description of the filter for titles and reply text, e.g.
// "(this_month) in Food". Empty for an unconstrained filter.
func (f Filter) Description() string {
	var s string
	if f.Period != "" && f.Period != PeriodTotal {
		s = "(" + string(f.Period) + ")"
	}
	if f.Category != "" {
		if s != "" {
			s += " "
		}
		s += "in " + f.Category
	}
	return s
}
