package services

import "despesas/internal/core"

// Operation enumerates everything a caller can ask the ledger to do.
type Operation string

const (
	OpGreet             Operation = "greet"
	OpCreateExpense     Operation = "create_expense"
	OpDeleteExpense     Operation = "delete_expense"
	OpEditExpense       Operation = "edit_expense"
	OpListExpenses      Operation = "list_expenses"
	OpRenderChart       Operation = "render_chart"
	OpRenderSpreadsheet Operation = "render_spreadsheet"
	OpUnrecognized      Operation = "unrecognized"
)

// Command is the typed form of an inbound request. Exactly the
// parameter block matching Op is set; a nil block on an operation that
// needs one means the caller could not supply the required fields, and
// the service answers with guidance instead of failing.
type Command struct {
	Op     Operation
	Create *CreateParams
	Delete *DeleteParams
	Edit   *EditParams
	Query  *QueryParams
}

// CreateParams carries a new expense. Value stays a pointer so a
// missing amount is distinguishable from an explicit zero.
type CreateParams struct {
	Value    *float64
	Category string
}

type DeleteParams struct {
	ID int64
}

// EditParams applies a partial update; nil fields are left untouched.
type EditParams struct {
	ID       int64
	Value    *float64
	Category *string
}

// QueryParams drives list and report operations.
type QueryParams struct {
	Period   core.Period
	Category string
	Limit    int
}

// Filter converts query parameters into a store filter. A nil receiver
// (no parameters extracted) means the unconstrained total view.
func (q *QueryParams) Filter() core.Filter {
	if q == nil {
		return core.Filter{Period: core.PeriodTotal}
	}
	return core.Filter{
		Period:   core.ParsePeriod(string(q.Period)),
		Category: q.Category,
		Limit:    q.Limit,
	}
}
