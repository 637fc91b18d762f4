package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"despesas/internal/core"
	applog "despesas/internal/log"
)

// listPreviewRows caps how many individual records a list reply shows;
// the total always covers the full filtered set.
const listPreviewRows = 5

const helpText = "I'm your expense assistant. I can record, delete, edit and list your " +
	"expenses, and generate charts and spreadsheets. Try: 'I spent 50 on groceries', " +
	"'Delete 123', 'Edit 45 value 100', 'How much did I spend this month?', " +
	"'Chart of this month', or 'Export my expenses to a spreadsheet'."

// ExpenseStore is the persistence contract the service dispatches to.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, ownerID string, amount core.Money, category string) (core.Expense, error)
	GetExpense(ctx context.Context, id int64, ownerID string) (core.Expense, error)
	UpdateExpense(ctx context.Context, id int64, ownerID string, amount *core.Money, category *string) (bool, error)
	DeleteExpense(ctx context.Context, id int64, ownerID string) (bool, error)
	ListExpenses(ctx context.Context, ownerID string, f core.Filter) ([]core.Expense, error)
}

// ReportGenerator renders an artifact for one owner's filtered set.
type ReportGenerator interface {
	Render(ctx context.Context, ownerID string, f core.Filter) (string, error)
}

// Reply is the outcome of one operation: text for the user and, for
// report operations, the path of the generated artifact.
type Reply struct {
	Text         string
	ArtifactPath string
}

// LedgerService executes typed commands against the store and report
// generators. Storage and filesystem faults stop here: they are logged
// and turned into guidance text, never propagated to the transport.
type LedgerService struct {
	store  ExpenseStore
	charts ReportGenerator
	sheets ReportGenerator
	logger *applog.Logger
}

func NewLedgerService(store ExpenseStore, charts, sheets ReportGenerator, logger *applog.Logger) *LedgerService {
	return &LedgerService{
		store:  store,
		charts: charts,
		sheets: sheets,
		logger: logger.WithComponent(applog.ComponentLedger),
	}
}

// Handle runs one command to completion and always produces a reply.
func (s *LedgerService) Handle(ctx context.Context, ownerID string, cmd Command) Reply {
	switch cmd.Op {
	case OpGreet:
		return Reply{Text: "Hello! " + helpText}
	case OpCreateExpense:
		return s.create(ctx, ownerID, cmd.Create)
	case OpDeleteExpense:
		return s.delete(ctx, ownerID, cmd.Delete)
	case OpEditExpense:
		return s.edit(ctx, ownerID, cmd.Edit)
	case OpListExpenses:
		return s.list(ctx, ownerID, cmd.Query)
	case OpRenderChart:
		return s.report(ctx, ownerID, cmd.Query, s.charts, "chart")
	case OpRenderSpreadsheet:
		return s.report(ctx, ownerID, cmd.Query, s.sheets, "spreadsheet")
	default:
		return Reply{Text: "Sorry, I didn't understand that. " + helpText}
	}
}

func (s *LedgerService) create(ctx context.Context, ownerID string, p *CreateParams) Reply {
	if p == nil || p.Value == nil {
		return Reply{Text: "I couldn't work out the value of that expense. " +
			"Try again like 'Pharmacy 75' or '75 pharmacy'."}
	}

	category := p.Category
	if category == "" {
		category = "Other"
	}

	amount := core.MoneyFromFloat(*p.Value)
	expense, err := s.store.CreateExpense(ctx, ownerID, amount, category)
	if err != nil {
		s.logger.ErrorContext(ctx, "Create expense failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldError, err)
		return Reply{Text: "Something went wrong saving that expense. Please try again."}
	}

	return Reply{Text: fmt.Sprintf("Done! Recorded R$%s in '%s' (ID: %d).",
		amount.Format(), category, expense.ID)}
}

func (s *LedgerService) delete(ctx context.Context, ownerID string, p *DeleteParams) Reply {
	if p == nil {
		return Reply{Text: "To delete an expense, tell me its ID. For example: 'Delete expense 123'."}
	}

	// Fetch first so the confirmation can echo what was removed. An
	// owner mismatch reads the same as an absent id on purpose.
	expense, err := s.store.GetExpense(ctx, p.ID, ownerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return Reply{Text: notFoundText(p.ID)}
		}
		s.logger.ErrorContext(ctx, "Delete lookup failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldExpenseID, p.ID,
			applog.FieldError, err)
		return Reply{Text: storageTroubleText()}
	}

	ok, err := s.store.DeleteExpense(ctx, p.ID, ownerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Delete expense failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldExpenseID, p.ID,
			applog.FieldError, err)
		return Reply{Text: storageTroubleText()}
	}
	if !ok {
		return Reply{Text: notFoundText(p.ID)}
	}

	return Reply{Text: fmt.Sprintf("Deleted R$%s in '%s' (ID %d).",
		expense.Amount.Format(), expense.Category, p.ID)}
}

func (s *LedgerService) edit(ctx context.Context, ownerID string, p *EditParams) Reply {
	if p == nil || (p.Value == nil && p.Category == nil) {
		return Reply{Text: "To edit an expense, tell me its ID and what to change. " +
			"For example: 'Edit 123 value 100' or 'Edit 45 category Food'."}
	}

	var amount *core.Money
	if p.Value != nil {
		m := core.MoneyFromFloat(*p.Value)
		amount = &m
	}

	ok, err := s.store.UpdateExpense(ctx, p.ID, ownerID, amount, p.Category)
	if err != nil {
		s.logger.ErrorContext(ctx, "Edit expense failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldExpenseID, p.ID,
			applog.FieldError, err)
		return Reply{Text: storageTroubleText()}
	}
	if !ok {
		return Reply{Text: notFoundText(p.ID)}
	}

	return Reply{Text: fmt.Sprintf("Expense %d updated.", p.ID)}
}

func (s *LedgerService) list(ctx context.Context, ownerID string, q *QueryParams) Reply {
	filter := q.Filter()

	rows, err := s.store.ListExpenses(ctx, ownerID, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "List expenses failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldPeriod, string(filter.Period),
			applog.FieldError, err)
		return Reply{Text: storageTroubleText()}
	}
	if len(rows) == 0 {
		return Reply{Text: emptySetText("expenses", filter)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your expenses %s:\n", describeOrTotal(filter))
	fmt.Fprintf(&b, "Total: R$%s\n", core.Total(rows).Format())

	for i, expense := range rows {
		if i == listPreviewRows {
			b.WriteString("...\n")
			break
		}
		fmt.Fprintf(&b, "ID %d: R$%s in %s (%s)\n",
			expense.ID,
			expense.Amount.Format(),
			expense.Category,
			expense.CreatedAt.Format("02/01 15:04"))
	}

	if extra := len(rows) - listPreviewRows; extra > 0 {
		fmt.Fprintf(&b, "\nThere are %d more in this period/category. Export a spreadsheet to see everything.", extra)
	}

	return Reply{Text: strings.TrimRight(b.String(), "\n")}
}

func (s *LedgerService) report(ctx context.Context, ownerID string, q *QueryParams, gen ReportGenerator, kind string) Reply {
	filter := q.Filter()

	path, err := gen.Render(ctx, ownerID, filter)
	switch {
	case errors.Is(err, core.ErrNoData):
		return Reply{Text: emptySetText("data for a "+kind, filter)}
	case err != nil:
		s.logger.ErrorContext(ctx, "Report generation failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldOperation, kind,
			applog.FieldError, err)
		return Reply{Text: fmt.Sprintf("I couldn't generate the %s right now. Please try again.", kind)}
	}

	return Reply{
		Text: fmt.Sprintf("Your %s is ready: %s\n\nI can't send the file over WhatsApp yet, but it's waiting for you there.",
			kind, path),
		ArtifactPath: path,
	}
}

func notFoundText(id int64) string {
	return fmt.Sprintf("Expense with ID %d was not found or does not belong to you.", id)
}

func storageTroubleText() string {
	return "I'm having trouble reaching your ledger right now. Please try again in a moment."
}

func describeOrTotal(f core.Filter) string {
	if desc := f.Description(); desc != "" {
		return desc
	}
	return "(total)"
}

func emptySetText(what string, f core.Filter) string {
	return fmt.Sprintf("No %s found %s.", what, describeOrTotal(f))
}
