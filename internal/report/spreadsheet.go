package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"despesas/internal/core"
	applog "despesas/internal/log"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName       = "Expenses"
	sheetTimeFormat = "2006-01-02 15:04:05"
	columnPadding   = 2
)

// SpreadsheetGenerator renders the filtered record set as an xlsx file:
// a header row, one row per record in query order, a blank separator,
// and a Grand Total row over the same filtered set.
type SpreadsheetGenerator struct {
	reader ExpenseReader
	dir    string
	logger *applog.Logger
}

func NewSpreadsheetGenerator(reader ExpenseReader, dir string, logger *applog.Logger) *SpreadsheetGenerator {
	return &SpreadsheetGenerator{
		reader: reader,
		dir:    dir,
		logger: logger.WithComponent(applog.ComponentReport),
	}
}

func (g *SpreadsheetGenerator) Render(ctx context.Context, ownerID string, f core.Filter) (string, error) {
	rows, err := g.reader.ListExpenses(ctx, ownerID, f)
	if err != nil {
		return "", fmt.Errorf("query expenses for spreadsheet: %w", err)
	}
	if len(rows) == 0 {
		return "", core.ErrNoData
	}

	wb := excelize.NewFile()
	defer wb.Close()
	if err := wb.SetSheetName(wb.GetSheetName(0), sheetName); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"ID", "Value", "Category", "Timestamp"}
	widths := make([]int, len(headers))
	for col, h := range headers {
		widths[col] = len(h)
		if err := setCell(wb, col+1, 1, h); err != nil {
			return "", err
		}
	}

	track := func(col int, rendered string) {
		if len(rendered) > widths[col] {
			widths[col] = len(rendered)
		}
	}

	for i, expense := range rows {
		rowNum := i + 2
		ts := expense.CreatedAt.Format(sheetTimeFormat)

		cells := []any{expense.ID, expense.Amount.Float(), expense.Category, ts}
		rendered := []string{
			strconv.FormatInt(expense.ID, 10),
			expense.Amount.Format(),
			expense.Category,
			ts,
		}
		for col := range cells {
			if err := setCell(wb, col+1, rowNum, cells[col]); err != nil {
				return "", err
			}
			track(col, rendered[col])
		}
	}

	// Blank separator row, then the total over the full filtered set.
	total := core.Total(rows)
	totalRow := len(rows) + 3
	if err := setCell(wb, 1, totalRow, "Grand Total"); err != nil {
		return "", err
	}
	if err := setCell(wb, 2, totalRow, total.Float()); err != nil {
		return "", err
	}
	track(0, "Grand Total")
	track(1, total.Format())

	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return "", fmt.Errorf("column name: %w", err)
		}
		if err := wb.SetColWidth(sheetName, name, name, float64(w+columnPadding)); err != nil {
			return "", fmt.Errorf("set column width: %w", err)
		}
	}

	path := filepath.Join(g.dir, artifactName("despesas", ownerID, "xlsx"))
	if err := wb.SaveAs(path); err != nil {
		g.logger.ErrorContext(ctx, "Spreadsheet write failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldArtifact, path,
			applog.FieldError, err)
		return "", fmt.Errorf("write spreadsheet: %w", core.ErrArtifactWrite)
	}

	g.logger.InfoContext(ctx, "Spreadsheet generated",
		applog.FieldOwnerID, ownerID,
		applog.FieldArtifact, path,
		applog.FieldRowCount, len(rows))

	return path, nil
}

func setCell(wb *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell coordinates: %w", err)
	}
	if err := wb.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}
