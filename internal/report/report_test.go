package report

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"despesas/internal/core"
	applog "despesas/internal/log"

	"github.com/xuri/excelize/v2"
)

type stubReader struct {
	rows []core.Expense
	err  error
}

func (s *stubReader) ListExpenses(ctx context.Context, ownerID string, f core.Filter) ([]core.Expense, error) {
	return s.rows, s.err
}

func testLogger() *applog.Logger {
	return applog.New(applog.Config{Level: slog.LevelError})
}

func sampleRows() []core.Expense {
	base := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	return []core.Expense{
		{ID: 3, OwnerID: "U1", Amount: core.Money{Cents: 2000}, Category: "Transport", CreatedAt: base},
		{ID: 2, OwnerID: "U1", Amount: core.Money{Cents: 500}, Category: "Food", CreatedAt: base.Add(-time.Hour)},
		{ID: 1, OwnerID: "U1", Amount: core.Money{Cents: 1000}, Category: "Food", CreatedAt: base.Add(-2 * time.Hour)},
	}
}

func TestChartRender(t *testing.T) {
	dir := t.TempDir()
	gen := NewChartGenerator(&stubReader{rows: sampleRows()}, dir, testLogger())

	path, err := gen.Render(context.Background(), "whatsapp:+551199", core.Filter{Period: core.PeriodThisMonth})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.HasPrefix(path, dir) {
		t.Errorf("artifact %q not inside output dir %q", path, dir)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("artifact %q is not a png", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat artifact: %v", err)
	}
	if info.Size() == 0 {
		t.Error("artifact file is empty")
	}
}

func TestChartRenderNoData(t *testing.T) {
	dir := t.TempDir()
	gen := NewChartGenerator(&stubReader{}, dir, testLogger())

	_, err := gen.Render(context.Background(), "U1", core.Filter{})
	if !errors.Is(err, core.ErrNoData) {
		t.Fatalf("Render on empty set = %v, want ErrNoData", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no-data render left %d files behind", len(entries))
	}
}

func TestChartRenderUniqueNames(t *testing.T) {
	dir := t.TempDir()
	gen := NewChartGenerator(&stubReader{rows: sampleRows()}, dir, testLogger())

	a, err := gen.Render(context.Background(), "U1", core.Filter{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, err := gen.Render(context.Background(), "U1", core.Filter{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if a == b {
		t.Errorf("two renders produced the same path %q", a)
	}
}

func TestChartRenderReaderError(t *testing.T) {
	gen := NewChartGenerator(&stubReader{err: core.ErrStorageUnavailable}, t.TempDir(), testLogger())

	_, err := gen.Render(context.Background(), "U1", core.Filter{})
	if !errors.Is(err, core.ErrStorageUnavailable) {
		t.Fatalf("Render = %v, want ErrStorageUnavailable in chain", err)
	}
}

func TestSpreadsheetRender(t *testing.T) {
	dir := t.TempDir()
	gen := NewSpreadsheetGenerator(&stubReader{rows: sampleRows()}, dir, testLogger())

	path, err := gen.Render(context.Background(), "U1", core.Filter{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open generated spreadsheet: %v", err)
	}
	defer wb.Close()

	sheetRows, err := wb.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet rows: %v", err)
	}

	// Header, 3 data rows, blank separator, Grand Total.
	if len(sheetRows) != 6 {
		t.Fatalf("sheet has %d rows, want 6", len(sheetRows))
	}

	wantHeader := []string{"ID", "Value", "Category", "Timestamp"}
	for i, want := range wantHeader {
		if sheetRows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, sheetRows[0][i], want)
		}
	}

	// Data rows keep the query's (timestamp-descending) order.
	if sheetRows[1][0] != "3" || sheetRows[2][0] != "2" || sheetRows[3][0] != "1" {
		t.Errorf("data row order = [%s %s %s], want [3 2 1]",
			sheetRows[1][0], sheetRows[2][0], sheetRows[3][0])
	}
	if sheetRows[1][3] != "2025-06-15 10:00:00" {
		t.Errorf("timestamp cell = %q, want %q", sheetRows[1][3], "2025-06-15 10:00:00")
	}

	if len(sheetRows[4]) != 0 {
		t.Errorf("expected a blank separator row, got %v", sheetRows[4])
	}

	totalRow := sheetRows[5]
	if totalRow[0] != "Grand Total" {
		t.Errorf("total row label = %q, want Grand Total", totalRow[0])
	}
	if totalRow[1] != "35" {
		t.Errorf("grand total cell = %q, want 35", totalRow[1])
	}
}

func TestSpreadsheetRenderNoData(t *testing.T) {
	dir := t.TempDir()
	gen := NewSpreadsheetGenerator(&stubReader{}, dir, testLogger())

	_, err := gen.Render(context.Background(), "U1", core.Filter{})
	if !errors.Is(err, core.ErrNoData) {
		t.Fatalf("Render on empty set = %v, want ErrNoData", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no-data render left %d files behind", len(entries))
	}
}

func TestArtifactNameSanitizesOwner(t *testing.T) {
	name := artifactName("gastos", "whatsapp:+5511987654321", "png")
	if strings.ContainsAny(name, ":+") {
		t.Errorf("artifact name %q contains unsanitized characters", name)
	}
	if !strings.HasPrefix(name, "gastos_whatsapp5511987654321_") {
		t.Errorf("artifact name %q has unexpected shape", name)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("artifact name %q missing extension", name)
	}
}
