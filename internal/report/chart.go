package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"despesas/internal/core"
	applog "despesas/internal/log"

	"github.com/wcharczuk/go-chart/v2"
)

// ChartGenerator renders a per-category bar chart as a PNG file.
type ChartGenerator struct {
	reader ExpenseReader
	dir    string
	logger *applog.Logger
}

func NewChartGenerator(reader ExpenseReader, dir string, logger *applog.Logger) *ChartGenerator {
	return &ChartGenerator{
		reader: reader,
		dir:    dir,
		logger: logger.WithComponent(applog.ComponentReport),
	}
}

// Render queries, summarizes, and writes the chart. It returns
// core.ErrNoData for an empty summary (no file is produced) and
// core.ErrArtifactWrite when the image could not be persisted.
func (g *ChartGenerator) Render(ctx context.Context, ownerID string, f core.Filter) (string, error) {
	rows, err := g.reader.ListExpenses(ctx, ownerID, f)
	if err != nil {
		return "", fmt.Errorf("query expenses for chart: %w", err)
	}

	summary := core.Summarize(rows)
	if len(summary) == 0 {
		return "", core.ErrNoData
	}

	bars := make([]chart.Value, 0, len(summary))
	for _, ct := range summary {
		bars = append(bars, chart.Value{
			Label: ct.Category,
			Value: ct.Amount.Float(),
		})
	}

	bc := chart.BarChart{
		Title:    titleFor("Spending by category", f),
		Width:    1000,
		Height:   600,
		BarWidth: 60,
		XAxis: chart.Style{
			TextRotationDegrees: 45.0,
		},
		YAxis: chart.YAxis{
			Name: "Value (R$)",
		},
		Bars: bars,
	}

	// Render fully in memory; the file only appears once the chart is
	// complete.
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		g.logger.ErrorContext(ctx, "Chart render failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldError, err)
		return "", fmt.Errorf("render chart: %w", core.ErrArtifactWrite)
	}

	path := filepath.Join(g.dir, artifactName("gastos", ownerID, "png"))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		g.logger.ErrorContext(ctx, "Chart write failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldArtifact, path,
			applog.FieldError, err)
		return "", fmt.Errorf("write chart: %w", core.ErrArtifactWrite)
	}

	g.logger.InfoContext(ctx, "Chart generated",
		applog.FieldOwnerID, ownerID,
		applog.FieldArtifact, path,
		applog.FieldRowCount, len(rows))

	return path, nil
}
