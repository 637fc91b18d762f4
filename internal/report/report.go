// Package report derives artifacts from a filtered expense set. Both
// generators are stateless: every call re-reads the store and renders
// fully in memory before a single write persists the file, so a failed
// write never leaves a partial artifact behind.
package report

import (
	"context"
	"fmt"
	"strings"

	"despesas/internal/core"

	"github.com/google/uuid"
)

// ExpenseReader is the slice of the store the generators need.
type ExpenseReader interface {
	ListExpenses(ctx context.Context, ownerID string, f core.Filter) ([]core.Expense, error)
}

// artifactName builds a collision-free filename. The owner id may be a
// transport address ("whatsapp:+5511..."), so anything outside
// [a-zA-Z0-9] is dropped before it reaches the filesystem.
func artifactName(prefix, ownerID, ext string) string {
	var b strings.Builder
	for _, r := range ownerID {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s_%s_%s.%s", prefix, b.String(), uuid.NewString(), ext)
}

// titleFor describes the active filter for chart titles and sheet names.
func titleFor(base string, f core.Filter) string {
	if desc := f.Description(); desc != "" {
		return base + " " + desc
	}
	return base
}
