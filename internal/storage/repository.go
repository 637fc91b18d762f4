package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"despesas/internal/core"

	_ "modernc.org/sqlite"
)

// timeLayout is RFC 3339 with fixed-width nanoseconds so that stored
// timestamps compare lexicographically, which the period filters and
// ORDER BY rely on.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository is the durable expense store. Every operation opens
// its own implicit transaction and is owner-scoped: a row that belongs
// to a different owner looks exactly like a row that does not exist.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:  db,
		now: time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// storageErr classifies a driver fault so callers can branch on
// core.ErrStorageUnavailable while keeping the cause in the chain.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(core.ErrStorageUnavailable, err))
}

// CreateExpense inserts a record with a server-assigned id and the
// current timestamp, and returns it fully populated.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, ownerID string, amount core.Money, category string) (core.Expense, error) {
	createdAt := r.now()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (owner_id, amount_cents, category, created_at) VALUES (?, ?, ?, ?)`,
		ownerID, amount.Cents, category, createdAt.Format(timeLayout))
	if err != nil {
		return core.Expense{}, storageErr("insert expense", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, storageErr("read inserted id", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"owner_id", ownerID,
		"amount_cents", amount.Cents,
		"category", category)

	return core.Expense{
		ID:        id,
		OwnerID:   ownerID,
		Amount:    amount,
		Category:  category,
		CreatedAt: createdAt,
	}, nil
}

// GetExpense returns the record only if both id and owner match;
// otherwise core.ErrNotFound.
func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64, ownerID string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, amount_cents, category, created_at FROM expenses WHERE id = ? AND owner_id = ?`,
		id, ownerID)

	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, storageErr("get expense", err)
	}
	return expense, nil
}

// UpdateExpense applies only the supplied fields. It reports false,
// without error, when no fields were supplied or no row matched.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, id int64, ownerID string, amount *core.Money, category *string) (bool, error) {
	var (
		sets []string
		args []any
	)
	if amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, amount.Cents)
	}
	if category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *category)
	}
	if len(sets) == 0 {
		return false, nil
	}

	args = append(args, id, ownerID)
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET `+strings.Join(sets, ", ")+` WHERE id = ? AND owner_id = ?`,
		args...)
	if err != nil {
		return false, storageErr("update expense", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("read affected rows", err)
	}

	slog.InfoContext(ctx, "Expense updated",
		"id", id,
		"owner_id", ownerID,
		"rows_affected", affected)

	return affected > 0, nil
}

// DeleteExpense reports true iff a row matching id+owner was removed.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64, ownerID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND owner_id = ?`,
		id, ownerID)
	if err != nil {
		return false, storageErr("delete expense", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("read affected rows", err)
	}

	slog.InfoContext(ctx, "Expense deleted",
		"id", id,
		"owner_id", ownerID,
		"rows_affected", affected)

	return affected > 0, nil
}

// ListExpenses returns one owner's records under the filter, ordered by
// created_at descending. An empty result is not an error.
//
// The category predicate lowercases the stored side only; the filter
// side goes through core.Normalize. See the note on core.Normalize.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, ownerID string, f core.Filter) ([]core.Expense, error) {
	query := `SELECT id, owner_id, amount_cents, category, created_at FROM expenses WHERE owner_id = ?`
	args := []any{ownerID}

	switch f.Period {
	case core.PeriodToday:
		query += ` AND substr(created_at, 1, 10) = ?`
		args = append(args, r.now().Format("2006-01-02"))
	case core.PeriodThisMonth:
		query += ` AND substr(created_at, 1, 7) = ?`
		args = append(args, r.now().Format("2006-01"))
	case core.PeriodLast7Days:
		query += ` AND created_at >= ?`
		args = append(args, r.now().Add(-7*24*time.Hour).Format(timeLayout))
	}

	if f.Category != "" {
		query += ` AND lower(category) LIKE ?`
		args = append(args, "%"+core.Normalize(f.Category)+"%")
	}

	query += ` ORDER BY created_at DESC, id DESC`

	if f.Period == core.PeriodLastN && f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list expenses", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, storageErr("scan expense", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate expenses", err)
	}
	return expenses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		expense   core.Expense
		createdAt string
	)
	if err := row.Scan(&expense.ID, &expense.OwnerID, &expense.Amount.Cents, &expense.Category, &createdAt); err != nil {
		return core.Expense{}, err
	}

	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	expense.CreatedAt = ts
	return expense, nil
}
