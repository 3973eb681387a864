package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cashflow/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one connection: sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks the database connection, used by readiness probes.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ListExpenses returns all expenses in insertion order.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return listExpenses(ctx, r.queries)
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	row, err := r.queries.GetExpense(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense by id: %w", err)
	}
	return expenseFromRow(row)
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) error {
	if err := r.queries.CreateExpense(ctx, expenseParams(e)); err != nil {
		return fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"name", e.Name,
		"amount", e.Amount,
		"frequency", e.Frequency)

	return nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	n, err := r.queries.UpdateExpense(ctx, expenseParams(e))
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", e.ID, core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	n, err := r.queries.DeleteExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Expense deleted from SQLite", "id", id)
	return nil
}

// ListRevenue returns all revenue items in insertion order.
func (r *SQLiteRepository) ListRevenue(ctx context.Context) ([]core.Revenue, error) {
	return listRevenue(ctx, r.queries)
}

func (r *SQLiteRepository) GetRevenue(ctx context.Context, id string) (core.Revenue, error) {
	row, err := r.queries.GetRevenue(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Revenue{}, fmt.Errorf("revenue %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Revenue{}, fmt.Errorf("get revenue by id: %w", err)
	}
	return revenueFromRow(row)
}

func (r *SQLiteRepository) CreateRevenue(ctx context.Context, rev core.Revenue) error {
	if err := r.queries.CreateRevenue(ctx, revenueParams(rev)); err != nil {
		return fmt.Errorf("create revenue: %w", err)
	}

	slog.InfoContext(ctx, "Revenue saved to SQLite",
		"id", rev.ID,
		"source", rev.Source,
		"amount", rev.Amount,
		"probability", rev.Probability)

	return nil
}

func (r *SQLiteRepository) UpdateRevenue(ctx context.Context, rev core.Revenue) error {
	n, err := r.queries.UpdateRevenue(ctx, revenueParams(rev))
	if err != nil {
		return fmt.Errorf("update revenue: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("revenue %s: %w", rev.ID, core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) DeleteRevenue(ctx context.Context, id string) error {
	n, err := r.queries.DeleteRevenue(ctx, id)
	if err != nil {
		return fmt.Errorf("delete revenue: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("revenue %s: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Revenue deleted from SQLite", "id", id)
	return nil
}

func (r *SQLiteRepository) GetSettings(ctx context.Context) (core.Settings, error) {
	rows, err := r.queries.ListSettings(ctx)
	if err != nil {
		return core.Settings{}, fmt.Errorf("list settings: %w", err)
	}
	return settingsFromRows(rows), nil
}

// UpdateSettings writes every setting in one transaction.
func (r *SQLiteRepository) UpdateSettings(ctx context.Context, s core.Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	for _, row := range settingsToRows(s) {
		if err := q.UpsertSetting(ctx, row.Key, row.Value); err != nil {
			return fmt.Errorf("upsert setting %s: %w", row.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}

// Snapshot reads expenses and revenue inside one read transaction so both
// lists come from the same database state.
func (r *SQLiteRepository) Snapshot(ctx context.Context) (core.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	expenses, err := listExpenses(ctx, q)
	if err != nil {
		return core.Snapshot{}, err
	}
	revenue, err := listRevenue(ctx, q)
	if err != nil {
		return core.Snapshot{}, err
	}
	return core.Snapshot{Expenses: expenses, Revenue: revenue}, nil
}

func listExpenses(ctx context.Context, q *Queries) ([]core.Expense, error) {
	rows, err := q.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := expenseFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", row.ID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func listRevenue(ctx context.Context, q *Queries) ([]core.Revenue, error) {
	rows, err := q.ListRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("list revenue: %w", err)
	}
	out := make([]core.Revenue, 0, len(rows))
	for _, row := range rows {
		rev, err := revenueFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("revenue %s: %w", row.ID, err)
		}
		out = append(out, rev)
	}
	return out, nil
}
