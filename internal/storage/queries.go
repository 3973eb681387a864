package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const expenseColumns = `id, name, amount, category, is_recurring, frequency, start_date, end_date, payment_day, notes, created_at, updated_at`

const revenueColumns = `id, source, amount, probability, is_recurring, frequency, start_date, end_date, payment_day, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(s rowScanner) (ExpenseRow, error) {
	var i ExpenseRow
	err := s.Scan(
		&i.ID,
		&i.Name,
		&i.Amount,
		&i.Category,
		&i.IsRecurring,
		&i.Frequency,
		&i.StartDate,
		&i.EndDate,
		&i.PaymentDay,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func scanRevenue(s rowScanner) (RevenueRow, error) {
	var i RevenueRow
	err := s.Scan(
		&i.ID,
		&i.Source,
		&i.Amount,
		&i.Probability,
		&i.IsRecurring,
		&i.Frequency,
		&i.StartDate,
		&i.EndDate,
		&i.PaymentDay,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listExpensesQuery = `SELECT ` + expenseColumns + ` FROM expenses ORDER BY rowid`

func (q *Queries) ListExpenses(ctx context.Context) ([]ExpenseRow, error) {
	rows, err := q.db.QueryContext(ctx, listExpensesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ExpenseRow
	for rows.Next() {
		i, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getExpense = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ?`

func (q *Queries) GetExpense(ctx context.Context, id string) (ExpenseRow, error) {
	return scanExpense(q.db.QueryRowContext(ctx, getExpense, id))
}

const createExpense = `INSERT INTO expenses (id, name, amount, category, is_recurring, frequency, start_date, end_date, payment_day, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type ExpenseParams struct {
	ID          string
	Name        string
	Amount      float64
	Category    string
	IsRecurring bool
	Frequency   string
	StartDate   string
	EndDate     sql.NullString
	PaymentDay  sql.NullInt64
	Notes       string
}

func (q *Queries) CreateExpense(ctx context.Context, arg ExpenseParams) error {
	_, err := q.db.ExecContext(ctx, createExpense,
		arg.ID,
		arg.Name,
		arg.Amount,
		arg.Category,
		arg.IsRecurring,
		arg.Frequency,
		arg.StartDate,
		arg.EndDate,
		arg.PaymentDay,
		arg.Notes,
	)
	return err
}

const updateExpense = `UPDATE expenses
SET name = ?, amount = ?, category = ?, is_recurring = ?, frequency = ?, start_date = ?, end_date = ?, payment_day = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?`

func (q *Queries) UpdateExpense(ctx context.Context, arg ExpenseParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateExpense,
		arg.Name,
		arg.Amount,
		arg.Category,
		arg.IsRecurring,
		arg.Frequency,
		arg.StartDate,
		arg.EndDate,
		arg.PaymentDay,
		arg.Notes,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteExpense = `DELETE FROM expenses WHERE id = ?`

func (q *Queries) DeleteExpense(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpense, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listRevenueQuery = `SELECT ` + revenueColumns + ` FROM revenue ORDER BY rowid`

func (q *Queries) ListRevenue(ctx context.Context) ([]RevenueRow, error) {
	rows, err := q.db.QueryContext(ctx, listRevenueQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RevenueRow
	for rows.Next() {
		i, err := scanRevenue(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRevenue = `SELECT ` + revenueColumns + ` FROM revenue WHERE id = ?`

func (q *Queries) GetRevenue(ctx context.Context, id string) (RevenueRow, error) {
	return scanRevenue(q.db.QueryRowContext(ctx, getRevenue, id))
}

const createRevenue = `INSERT INTO revenue (id, source, amount, probability, is_recurring, frequency, start_date, end_date, payment_day, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type RevenueParams struct {
	ID          string
	Source      string
	Amount      float64
	Probability float64
	IsRecurring bool
	Frequency   string
	StartDate   string
	EndDate     sql.NullString
	PaymentDay  sql.NullInt64
	Notes       string
}

func (q *Queries) CreateRevenue(ctx context.Context, arg RevenueParams) error {
	_, err := q.db.ExecContext(ctx, createRevenue,
		arg.ID,
		arg.Source,
		arg.Amount,
		arg.Probability,
		arg.IsRecurring,
		arg.Frequency,
		arg.StartDate,
		arg.EndDate,
		arg.PaymentDay,
		arg.Notes,
	)
	return err
}

const updateRevenue = `UPDATE revenue
SET source = ?, amount = ?, probability = ?, is_recurring = ?, frequency = ?, start_date = ?, end_date = ?, payment_day = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?`

func (q *Queries) UpdateRevenue(ctx context.Context, arg RevenueParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateRevenue,
		arg.Source,
		arg.Amount,
		arg.Probability,
		arg.IsRecurring,
		arg.Frequency,
		arg.StartDate,
		arg.EndDate,
		arg.PaymentDay,
		arg.Notes,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteRevenue = `DELETE FROM revenue WHERE id = ?`

func (q *Queries) DeleteRevenue(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRevenue, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listSettings = `SELECT key, value FROM settings ORDER BY key`

func (q *Queries) ListSettings(ctx context.Context) ([]SettingRow, error) {
	rows, err := q.db.QueryContext(ctx, listSettings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SettingRow
	for rows.Next() {
		var i SettingRow
		if err := rows.Scan(&i.Key, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertSetting = `INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`

func (q *Queries) UpsertSetting(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx, upsertSetting, key, value)
	return err
}
