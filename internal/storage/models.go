package storage

import (
	"database/sql"
	"time"
)

// ExpenseRow mirrors a row of the expenses table.
type ExpenseRow struct {
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
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RevenueRow mirrors a row of the revenue table.
type RevenueRow struct {
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
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SettingRow struct {
	Key   string
	Value string
}
