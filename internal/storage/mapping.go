package storage

import (
	"database/sql"

	"cashflow/internal/core"
)

// Conversions between table rows and domain values. Dates are stored as
// YYYY-MM-DD text; a row whose date does not parse is reported rather than
// silently defaulted.

func expenseFromRow(row ExpenseRow) (core.Expense, error) {
	start, err := core.ParseDateField("start_date", row.StartDate)
	if err != nil {
		return core.Expense{}, err
	}
	end, err := nullDate("end_date", row.EndDate)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		ID:          row.ID,
		Name:        row.Name,
		Amount:      row.Amount,
		Category:    row.Category,
		IsRecurring: row.IsRecurring,
		Frequency:   core.Frequency(row.Frequency),
		StartDate:   start,
		EndDate:     end,
		PaymentDay:  int(row.PaymentDay.Int64),
		Notes:       row.Notes,
	}, nil
}

func expenseParams(e core.Expense) ExpenseParams {
	return ExpenseParams{
		ID:          e.ID,
		Name:        e.Name,
		Amount:      e.Amount,
		Category:    e.Category,
		IsRecurring: e.IsRecurring,
		Frequency:   string(e.Frequency),
		StartDate:   e.StartDate.String(),
		EndDate:     toNullDate(e.EndDate),
		PaymentDay:  toNullDay(e.PaymentDay),
		Notes:       e.Notes,
	}
}

func revenueFromRow(row RevenueRow) (core.Revenue, error) {
	start, err := core.ParseDateField("start_date", row.StartDate)
	if err != nil {
		return core.Revenue{}, err
	}
	end, err := nullDate("end_date", row.EndDate)
	if err != nil {
		return core.Revenue{}, err
	}
	return core.Revenue{
		ID:          row.ID,
		Source:      row.Source,
		Amount:      row.Amount,
		Probability: row.Probability,
		IsRecurring: row.IsRecurring,
		Frequency:   core.Frequency(row.Frequency),
		StartDate:   start,
		EndDate:     end,
		PaymentDay:  int(row.PaymentDay.Int64),
		Notes:       row.Notes,
	}, nil
}

func revenueParams(r core.Revenue) RevenueParams {
	return RevenueParams{
		ID:          r.ID,
		Source:      r.Source,
		Amount:      r.Amount,
		Probability: r.Probability,
		IsRecurring: r.IsRecurring,
		Frequency:   string(r.Frequency),
		StartDate:   r.StartDate.String(),
		EndDate:     toNullDate(r.EndDate),
		PaymentDay:  toNullDay(r.PaymentDay),
		Notes:       r.Notes,
	}
}

func nullDate(field string, ns sql.NullString) (*core.Date, error) {
	if !ns.Valid {
		return nil, nil
	}
	return core.ParseOptionalDate(field, ns.String)
}

func toNullDate(d *core.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func toNullDay(day int) sql.NullInt64 {
	if day == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(day), Valid: true}
}
