package plan

import (
	"fmt"

	"cashflow/internal/core"
)

// Snapshot converts the plan items into a validated snapshot, in file order.
// Items without an ID get exp-N or rev-N from their position.
func (p *Plan) Snapshot() (core.Snapshot, error) {
	snap := core.Snapshot{
		Expenses: make([]core.Expense, 0, len(p.Expenses)),
		Revenue:  make([]core.Revenue, 0, len(p.Revenue)),
	}
	for i, e := range p.Expenses {
		exp, err := e.toCore(i)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("expense %d: %w", i+1, err)
		}
		snap.Expenses = append(snap.Expenses, exp)
	}
	for i, r := range p.Revenue {
		rev, err := r.toCore(i)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("revenue %d: %w", i+1, err)
		}
		snap.Revenue = append(snap.Revenue, rev)
	}
	return snap, nil
}

// ForecastStart returns the plan's start date, or fallback when unset.
func (p *Plan) ForecastStart(fallback core.Date) (core.Date, error) {
	if p.StartDate == "" {
		return fallback, nil
	}
	return core.ParseDateField("start_date", string(p.StartDate))
}

// FromSnapshot builds a plan holding every item of snap.
func FromSnapshot(snap core.Snapshot) *Plan {
	p := &Plan{
		Expenses: make([]Expense, 0, len(snap.Expenses)),
		Revenue:  make([]Revenue, 0, len(snap.Revenue)),
	}
	for _, e := range snap.Expenses {
		p.Expenses = append(p.Expenses, Expense{
			ID:         e.ID,
			Name:       e.Name,
			Amount:     e.Amount,
			Category:   e.Category,
			Recurring:  e.IsRecurring,
			Frequency:  string(e.Frequency),
			StartDate:  Date(e.StartDate.String()),
			EndDate:    optionalDate(e.EndDate),
			PaymentDay: e.PaymentDay,
			Notes:      e.Notes,
		})
	}
	for _, r := range snap.Revenue {
		probability := r.Probability
		p.Revenue = append(p.Revenue, Revenue{
			ID:          r.ID,
			Source:      r.Source,
			Amount:      r.Amount,
			Probability: &probability,
			Recurring:   r.IsRecurring,
			Frequency:   string(r.Frequency),
			StartDate:   Date(r.StartDate.String()),
			EndDate:     optionalDate(r.EndDate),
			PaymentDay:  r.PaymentDay,
			Notes:       r.Notes,
		})
	}
	return p
}

func optionalDate(d *core.Date) Date {
	if d == nil {
		return ""
	}
	return Date(d.String())
}

func frequencyOrDefault(f string) core.Frequency {
	if f == "" {
		return core.OneTime
	}
	return core.Frequency(f)
}

func (e Expense) toCore(i int) (core.Expense, error) {
	start, err := core.ParseDateField("start_date", string(e.StartDate))
	if err != nil {
		return core.Expense{}, err
	}
	end, err := core.ParseOptionalDate("end_date", string(e.EndDate))
	if err != nil {
		return core.Expense{}, err
	}
	id := e.ID
	if id == "" {
		id = fmt.Sprintf("exp-%d", i+1)
	}
	exp := core.Expense{
		ID:          id,
		Name:        e.Name,
		Amount:      e.Amount,
		Category:    e.Category,
		IsRecurring: e.Recurring,
		Frequency:   frequencyOrDefault(e.Frequency),
		StartDate:   start,
		EndDate:     end,
		PaymentDay:  e.PaymentDay,
		Notes:       e.Notes,
	}
	if err := exp.Validate(); err != nil {
		return core.Expense{}, err
	}
	return exp, nil
}

func (r Revenue) toCore(i int) (core.Revenue, error) {
	start, err := core.ParseDateField("start_date", string(r.StartDate))
	if err != nil {
		return core.Revenue{}, err
	}
	end, err := core.ParseOptionalDate("end_date", string(r.EndDate))
	if err != nil {
		return core.Revenue{}, err
	}
	id := r.ID
	if id == "" {
		id = fmt.Sprintf("rev-%d", i+1)
	}
	probability := 1.0
	if r.Probability != nil {
		probability = *r.Probability
	}
	rev := core.Revenue{
		ID:          id,
		Source:      r.Source,
		Amount:      r.Amount,
		Probability: probability,
		IsRecurring: r.Recurring,
		Frequency:   frequencyOrDefault(r.Frequency),
		StartDate:   start,
		EndDate:     end,
		PaymentDay:  r.PaymentDay,
		Notes:       r.Notes,
	}
	if err := rev.Validate(); err != nil {
		return core.Revenue{}, err
	}
	return rev, nil
}
