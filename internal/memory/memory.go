// Package memory is an in-process item store used by tests and by the
// memory backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"cashflow/internal/core"
)

type Store struct {
	mu       sync.Mutex
	expenses []core.Expense
	revenue  []core.Revenue
	settings core.Settings
}

func New() *Store {
	return &Store{settings: core.DefaultSettings()}
}

// NewFromSnapshot seeds the store with the given items.
func NewFromSnapshot(snap core.Snapshot) *Store {
	s := New()
	s.expenses = cloneExpenses(snap.Expenses)
	s.revenue = cloneRevenue(snap.Revenue)
	return s
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneExpenses(s.expenses), nil
}

func (s *Store) GetExpense(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.expenses, id, func(e core.Expense) string { return e.ID })
	if i < 0 {
		return core.Expense{}, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	return cloneExpense(s.expenses[i]), nil
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.expenses, e.ID, func(e core.Expense) string { return e.ID }) >= 0 {
		return fmt.Errorf("expense %s already exists", e.ID)
	}
	s.expenses = append(s.expenses, cloneExpense(e))
	return nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.expenses, e.ID, func(e core.Expense) string { return e.ID })
	if i < 0 {
		return fmt.Errorf("expense %s: %w", e.ID, core.ErrNotFound)
	}
	s.expenses[i] = cloneExpense(e)
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.expenses, id, func(e core.Expense) string { return e.ID })
	if i < 0 {
		return fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
	return nil
}

func (s *Store) ListRevenue(_ context.Context) ([]core.Revenue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRevenue(s.revenue), nil
}

func (s *Store) GetRevenue(_ context.Context, id string) (core.Revenue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.revenue, id, func(r core.Revenue) string { return r.ID })
	if i < 0 {
		return core.Revenue{}, fmt.Errorf("revenue %s: %w", id, core.ErrNotFound)
	}
	return cloneRevenueItem(s.revenue[i]), nil
}

func (s *Store) CreateRevenue(_ context.Context, r core.Revenue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.revenue, r.ID, func(r core.Revenue) string { return r.ID }) >= 0 {
		return fmt.Errorf("revenue %s already exists", r.ID)
	}
	s.revenue = append(s.revenue, cloneRevenueItem(r))
	return nil
}

func (s *Store) UpdateRevenue(_ context.Context, r core.Revenue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.revenue, r.ID, func(r core.Revenue) string { return r.ID })
	if i < 0 {
		return fmt.Errorf("revenue %s: %w", r.ID, core.ErrNotFound)
	}
	s.revenue[i] = cloneRevenueItem(r)
	return nil
}

func (s *Store) DeleteRevenue(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.revenue, id, func(r core.Revenue) string { return r.ID })
	if i < 0 {
		return fmt.Errorf("revenue %s: %w", id, core.ErrNotFound)
	}
	s.revenue = append(s.revenue[:i], s.revenue[i+1:]...)
	return nil
}

func (s *Store) GetSettings(_ context.Context) (core.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

func (s *Store) UpdateSettings(_ context.Context, settings core.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

// Snapshot returns deep copies so callers never alias the store's items.
func (s *Store) Snapshot(_ context.Context) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Snapshot{
		Expenses: cloneExpenses(s.expenses),
		Revenue:  cloneRevenue(s.revenue),
	}, nil
}

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, it := range items {
		if key(it) == id {
			return i
		}
	}
	return -1
}

func cloneDate(d *core.Date) *core.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneExpense(e core.Expense) core.Expense {
	e.EndDate = cloneDate(e.EndDate)
	return e
}

func cloneRevenueItem(r core.Revenue) core.Revenue {
	r.EndDate = cloneDate(r.EndDate)
	return r
}

func cloneExpenses(in []core.Expense) []core.Expense {
	out := make([]core.Expense, len(in))
	for i, e := range in {
		out[i] = cloneExpense(e)
	}
	return out
}

func cloneRevenue(in []core.Revenue) []core.Revenue {
	out := make([]core.Revenue, len(in))
	for i, r := range in {
		out[i] = cloneRevenueItem(r)
	}
	return out
}
