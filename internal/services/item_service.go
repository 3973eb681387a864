package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"cashflow/internal/amqp"
	"cashflow/internal/cache"
	"cashflow/internal/core"
	"cashflow/internal/ports"
)

// ID prefixes for generated item identifiers.
const (
	ExpenseIDPrefix = "exp"
	RevenueIDPrefix = "rev"
)

// EventPublisher announces item writes to other processes.
type EventPublisher interface {
	PublishItemChanged(ctx context.Context, kind, id, action string) error
}

// ItemMetrics counts item writes.
type ItemMetrics interface {
	RecordItemWrite(kind, action string)
}

// ItemService orchestrates expense and revenue writes across the store,
// the report cache and the event bus.
type ItemService struct {
	expenses  ports.ExpenseStore
	revenue   ports.RevenueStore
	publisher EventPublisher
	reports   cache.ReportCache
	metrics   ItemMetrics
	newID     func(prefix string) string
}

type ItemOption func(*ItemService)

func WithPublisher(p EventPublisher) ItemOption {
	return func(s *ItemService) { s.publisher = p }
}

func WithReportCache(c cache.ReportCache) ItemOption {
	return func(s *ItemService) { s.reports = c }
}

func WithItemMetrics(m ItemMetrics) ItemOption {
	return func(s *ItemService) { s.metrics = m }
}

// WithIDGenerator replaces the uuid based generator, mostly for tests.
func WithIDGenerator(fn func(prefix string) string) ItemOption {
	return func(s *ItemService) { s.newID = fn }
}

func NewItemService(expenses ports.ExpenseStore, revenue ports.RevenueStore, opts ...ItemOption) *ItemService {
	s := &ItemService{
		expenses: expenses,
		revenue:  revenue,
		newID:    GenerateID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateID returns prefix-xxxxxxxx using the first 8 hex digits of a random UUID.
func GenerateID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func (s *ItemService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.expenses.ListExpenses(ctx)
}

func (s *ItemService) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	return s.expenses.GetExpense(ctx, id)
}

// CreateExpense assigns an ID when missing, validates and stores the expense.
func (s *ItemService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.ID == "" {
		e.ID = s.newID(ExpenseIDPrefix)
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if err := s.expenses.CreateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.afterWrite(ctx, amqp.KindExpense, e.ID, amqp.ActionCreated)
	return e, nil
}

func (s *ItemService) UpdateExpense(ctx context.Context, id string, e core.Expense) (core.Expense, error) {
	e.ID = id
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if err := s.expenses.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	s.afterWrite(ctx, amqp.KindExpense, id, amqp.ActionUpdated)
	return e, nil
}

func (s *ItemService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.expenses.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.afterWrite(ctx, amqp.KindExpense, id, amqp.ActionDeleted)
	return nil
}

func (s *ItemService) ListRevenue(ctx context.Context) ([]core.Revenue, error) {
	return s.revenue.ListRevenue(ctx)
}

func (s *ItemService) GetRevenue(ctx context.Context, id string) (core.Revenue, error) {
	return s.revenue.GetRevenue(ctx, id)
}

// CreateRevenue assigns an ID when missing, validates and stores the item.
func (s *ItemService) CreateRevenue(ctx context.Context, r core.Revenue) (core.Revenue, error) {
	if r.ID == "" {
		r.ID = s.newID(RevenueIDPrefix)
	}
	if err := r.Validate(); err != nil {
		return core.Revenue{}, err
	}
	if err := s.revenue.CreateRevenue(ctx, r); err != nil {
		return core.Revenue{}, fmt.Errorf("save revenue: %w", err)
	}
	s.afterWrite(ctx, amqp.KindRevenue, r.ID, amqp.ActionCreated)
	return r, nil
}

func (s *ItemService) UpdateRevenue(ctx context.Context, id string, r core.Revenue) (core.Revenue, error) {
	r.ID = id
	if err := r.Validate(); err != nil {
		return core.Revenue{}, err
	}
	if err := s.revenue.UpdateRevenue(ctx, r); err != nil {
		return core.Revenue{}, fmt.Errorf("update revenue: %w", err)
	}
	s.afterWrite(ctx, amqp.KindRevenue, id, amqp.ActionUpdated)
	return r, nil
}

func (s *ItemService) DeleteRevenue(ctx context.Context, id string) error {
	if err := s.revenue.DeleteRevenue(ctx, id); err != nil {
		return fmt.Errorf("delete revenue: %w", err)
	}
	s.afterWrite(ctx, amqp.KindRevenue, id, amqp.ActionDeleted)
	return nil
}

// afterWrite drops cached reports and publishes the change. Publish failures
// are logged only: the write itself already succeeded.
func (s *ItemService) afterWrite(ctx context.Context, kind, id, action string) {
	if s.reports != nil {
		s.reports.Invalidate(ctx)
	}
	if s.metrics != nil {
		s.metrics.RecordItemWrite(kind, action)
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishItemChanged(ctx, kind, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish item change",
			"kind", kind,
			"id", id,
			"action", action,
			"error", err)
	}
}
