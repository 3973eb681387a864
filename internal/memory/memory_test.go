package memory

import (
	"context"
	"errors"
	"testing"

	"cashflow/internal/core"
)

func TestMemoryStoreExpenseLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	e := core.Expense{ID: "exp-1", Name: "rent", Amount: 10, Frequency: core.OneTime, StartDate: core.NewDate(2025, 1, 1)}
	if err := s.CreateExpense(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateExpense(ctx, e); err == nil {
		t.Fatal("expected duplicate error")
	}

	e.Amount = 20
	if err := s.UpdateExpense(ctx, e); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetExpense(ctx, "exp-1")
	if err != nil || got.Amount != 20 {
		t.Fatalf("unexpected get: %+v err=%v", got, err)
	}

	if err := s.DeleteExpense(ctx, "exp-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetExpense(ctx, "exp-1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	end := core.NewDate(2025, 6, 30)
	s := NewFromSnapshot(core.Snapshot{
		Revenue: []core.Revenue{{ID: "rev-1", Source: "a", Amount: 1, Probability: 1, StartDate: core.NewDate(2025, 1, 1), EndDate: &end}},
	})

	snap, _ := s.Snapshot(ctx)
	snap.Revenue[0].Amount = 999
	*snap.Revenue[0].EndDate = core.NewDate(2030, 1, 1)

	again, _ := s.Snapshot(ctx)
	if again.Revenue[0].Amount != 1 || !again.Revenue[0].EndDate.Equal(end) {
		t.Fatalf("store was mutated through snapshot: %+v", again.Revenue[0])
	}
}

func TestSettingsDefaults(t *testing.T) {
	got, _ := New().GetSettings(context.Background())
	if got != core.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}
