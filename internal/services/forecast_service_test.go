package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cashflow/internal/core"
)

func rentSnapshot() core.Snapshot {
	return core.Snapshot{
		Expenses: []core.Expense{{
			ID: "exp-1", Name: "Rent", Amount: 1000, IsRecurring: true, Frequency: core.Monthly,
			StartDate: core.NewDate(2025, 1, 1), PaymentDay: 3,
		}},
		Revenue: []core.Revenue{{
			ID: "rev-1", Source: "Salary", Amount: 500, Probability: 1, IsRecurring: true, Frequency: core.Weekly,
			StartDate: core.NewDate(2025, 1, 1),
		}},
	}
}

func TestForecastService_Calculate(t *testing.T) {
	tests := []struct {
		name      string
		weeks     *int
		settings  core.Settings
		wantWeeks int
		wantField string
	}{
		{name: "explicit weeks", weeks: intPtr(4), settings: core.DefaultSettings(), wantWeeks: 4},
		{name: "zero weeks", weeks: intPtr(0), settings: core.DefaultSettings(), wantWeeks: 0},
		{name: "default from settings", settings: core.Settings{DefaultForecastWeeks: 12}, wantWeeks: 12},
		{name: "unset setting falls back", settings: core.Settings{}, wantWeeks: core.DefaultForecastWeeks},
		{name: "negative weeks", weeks: intPtr(-1), settings: core.DefaultSettings(), wantField: "numWeeks"},
		{name: "too many weeks", weeks: intPtr(core.MaxForecastWeeks + 1), settings: core.DefaultSettings(), wantField: "numWeeks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps := &countingSnapshots{snap: rentSnapshot()}
			svc := NewForecastService(snaps, &staticSettings{settings: tt.settings})

			report, err := svc.Calculate(context.Background(), ForecastRequest{
				StartDate: core.NewDate(2025, 1, 1), NumWeeks: tt.weeks, InitialBalance: 100,
			})
			if tt.wantField != "" {
				var ve *core.ValidationError
				if !errors.As(err, &ve) || ve.Field != tt.wantField {
					t.Fatalf("expected ValidationError on %s, got %v", tt.wantField, err)
				}
				if snaps.calls != 0 {
					t.Fatalf("snapshot taken for invalid request")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.NumWeeks != tt.wantWeeks || len(report.Entries) != tt.wantWeeks {
				t.Fatalf("expected %d weeks, got %d/%d", tt.wantWeeks, report.NumWeeks, len(report.Entries))
			}
		})
	}
}

func TestForecastService_RequiresStartDate(t *testing.T) {
	svc := NewForecastService(&countingSnapshots{}, nil)
	_, err := svc.Calculate(context.Background(), ForecastRequest{NumWeeks: intPtr(1)})
	var ve *core.ValidationError
	if !errors.As(err, &ve) || ve.Field != "startDate" {
		t.Fatalf("expected startDate ValidationError, got %v", err)
	}
}

func TestForecastService_FirstWeek(t *testing.T) {
	svc := NewForecastService(&countingSnapshots{snap: rentSnapshot()}, nil)
	report, err := svc.Calculate(context.Background(), ForecastRequest{
		StartDate: core.NewDate(2025, 1, 1), NumWeeks: intPtr(1), InitialBalance: 100,
	})
	if err != nil {
		t.Fatal(err)
	}
	w := report.Entries[0]
	if w.Inflows != 500 || w.Outflows != 1000 || w.EndingBalance != -400 {
		t.Fatalf("unexpected first week %+v", w)
	}
}

func TestForecastService_CacheHit(t *testing.T) {
	ctx := context.Background()
	snaps := &countingSnapshots{snap: rentSnapshot()}
	m := &fakeMetrics{}
	svc := NewForecastService(snaps, nil, WithForecastCache(newFakeReportCache()), WithForecastMetrics(m))
	req := ForecastRequest{StartDate: core.NewDate(2025, 1, 1), NumWeeks: intPtr(2)}

	first, err := svc.Calculate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Calculate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if snaps.calls != 1 {
		t.Fatalf("expected one snapshot, got %d", snaps.calls)
	}
	if first.EndingBalance != second.EndingBalance {
		t.Fatalf("cached report differs")
	}
	if m.hits != 1 || m.misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", m.hits, m.misses)
	}
}

func TestForecastService_SnapshotError(t *testing.T) {
	m := &fakeMetrics{}
	svc := NewForecastService(&countingSnapshots{err: errors.New("db closed")}, nil, WithForecastMetrics(m))
	_, err := svc.Calculate(context.Background(), ForecastRequest{StartDate: core.NewDate(2025, 1, 1), NumWeeks: intPtr(1)})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(m.outcomes) != 1 || m.outcomes[0] != "error" {
		t.Fatalf("unexpected outcomes %v", m.outcomes)
	}
}

func TestForecastService_Concurrent(t *testing.T) {
	svc := NewForecastService(&countingSnapshots{snap: rentSnapshot()}, nil)
	req := ForecastRequest{StartDate: core.NewDate(2025, 1, 1), NumWeeks: intPtr(8), InitialBalance: 50}

	var wg sync.WaitGroup
	results := make([]float64, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := svc.Calculate(context.Background(), req)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = r.EndingBalance
		}(i)
	}
	wg.Wait()
	for _, v := range results[1:] {
		if v != results[0] {
			t.Fatalf("concurrent results differ: %v", results)
		}
	}
}
