package services

import (
	"errors"
	"testing"

	"cashflow/internal/core"
)

func datePtr(d core.Date) *core.Date { return &d }

func recurring(freq core.Frequency, start core.Date, paymentDay int) core.Expense {
	return core.Expense{
		ID:          "exp-test",
		Name:        "test",
		Amount:      100,
		IsRecurring: true,
		Frequency:   freq,
		StartDate:   start,
		PaymentDay:  paymentDay,
	}
}

func TestWeeklyChecker_IsDue(t *testing.T) {
	// 2025-03-03 is a Monday
	item := recurring(core.Weekly, core.NewDate(2025, 3, 3), 0)

	tests := []struct {
		name       string
		start, end core.Date
		want       bool
	}{
		{"full week containing monday", core.NewDate(2025, 3, 3), core.NewDate(2025, 3, 9), true},
		{"week starting wednesday", core.NewDate(2025, 3, 5), core.NewDate(2025, 3, 11), true},
		{"short window without monday", core.NewDate(2025, 3, 11), core.NewDate(2025, 3, 14), false},
		{"single day monday", core.NewDate(2025, 3, 17), core.NewDate(2025, 3, 17), true},
		{"single day tuesday", core.NewDate(2025, 3, 18), core.NewDate(2025, 3, 18), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsDue(item, tt.start, tt.end)
			if got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyChecker_IsDue(t *testing.T) {
	tests := []struct {
		name       string
		paymentDay int
		start, end core.Date
		want       bool
	}{
		{"payment inside window", 15, core.NewDate(2025, 3, 10), core.NewDate(2025, 3, 16), true},
		{"payment before window", 5, core.NewDate(2025, 3, 10), core.NewDate(2025, 3, 16), false},
		{"window straddles into next month", 2, core.NewDate(2025, 3, 28), core.NewDate(2025, 4, 3), true},
		{"window straddles year end", 1, core.NewDate(2025, 12, 29), core.NewDate(2026, 1, 4), true},
		{"day 31 missing in april", 31, core.NewDate(2025, 4, 25), core.NewDate(2025, 5, 1), false},
		{"day 31 in march", 31, core.NewDate(2025, 3, 27), core.NewDate(2025, 4, 2), true},
		{"day 30 missing in february", 30, core.NewDate(2025, 2, 24), core.NewDate(2025, 3, 2), false},
		{"inclusive window end", 16, core.NewDate(2025, 3, 10), core.NewDate(2025, 3, 16), true},
		{"inclusive window start", 10, core.NewDate(2025, 3, 10), core.NewDate(2025, 3, 16), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := recurring(core.Monthly, core.NewDate(2025, 1, 1), tt.paymentDay)
			if got := IsDue(item, tt.start, tt.end); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuarterlyChecker_IsDue(t *testing.T) {
	anchoredJan := recurring(core.Quarterly, core.NewDate(2025, 1, 1), 1)

	tests := []struct {
		name       string
		item       core.Expense
		start, end core.Date
		want       bool
	}{
		{"next quarter look-ahead", anchoredJan, core.NewDate(2025, 3, 27), core.NewDate(2025, 4, 2), true},
		{"anchor month of current quarter", anchoredJan, core.NewDate(2025, 6, 29), core.NewDate(2025, 7, 5), true},
		{"mid quarter month", anchoredJan, core.NewDate(2025, 5, 1), core.NewDate(2025, 5, 7), true},
		{"february", anchoredJan, core.NewDate(2025, 2, 1), core.NewDate(2025, 2, 7), true},
		{"mid february on day 15", recurring(core.Quarterly, core.NewDate(2025, 1, 1), 15), core.NewDate(2025, 2, 13), core.NewDate(2025, 2, 19), true},
		{"mid may on day 15", recurring(core.Quarterly, core.NewDate(2025, 1, 1), 15), core.NewDate(2025, 5, 13), core.NewDate(2025, 5, 19), true},
		{"no payment day in window", recurring(core.Quarterly, core.NewDate(2025, 1, 1), 15), core.NewDate(2025, 5, 20), core.NewDate(2025, 5, 26), false},
		{"october crosses into next year quarter", anchoredJan, core.NewDate(2025, 12, 29), core.NewDate(2026, 1, 4), true},
		{"start in may still anchors on april", recurring(core.Quarterly, core.NewDate(2025, 5, 20), 10), core.NewDate(2025, 7, 7), core.NewDate(2025, 7, 13), true},
		{"missing day skipped", recurring(core.Quarterly, core.NewDate(2025, 1, 1), 31), core.NewDate(2025, 4, 27), core.NewDate(2025, 5, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(tt.item, tt.start, tt.end); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDue_DateBounds(t *testing.T) {
	item := recurring(core.Weekly, core.NewDate(2025, 3, 3), 0)
	item.EndDate = datePtr(core.NewDate(2025, 3, 17))

	tests := []struct {
		name       string
		start, end core.Date
		want       bool
	}{
		{"before start", core.NewDate(2025, 2, 24), core.NewDate(2025, 3, 2), false},
		{"start equals window end", core.NewDate(2025, 2, 25), core.NewDate(2025, 3, 3), true},
		{"end equals window start", core.NewDate(2025, 3, 17), core.NewDate(2025, 3, 23), true},
		{"after end", core.NewDate(2025, 3, 18), core.NewDate(2025, 3, 24), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(item, tt.start, tt.end); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDue_UnknownFrequencyNeverDue(t *testing.T) {
	item := recurring(core.Frequency("fortnightly"), core.NewDate(2025, 1, 1), 1)
	if IsDue(item, core.NewDate(2025, 1, 1), core.NewDate(2025, 12, 31)) {
		t.Fatal("unknown frequency must never be due")
	}
}

func TestGetDuenessChecker(t *testing.T) {
	tests := []struct {
		frequency core.Frequency
		wantErr   bool
	}{
		{core.Weekly, false},
		{core.Monthly, false},
		{core.Quarterly, false},
		{core.OneTime, true},
		{core.Frequency("yearly"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			checker, err := GetDuenessChecker(tt.frequency)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidFrequency) {
					t.Fatalf("expected ErrInvalidFrequency, got %v", err)
				}
				return
			}
			if err != nil || checker == nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDuenessCheckerRegistryIsFixed(t *testing.T) {
	want := map[core.Frequency]DuenessChecker{
		core.Weekly:    WeeklyChecker{},
		core.Monthly:   MonthlyChecker{},
		core.Quarterly: QuarterlyChecker{},
	}
	if len(duenessStrategies) != len(want) {
		t.Fatalf("registry has %d checkers, want %d", len(duenessStrategies), len(want))
	}
	for freq, checker := range want {
		if got := duenessStrategies[freq]; got != checker {
			t.Errorf("%s: checker = %T, want %T", freq, got, checker)
		}
	}
}

func TestCandidateDates(t *testing.T) {
	months := monthsAround(2025, 2, -1, 1)
	got := candidateDates(31, months)
	// january and march only, february has no 31st
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if !got[0].Equal(core.NewDate(2025, 1, 31)) || !got[1].Equal(core.NewDate(2025, 3, 31)) {
		t.Fatalf("unexpected candidates %v", got)
	}

	wrapped := monthsAround(2025, 1, -3, 5)
	if len(wrapped) != 9 {
		t.Fatalf("expected 9 months, got %d", len(wrapped))
	}
	if wrapped[0].year != 2024 || wrapped[0].month != 10 {
		t.Fatalf("expected 2024-10 first, got %d-%d", wrapped[0].year, wrapped[0].month)
	}
}

func TestQuarterAnchor(t *testing.T) {
	want := []int{1, 1, 1, 4, 4, 4, 7, 7, 7, 10, 10, 10}
	for m := 1; m <= 12; m++ {
		if got := QuarterAnchor(m); got != want[m-1] {
			t.Fatalf("QuarterAnchor(%d) = %d, want %d", m, got, want[m-1])
		}
	}
}
