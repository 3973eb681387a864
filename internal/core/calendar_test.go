package core

import (
	"testing"
	"time"
)

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		d    Date
		n    int
		want Date
	}{
		{"same month", NewDate(2025, 3, 10), 6, NewDate(2025, 3, 16)},
		{"month rollover", NewDate(2025, 1, 29), 6, NewDate(2025, 2, 4)},
		{"year rollover", NewDate(2024, 12, 28), 7, NewDate(2025, 1, 4)},
		{"leap day", NewDate(2024, 2, 28), 1, NewDate(2024, 2, 29)},
		{"backwards", NewDate(2025, 3, 1), -1, NewDate(2025, 2, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddDays(tt.d, tt.n); !got.Equal(tt.want) {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSafeDateForDay(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
		ok    bool
	}{
		{2025, time.January, 31, true},
		{2025, time.February, 29, false},
		{2024, time.February, 29, true},
		{2025, time.February, 30, false},
		{2025, time.April, 31, false},
		{2025, time.April, 30, true},
		{2025, time.May, 0, false},
		{2025, time.May, 32, false},
	}
	for _, tt := range tests {
		d, ok := SafeDateForDay(tt.year, tt.month, tt.day)
		if ok != tt.ok {
			t.Fatalf("SafeDateForDay(%d, %s, %d) ok=%v, want %v", tt.year, tt.month, tt.day, ok, tt.ok)
		}
		if ok && (d.Year() != tt.year || d.Month() != int(tt.month) || d.Day() != tt.day) {
			t.Fatalf("unexpected date %s", d)
		}
	}
}

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		year, month int
		wantYear    int
		wantMonth   time.Month
	}{
		{2025, 1, 2025, time.January},
		{2025, 12, 2025, time.December},
		{2025, 13, 2026, time.January},
		{2025, 0, 2024, time.December},
		{2025, -1, 2024, time.November},
		{2025, -12, 2023, time.December},
		{2025, 25, 2027, time.January},
		{2025, -23, 2023, time.January},
	}
	for _, tt := range tests {
		y, m := NormalizeMonth(tt.year, tt.month)
		if y != tt.wantYear || m != tt.wantMonth {
			t.Fatalf("NormalizeMonth(%d, %d) = %d %s, want %d %s", tt.year, tt.month, y, m, tt.wantYear, tt.wantMonth)
		}
	}
}
