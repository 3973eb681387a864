package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"1.0", 1, true},
		{"1.23", 1.23, true},
		{"1,23", 1.23, true},
		{"0", 0, true},
		{" 2.50 ", 2.5, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		v        float64
		currency string
		want     string
	}{
		{1234.5, "USD", "USD 1234.50"},
		{-12, "USD", "-USD 12.00"},
		{0.005, "", "0.01"},
		{100, "", "100.00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.v, tc.currency); got != tc.want {
			t.Fatalf("FormatAmount(%v, %q) = %q, want %q", tc.v, tc.currency, got, tc.want)
		}
	}
}

func TestRoundCents(t *testing.T) {
	if got := RoundCents(1.005); got != 1.01 {
		t.Fatalf("expected 1.01, got %v", got)
	}
	if got := RoundCents(-2.499); got != -2.5 {
		t.Fatalf("expected -2.5, got %v", got)
	}
}
