package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cashflow/internal/core"
)

func TestParseForecastQuery(t *testing.T) {
	today := core.NewDate(2025, 6, 2)

	tests := []struct {
		name      string
		query     string
		wantStart core.Date
		wantWeeks *int
		wantBal   float64
		wantErr   string
	}{
		{name: "defaults", query: "", wantStart: today},
		{name: "all set", query: "startDate=2025-01-06&numWeeks=4&initialBalance=12.5", wantStart: core.NewDate(2025, 1, 6), wantWeeks: intPtr(4), wantBal: 12.5},
		{name: "timestamp start", query: "startDate=2025-01-06T23:59:00-05:00", wantStart: core.NewDate(2025, 1, 6)},
		{name: "negative balance", query: "initialBalance=-10", wantStart: today, wantBal: -10},
		{name: "bad date", query: "startDate=tomorrow", wantErr: "startDate"},
		{name: "bad weeks", query: "numWeeks=two", wantErr: "numWeeks"},
		{name: "bad balance", query: "initialBalance=lots", wantErr: "initialBalance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			got, err := ParseForecastQuery(values, today)
			if tt.wantErr != "" {
				var ve *core.ValidationError
				if !errors.As(err, &ve) || ve.Field != tt.wantErr {
					t.Fatalf("err = %v, want validation error on %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.StartDate.Equal(tt.wantStart) {
				t.Errorf("StartDate = %s, want %s", got.StartDate, tt.wantStart)
			}
			if (got.NumWeeks == nil) != (tt.wantWeeks == nil) || (got.NumWeeks != nil && *got.NumWeeks != *tt.wantWeeks) {
				t.Errorf("NumWeeks = %v, want %v", got.NumWeeks, tt.wantWeeks)
			}
			if got.InitialBalance != tt.wantBal {
				t.Errorf("InitialBalance = %v, want %v", got.InitialBalance, tt.wantBal)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     string
	}{
		{name: "ok", contentType: "application/json", body: `{"name":"a"}`},
		{name: "charset", contentType: "application/json; charset=utf-8", body: `{"name":"a"}`},
		{name: "no content type", body: `{"name":"a"}`},
		{name: "form", contentType: "application/x-www-form-urlencoded", body: "name=a", wantErr: "unsupported content type"},
		{name: "empty", body: "", wantErr: "request body is empty"},
		{name: "unknown field", body: `{"nome":"a"}`, wantErr: "malformed JSON"},
		{name: "trailing object", body: `{"name":"a"} {"name":"b"}`, wantErr: "single JSON object"},
		{name: "too large", body: `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, wantErr: "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			var p payload
			err := decodeJSON(httptest.NewRecorder(), req, &p)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if p.Name != "a" {
					t.Errorf("Name = %q", p.Name)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  rent  ", "rent"},
		{"a\x00b\x07c", "abc"},
		{"line1\nline2\tx", "line1\nline2\tx"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func intPtr(n int) *int { return &n }
