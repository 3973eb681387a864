package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentWorker, Output: &buf})

	l.LogFields(context.Background(), slog.LevelInfo, "exported",
		NewFields().WithForecast("2025-01-01", 8).WithError(errors.New("boom")))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not json: %v (%s)", err, buf.String())
	}
	if rec[FieldComponent] != ComponentWorker {
		t.Errorf("component = %v", rec[FieldComponent])
	}
	if rec[FieldNumWeeks] != float64(8) || rec[FieldError] != "boom" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestFields_ToSliceSorted(t *testing.T) {
	got := NewFields().WithOperation(OpList).WithItem("expense", "").WithComponent(ComponentItems).ToSlice()
	want := []any{FieldComponent, ComponentItems, FieldItemKind, "expense", FieldOperation, OpList}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMiddleware_AddsLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Format: "json", Component: ComponentApp, Output: &buf})

	h := Middleware(base, func(*http.Request) string { return "req-1" })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).InfoContext(r.Context(), "inside")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec[FieldRequestID] != "req-1" {
		t.Errorf("request id missing: %v", rec)
	}
}

func TestFromContext_Default(t *testing.T) {
	if l := FromContext(context.Background()); l.Component() != "unknown" || l.Logger == nil {
		t.Fatalf("unexpected default logger %+v", l)
	}
}
