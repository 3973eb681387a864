package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"cashflow/internal/backend"
	"cashflow/internal/config"
	"cashflow/internal/core"
	"cashflow/internal/log"
	"cashflow/internal/services"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Level: slog.LevelError, Format: "text", Component: "test", Output: os.Stderr})
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("CASHFLOW_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CASHFLOW_TEST_VALUE", "")
	os.Unsetenv("CASHFLOW_TEST_VALUE")

	if err := LoadEnvFile(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("CASHFLOW_TEST_VALUE"); got != "from-file" {
		t.Errorf("CASHFLOW_TEST_VALUE = %q", got)
	}
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("BACKEND", "memory")
	t.Setenv("PORT", "9090")
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatalf("LoadAndValidateConfig: %v", err)
	}
	if cfg.Port != "9090" || cfg.Backend != "memory" {
		t.Errorf("cfg = %+v", cfg)
	}

	t.Setenv("BACKEND", "postgres")
	if _, err := LoadAndValidateConfig(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNewAppMemoryBackend(t *testing.T) {
	cfg := &config.Config{Backend: "memory", CacheSize: 8, CacheTTL: time.Minute}
	app, err := NewApp(context.Background(), cfg, testLogger(), backend.Options{})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	if _, err := app.Items.CreateExpense(ctx, core.Expense{Name: "Rent", Amount: 100, StartDate: core.NewDate(2025, 1, 8)}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	weeks := 1
	report, err := app.Forecasts.Calculate(ctx, services.ForecastRequest{StartDate: core.NewDate(2025, 1, 6), NumWeeks: &weeks, InitialBalance: 500})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if report.EndingBalance != 400 {
		t.Errorf("EndingBalance = %v, want 400", report.EndingBalance)
	}
	if err := app.Backend.Ready(ctx); err != nil {
		t.Errorf("Ready: %v", err)
	}
}

func TestProcessRunStopsOnTaskError(t *testing.T) {
	p := NewProcess(testLogger(), time.Second)
	var stopped atomic.Int32
	boom := errors.New("listener failed")

	p.Go(func(ctx context.Context) error { return boom })
	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	p.OnShutdown(func(context.Context) error { stopped.Add(1); return nil })

	if err := p.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want %v", err, boom)
	}
	if stopped.Load() != 1 {
		t.Errorf("shutdown hooks ran %d times, want 1", stopped.Load())
	}
}

func TestProcessRunCleanCancel(t *testing.T) {
	p := NewProcess(testLogger(), time.Second)
	var order []string
	p.OnShutdown(func(context.Context) error { order = append(order, "first"); return nil })
	p.OnShutdown(func(context.Context) error { order = append(order, "second"); return nil })
	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Join(order, ",") != "second,first" {
		t.Errorf("hook order = %v, want reverse registration", order)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Items",
		Headers: []string{"Name", "Amount"},
		Rows:    [][]string{{"Rent", "1200.00"}, {"Gym", "30.00"}},
	})
	for _, want := range []string{"Items", "Name", "Amount", "Rent", "1200.00", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderForecast(t *testing.T) {
	report := core.ForecastReport{
		StartDate: core.NewDate(2025, 1, 6),
		NumWeeks:  2,
		Entries: []core.WeekEntry{
			{Date: core.NewDate(2025, 1, 6), StartingBalance: 1000, Outflows: 1200.5, EndingBalance: -200.5},
			{Date: core.NewDate(2025, 1, 13), StartingBalance: -200.5, Inflows: 300, EndingBalance: 99.5},
		},
		LowestBalance:  -200.5,
		HighestBalance: 1000,
		EndingBalance:  99.5,
	}
	out := RenderForecast(report, "USD", 0)
	for _, want := range []string{"2025-01-06", "2025-01-13", "-USD 200.50", "USD 1200.50", "Lowest", "USD 99.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("forecast missing %q:\n%s", want, out)
		}
	}
}
