package services

import (
	"context"
	"errors"
	"testing"

	"cashflow/internal/core"
	"cashflow/internal/memory"
)

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(memory.New())

	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != core.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}

	got.Currency = "EUR"
	got.LowBalanceThreshold = 250
	if _, err := svc.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, _ := svc.Get(ctx)
	if stored.Currency != "EUR" || stored.LowBalanceThreshold != 250 {
		t.Fatalf("settings not stored: %+v", stored)
	}
}

func TestSettingsService_UpdateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(memory.New())

	bad := core.DefaultSettings()
	bad.DefaultForecastWeeks = 0
	_, err := svc.Update(ctx, bad)
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	stored, _ := svc.Get(ctx)
	if stored.DefaultForecastWeeks != core.DefaultForecastWeeks {
		t.Fatalf("invalid settings were stored: %+v", stored)
	}
}
