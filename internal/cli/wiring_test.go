package cli

import (
	"context"
	"testing"
	"time"

	"cashflow/internal/backend"
	"cashflow/internal/config"
	"cashflow/internal/notify"
)

func TestNewNotifier(t *testing.T) {
	n, err := NewNotifier(&config.Config{})
	if err != nil {
		t.Fatalf("NewNotifier: %v", err)
	}
	if _, ok := n.(notify.LogNotifier); !ok {
		t.Errorf("notifier = %T, want LogNotifier", n)
	}

	n, err = NewNotifier(&config.Config{SMTPHost: "smtp.example.com", SMTPFrom: "a@example.com", SMTPTo: []string{"b@example.com"}})
	if err != nil {
		t.Fatalf("NewNotifier smtp: %v", err)
	}
	if _, ok := n.(*notify.EmailNotifier); !ok {
		t.Errorf("notifier = %T, want *EmailNotifier", n)
	}

	if _, err := NewNotifier(&config.Config{SMTPHost: "smtp.example.com"}); err == nil {
		t.Error("expected error without sender")
	}
}

func TestScheduleAlerts(t *testing.T) {
	cfg := &config.Config{Backend: "memory", CacheSize: 4, CacheTTL: time.Minute, AlertSchedule: "0 8 * * *"}
	app, err := NewApp(context.Background(), cfg, testLogger(), backend.Options{})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer app.Close()

	c, processor, err := ScheduleAlerts(context.Background(), app, notify.LogNotifier{})
	if err != nil {
		t.Fatalf("ScheduleAlerts: %v", err)
	}
	if len(c.Entries()) != 1 || processor == nil {
		t.Fatalf("entries = %d", len(c.Entries()))
	}
	c.Start()
	if err := StopCron(context.Background(), c); err != nil {
		t.Errorf("StopCron: %v", err)
	}

	app.Config.AlertSchedule = "every morning"
	if _, _, err := ScheduleAlerts(context.Background(), app, notify.LogNotifier{}); err == nil {
		t.Error("expected error for invalid schedule")
	}
}
