package cli

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"cashflow/internal/config"
	"cashflow/internal/log"
	"cashflow/internal/notify"
	"cashflow/internal/ports"
	"cashflow/internal/services"
	"cashflow/internal/sheets/google"
)

// NewNotifier returns an SMTP notifier when SMTP is configured and a
// log-only notifier otherwise.
func NewNotifier(cfg *config.Config) (ports.Notifier, error) {
	if !cfg.SMTPEnabled() {
		return notify.LogNotifier{}, nil
	}
	n, err := notify.NewEmailNotifier(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		To:       cfg.SMTPTo,
	})
	if err != nil {
		return nil, fmt.Errorf("smtp notifier: %w", err)
	}
	return n, nil
}

// ScheduleAlerts registers the low balance check on a new cron scheduler.
// The caller starts and stops the returned scheduler.
func ScheduleAlerts(ctx context.Context, app *App, notifier ports.Notifier) (*cron.Cron, *services.AlertProcessor, error) {
	processor := services.NewAlertProcessor(app.Backend.Store, app.Backend.Store, notifier, services.AlertProcessorConfig{
		InitialBalance: app.Config.AlertInitialBalance,
		Weeks:          app.Config.AlertWeeks,
	})
	processor.SetMetrics(app.Metrics)

	c := cron.New()
	if _, err := processor.Schedule(ctx, c, app.Config.AlertSchedule); err != nil {
		return nil, nil, err
	}
	app.Logger.InfoContext(ctx, "Low balance alerts scheduled",
		log.FieldComponent, log.ComponentAlerts,
		"schedule", app.Config.AlertSchedule,
		"smtp", app.Config.SMTPEnabled())
	return c, processor, nil
}

// StopCron waits for running jobs or for ctx, whichever comes first.
func StopCron(ctx context.Context, c *cron.Cron) error {
	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewSheetsExporter builds the Google Sheets exporter from cfg.
func NewSheetsExporter(ctx context.Context, cfg *config.Config, currency string) (*google.Exporter, error) {
	return google.New(ctx, google.Config{
		SpreadsheetID:      cfg.GoogleSpreadsheetID,
		SheetName:          cfg.GoogleSheetName,
		Currency:           currency,
		ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		ServiceAccountFile: cfg.GoogleServiceAccountFile,
		OAuthClientJSON:    cfg.GoogleOAuthClientJSON,
		OAuthClientFile:    cfg.GoogleOAuthClientFile,
		OAuthTokenJSON:     cfg.GoogleOAuthTokenJSON,
		OAuthTokenFile:     cfg.GoogleOAuthTokenFile,
	})
}
