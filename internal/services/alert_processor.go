package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"cashflow/internal/core"
	"cashflow/internal/ports"
)

// AlertMetrics observes scheduled balance checks.
type AlertMetrics interface {
	RecordAlertCheck(lowest float64, sent bool)
}

// AlertProcessorConfig holds configuration for the low balance check
type AlertProcessorConfig struct {
	// InitialBalance is the balance the forecast starts from.
	InitialBalance float64

	// Weeks overrides the default_forecast_weeks setting when > 0.
	Weeks int
}

// AlertProcessor forecasts from today and notifies when the lowest projected
// balance drops under the configured threshold.
type AlertProcessor struct {
	snapshots ports.SnapshotReader
	settings  ports.SettingsStore
	notifier  ports.Notifier
	metrics   AlertMetrics
	config    AlertProcessorConfig
}

func NewAlertProcessor(snapshots ports.SnapshotReader, settings ports.SettingsStore, notifier ports.Notifier, config AlertProcessorConfig) *AlertProcessor {
	return &AlertProcessor{
		snapshots: snapshots,
		settings:  settings,
		notifier:  notifier,
		config:    config,
	}
}

// SetMetrics attaches an optional metrics sink.
func (p *AlertProcessor) SetMetrics(m AlertMetrics) {
	p.metrics = m
}

// CheckLowBalance runs one check for the week starting at now. It returns the
// alert that was sent, or nil when the forecast stays above the threshold.
func (p *AlertProcessor) CheckLowBalance(ctx context.Context, now time.Time) (*core.LowBalanceAlert, error) {
	if p.snapshots == nil || p.settings == nil || p.notifier == nil {
		return nil, fmt.Errorf("alert processor not properly initialized")
	}

	var (
		settings core.Settings
		snap     core.Snapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		settings, err = p.settings.GetSettings(gctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap, err = p.snapshots.Snapshot(gctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	weeks := settings.DefaultForecastWeeks
	if p.config.Weeks > 0 {
		weeks = p.config.Weeks
	}
	if weeks <= 0 {
		weeks = core.DefaultForecastWeeks
	}

	start := core.DateOf(now)
	report := GenerateForecast(snap, start, weeks, p.config.InitialBalance)

	slog.InfoContext(ctx, "Low balance check",
		"start_date", start.String(),
		"weeks", weeks,
		"lowest_balance", report.LowestBalance,
		"threshold", settings.LowBalanceThreshold)

	if report.LowestBalance >= settings.LowBalanceThreshold {
		p.record(report.LowestBalance, false)
		return nil, nil
	}

	alert := &core.LowBalanceAlert{
		Threshold:     settings.LowBalanceThreshold,
		LowestBalance: report.LowestBalance,
		FirstWeek:     start,
		Currency:      settings.Currency,
		Report:        report,
	}
	if i := report.FirstWeekBelow(settings.LowBalanceThreshold); i >= 0 {
		alert.FirstWeek = report.Entries[i].Date
	}

	if err := p.notifier.NotifyLowBalance(ctx, *alert); err != nil {
		p.record(report.LowestBalance, false)
		return nil, fmt.Errorf("notify low balance: %w", err)
	}
	p.record(report.LowestBalance, true)

	slog.WarnContext(ctx, "Low balance alert sent",
		"lowest_balance", report.LowestBalance,
		"threshold", settings.LowBalanceThreshold,
		"first_week", alert.FirstWeek.String())

	return alert, nil
}

// Schedule registers the check on c using a standard cron spec.
func (p *AlertProcessor) Schedule(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		if _, err := p.CheckLowBalance(ctx, time.Now()); err != nil {
			slog.ErrorContext(ctx, "Scheduled low balance check failed", "error", err)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("schedule low balance check %q: %w", spec, err)
	}
	return id, nil
}

func (p *AlertProcessor) record(lowest float64, sent bool) {
	if p.metrics != nil {
		p.metrics.RecordAlertCheck(lowest, sent)
	}
}
