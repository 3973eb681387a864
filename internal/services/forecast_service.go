package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"cashflow/internal/cache"
	"cashflow/internal/core"
	"cashflow/internal/ports"
)

// ForecastRequest is a validated forecast call. A nil NumWeeks falls back to
// the default_forecast_weeks setting.
type ForecastRequest struct {
	StartDate      core.Date
	NumWeeks       *int
	InitialBalance float64
}

// ForecastMetrics observes forecast computations.
type ForecastMetrics interface {
	RecordForecast(outcome string, numWeeks int, seconds float64)
	RecordCacheLookup(hit bool)
}

// ForecastService loads a snapshot and runs the engine over it.
type ForecastService struct {
	snapshots ports.SnapshotReader
	settings  ports.SettingsStore
	reports   cache.ReportCache
	metrics   ForecastMetrics
	group     singleflight.Group
}

type ForecastOption func(*ForecastService)

func WithForecastCache(c cache.ReportCache) ForecastOption {
	return func(s *ForecastService) { s.reports = c }
}

func WithForecastMetrics(m ForecastMetrics) ForecastOption {
	return func(s *ForecastService) { s.metrics = m }
}

func NewForecastService(snapshots ports.SnapshotReader, settings ports.SettingsStore, opts ...ForecastOption) *ForecastService {
	s := &ForecastService{snapshots: snapshots, settings: settings}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate resolves the horizon, serves from cache when possible and
// otherwise snapshots the store and folds it. Identical concurrent requests
// share one computation.
func (s *ForecastService) Calculate(ctx context.Context, req ForecastRequest) (core.ForecastReport, error) {
	started := time.Now()

	if req.StartDate.IsZero() {
		return core.ForecastReport{}, core.NewValidationError("startDate", "start date is required")
	}
	numWeeks, err := s.resolveWeeks(ctx, req.NumWeeks)
	if err != nil {
		return core.ForecastReport{}, err
	}

	key := cache.ReportKey(req.StartDate, numWeeks, req.InitialBalance)
	if s.reports != nil {
		r, ok := s.reports.Get(ctx, key)
		s.recordCache(ok)
		if ok {
			return r, nil
		}
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		snap, err := s.snapshots.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		report := GenerateForecast(snap, req.StartDate, numWeeks, req.InitialBalance)
		if s.reports != nil {
			s.reports.Set(ctx, key, report)
		}
		return report, nil
	})
	if err != nil {
		s.recordForecast("error", numWeeks, started)
		return core.ForecastReport{}, err
	}

	report := v.(core.ForecastReport)
	s.recordForecast("ok", numWeeks, started)
	slog.DebugContext(ctx, "Forecast calculated",
		"start_date", req.StartDate.String(),
		"num_weeks", numWeeks,
		"lowest_balance", report.LowestBalance,
		"shared", shared,
		"duration", time.Since(started))

	return report, nil
}

func (s *ForecastService) resolveWeeks(ctx context.Context, requested *int) (int, error) {
	if requested != nil {
		n := *requested
		if n < 0 {
			return 0, core.NewValidationError("numWeeks", "must not be negative")
		}
		if n > core.MaxForecastWeeks {
			return 0, core.NewValidationError("numWeeks", "must not exceed %d", core.MaxForecastWeeks)
		}
		return n, nil
	}
	if s.settings == nil {
		return core.DefaultForecastWeeks, nil
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}
	if settings.DefaultForecastWeeks <= 0 {
		return core.DefaultForecastWeeks, nil
	}
	return settings.DefaultForecastWeeks, nil
}

func (s *ForecastService) recordCache(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(hit)
	}
}

func (s *ForecastService) recordForecast(outcome string, numWeeks int, started time.Time) {
	if s.metrics != nil {
		s.metrics.RecordForecast(outcome, numWeeks, time.Since(started).Seconds())
	}
}
