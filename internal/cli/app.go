package cli

import (
	"context"
	"fmt"

	"cashflow/internal/backend"
	"cashflow/internal/config"
	"cashflow/internal/log"
	"cashflow/internal/metrics"
	"cashflow/internal/services"
)

// App is the service graph shared by the server and the workers.
type App struct {
	Config    *config.Config
	Logger    *log.Logger
	Backend   *backend.Result
	Metrics   *metrics.Recorder
	Items     *services.ItemService
	Forecasts *services.ForecastService
	Settings  *services.SettingsService
}

// NewApp builds the backend and the services on top of it.
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger, opts backend.Options) (*App, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.Build(ctx, bcfg, opts, logger.WithComponent(log.ComponentStorage).Logger)
	if err != nil {
		return nil, fmt.Errorf("build backend: %w", err)
	}

	rec := metrics.New()
	itemOpts := []services.ItemOption{
		services.WithReportCache(res.Reports),
		services.WithItemMetrics(rec),
	}
	if res.Publisher != nil {
		itemOpts = append(itemOpts, services.WithPublisher(res.Publisher))
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Backend: res,
		Metrics: rec,
		Items:   services.NewItemService(res.Store, res.Store, itemOpts...),
		Forecasts: services.NewForecastService(res.Store, res.Store,
			services.WithForecastCache(res.Reports),
			services.WithForecastMetrics(rec)),
		Settings: services.NewSettingsService(res.Store),
	}, nil
}

// Close releases the backend resources.
func (a *App) Close() error {
	return a.Backend.Close()
}
