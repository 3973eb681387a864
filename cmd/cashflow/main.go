package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"cashflow/internal/backend"
	"cashflow/internal/cli"
	apphttp "cashflow/internal/http"
	"cashflow/internal/log"
	"cashflow/internal/middleware/ratelimit"
)

func main() {
	if err := cli.LoadEnvFile(); err != nil {
		log.New(log.DefaultConfig()).Error("Failed to load .env", log.FieldError, err.Error())
		os.Exit(1)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, log.ComponentApp)

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger, backend.Options{WithPublisher: cfg.AMQPEnabled()})
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err.Error(), "backend", cfg.Backend)
		os.Exit(1)
	}

	opts := apphttp.Options{
		Logger:  logger,
		Metrics: app.Metrics,
		Ready:   app.Backend.Ready,
		RateLimit: ratelimit.Config{
			Requests:        cfg.RateLimitRequests,
			Window:          cfg.RateLimitWindow,
			CleanupInterval: 5 * time.Minute,
		},
	}
	if app.Backend.Publisher != nil {
		opts.Exports = app.Backend.Publisher
	}
	srv := apphttp.NewServer(":"+cfg.Port, app.Items, app.Forecasts, app.Settings, opts)

	proc := cli.NewProcess(logger, 30*time.Second)
	proc.Go(func(context.Context) error {
		logger.Info("Starting cashflow server",
			"port", cfg.Port,
			"backend", cfg.Backend,
			"events", app.Backend.Publisher != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	proc.OnShutdown(func(context.Context) error { return app.Close() })
	proc.OnShutdown(srv.Shutdown)

	if err := proc.Run(ctx); err != nil {
		os.Exit(1)
	}
}
