package main

import (
	"context"
	"errors"
	"os"
	"time"

	"cashflow/internal/amqp"
	"cashflow/internal/backend"
	"cashflow/internal/cli"
	"cashflow/internal/log"
	"cashflow/internal/services"
	"cashflow/internal/worker"
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
	logger := cli.SetupLogger(cfg, log.ComponentWorker)
	logger.Info("Starting cashflow-worker")

	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	if !cfg.SheetsEnabled() {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the worker")
		os.Exit(1)
	}

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger, backend.Options{})
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer app.Close()

	settings, err := app.Settings.Get(ctx)
	if err != nil {
		logger.Error("Failed to read settings", log.FieldError, err.Error())
		os.Exit(1)
	}
	exporter, err := cli.NewSheetsExporter(ctx, cfg, settings.Currency)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets exporter", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Google Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	consumer, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
		os.Exit(1)
	}

	exportCfg := services.DefaultExportProcessorConfig()
	exportCfg.PollInterval = cfg.ExportInterval
	exportCfg.MaxRetries = cfg.ExportMaxRetries
	exportCfg.InitialBalance = cfg.ExportInitialBalance
	exports := services.NewExportProcessor(app.Forecasts, exporter, exportCfg)

	notifier, err := cli.NewNotifier(cfg)
	if err != nil {
		logger.Error("Failed to initialize notifier", log.FieldError, err.Error())
		os.Exit(1)
	}
	scheduler, _, err := cli.ScheduleAlerts(ctx, app, notifier)
	if err != nil {
		logger.Error("Failed to schedule alerts", log.FieldError, err.Error())
		os.Exit(1)
	}

	proc := cli.NewProcess(logger, 30*time.Second)
	proc.OnShutdown(func(context.Context) error { return consumer.Close() })
	proc.OnShutdown(exports.Stop)
	proc.OnShutdown(func(ctx context.Context) error { return cli.StopCron(ctx, scheduler) })

	proc.Go(func(ctx context.Context) error {
		if err := exports.Start(ctx); err != nil {
			return err
		}
		// export the standing forecast once at startup
		exports.MarkDirty()
		scheduler.Start()
		<-ctx.Done()
		return nil
	})
	proc.Go(func(ctx context.Context) error {
		err := consumer.Consume(ctx, worker.NewExportWorker(exports, app.Backend.Reports))
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := proc.Run(ctx); err != nil {
		os.Exit(1)
	}
}
