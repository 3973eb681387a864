package main

import (
	"context"
	"flag"
	"os"
	"time"

	"cashflow/internal/backend"
	"cashflow/internal/cli"
	"cashflow/internal/log"
)

func main() {
	once := flag.Bool("once", false, "run a single low balance check and exit")
	flag.Parse()

	if err := cli.LoadEnvFile(); err != nil {
		log.New(log.DefaultConfig()).Error("Failed to load .env", log.FieldError, err.Error())
		os.Exit(1)
	}
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, log.ComponentAlerts)
	logger.Info("Starting alert-worker", "schedule", cfg.AlertSchedule, "once", *once)

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger, backend.Options{})
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer app.Close()

	notifier, err := cli.NewNotifier(cfg)
	if err != nil {
		logger.Error("Failed to initialize notifier", log.FieldError, err.Error())
		os.Exit(1)
	}
	scheduler, processor, err := cli.ScheduleAlerts(ctx, app, notifier)
	if err != nil {
		logger.Error("Failed to schedule alerts", log.FieldError, err.Error())
		os.Exit(1)
	}

	if *once {
		alert, err := processor.CheckLowBalance(ctx, time.Now())
		if err != nil {
			logger.Error("Low balance check failed", log.FieldError, err.Error())
			os.Exit(1)
		}
		logger.Info("Low balance check finished", "alert_sent", alert != nil)
		return
	}

	proc := cli.NewProcess(logger, 30*time.Second)
	proc.OnShutdown(func(ctx context.Context) error { return cli.StopCron(ctx, scheduler) })
	proc.Go(func(ctx context.Context) error {
		scheduler.Start()
		<-ctx.Done()
		return nil
	})

	if err := proc.Run(ctx); err != nil {
		os.Exit(1)
	}
}
