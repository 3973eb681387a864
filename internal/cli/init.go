// Package cli provides common initialization for the cashflow binaries:
// cmd/cashflow, cmd/cashflow-worker, cmd/alert-worker and cmd/cashflowctl.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"cashflow/internal/config"
	"cashflow/internal/log"
)

// SetupLogger builds the process logger from cfg and installs it as the
// slog default.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	return log.Setup(cfg.LogLevel, cfg.LogFormat, component)
}

// LoadEnvFile loads .env style files for local development. Missing files
// are ignored; malformed ones are reported.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Process runs long-lived tasks until a shutdown signal arrives or one of
// them fails, then runs the shutdown hooks in reverse registration order.
type Process struct {
	logger  *log.Logger
	timeout time.Duration
	tasks   []func(ctx context.Context) error
	stops   []func(ctx context.Context) error
	signals []os.Signal
}

func NewProcess(logger *log.Logger, shutdownTimeout time.Duration) *Process {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	return &Process{
		logger:  logger,
		timeout: shutdownTimeout,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Go registers a task. When any task returns the others are cancelled;
// context.Canceled counts as a clean exit.
func (p *Process) Go(task func(ctx context.Context) error) {
	p.tasks = append(p.tasks, task)
}

// OnShutdown registers a hook that runs once the process is stopping.
func (p *Process) OnShutdown(stop func(ctx context.Context) error) {
	p.stops = append(p.stops, stop)
}

// Run blocks until every task has returned and the shutdown hooks have run.
// It returns the first task error, if any.
func (p *Process) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, p.signals...)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range p.tasks {
		task := task
		g.Go(func() error {
			// any task returning ends the process
			defer cancel()
			if err := task(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		p.logger.Info("Shutting down", log.FieldOperation, log.OpShutdown)
		return p.shutdown()
	})

	err := g.Wait()
	if err != nil {
		p.logger.Error("Process stopped with error", log.FieldError, err.Error())
		return err
	}
	p.logger.Info("Shutdown complete")
	return nil
}

func (p *Process) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	var errs []error
	for i := len(p.stops) - 1; i >= 0; i-- {
		if err := p.stops[i](ctx); err != nil {
			p.logger.Warn("Shutdown hook failed", log.FieldError, err.Error())
			errs = append(errs, err)
		}
	}
	if ctx.Err() != nil {
		p.logger.Warn("Shutdown timeout reached")
	}
	return errors.Join(errs...)
}
