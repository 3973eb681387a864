package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cashflow/internal/core"
	"cashflow/internal/ports"
)

// ExportProcessorConfig holds configuration for the export processor
type ExportProcessorConfig struct {
	// PollInterval is how often pending exports are flushed (default: 10s)
	PollInterval time.Duration

	// MaxRetries is the number of export attempts per flush (default: 3)
	MaxRetries int

	// RetryDelay is the pause between attempts, doubled each time (default: 1s)
	RetryDelay time.Duration

	// InitialBalance seeds the standing forecast exported after item changes.
	InitialBalance float64

	// QueueSize bounds explicit export requests waiting for a flush (default: 16)
	QueueSize int
}

// DefaultExportProcessorConfig returns sensible defaults
func DefaultExportProcessorConfig() ExportProcessorConfig {
	return ExportProcessorConfig{
		PollInterval: 10 * time.Second,
		MaxRetries:   3,
		RetryDelay:   time.Second,
		QueueSize:    16,
	}
}

// ExportProcessor batches forecast exports. Item changes mark the standing
// forecast dirty; explicit requests are queued. Both are flushed on each tick
// so a burst of edits produces one export.
type ExportProcessor struct {
	forecasts *ForecastService
	exporter  ports.ReportExporter
	config    ExportProcessorConfig
	now       func() time.Time

	requests chan ForecastRequest

	mu      sync.Mutex
	dirty   bool
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewExportProcessor(forecasts *ForecastService, exporter ports.ReportExporter, config ExportProcessorConfig) *ExportProcessor {
	if config.QueueSize <= 0 {
		config.QueueSize = 16
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 1
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultExportProcessorConfig().PollInterval
	}
	return &ExportProcessor{
		forecasts: forecasts,
		exporter:  exporter,
		config:    config,
		now:       time.Now,
		requests:  make(chan ForecastRequest, config.QueueSize),
	}
}

// MarkDirty schedules an export of the standing forecast on the next flush.
func (p *ExportProcessor) MarkDirty() {
	p.mu.Lock()
	p.dirty = true
	p.mu.Unlock()
}

// Enqueue adds an explicit export request. It fails when the queue is full.
func (p *ExportProcessor) Enqueue(req ForecastRequest) error {
	select {
	case p.requests <- req:
		return nil
	default:
		return fmt.Errorf("export queue full (%d pending)", len(p.requests))
	}
}

// Start begins the processing loop. Returns an error if already running.
func (p *ExportProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("export processor is already running")
	}
	p.running = true
	stop, done := make(chan struct{}), make(chan struct{})
	p.stopCh, p.doneCh = stop, done
	p.mu.Unlock()

	go p.runLoop(ctx, stop, done)

	slog.InfoContext(ctx, "Export processor started", "poll_interval", p.config.PollInterval)
	return nil
}

// Stop gracefully stops the processor and waits for completion. It may be
// called again after a timed-out Stop.
func (p *ExportProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	if p.stopCh != nil {
		close(p.stopCh)
		p.stopCh = nil
	}
	done := p.doneCh
	p.mu.Unlock()

	select {
	case <-done:
		slog.InfoContext(ctx, "Export processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Export processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	return nil
}

// IsRunning returns whether the processor is currently running
func (p *ExportProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *ExportProcessor) runLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Flush(ctx)
		}
	}
}

// Flush exports every queued request and, if dirty, the standing forecast.
// It returns the number of successful exports.
func (p *ExportProcessor) Flush(ctx context.Context) int {
	var pending []ForecastRequest
drain:
	for {
		select {
		case req := <-p.requests:
			pending = append(pending, req)
		default:
			break drain
		}
	}

	p.mu.Lock()
	if p.dirty {
		pending = append(pending, ForecastRequest{
			StartDate:      core.DateOf(p.now()),
			InitialBalance: p.config.InitialBalance,
		})
		p.dirty = false
	}
	p.mu.Unlock()

	exported := 0
	for _, req := range pending {
		if err := p.exportWithRetry(ctx, req); err != nil {
			slog.ErrorContext(ctx, "Forecast export failed permanently",
				"start_date", req.StartDate.String(),
				"attempts", p.config.MaxRetries,
				"error", err)
			continue
		}
		exported++
	}
	return exported
}

func (p *ExportProcessor) exportWithRetry(ctx context.Context, req ForecastRequest) error {
	delay := p.config.RetryDelay
	var lastErr error
	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		report, err := p.forecasts.Calculate(ctx, req)
		if err != nil {
			return fmt.Errorf("calculate forecast: %w", err)
		}

		ref, err := p.exporter.ExportForecast(ctx, report)
		if err == nil {
			slog.InfoContext(ctx, "Exported forecast",
				"start_date", report.StartDate.String(),
				"weeks", report.NumWeeks,
				"ref", ref)
			return nil
		}
		lastErr = err
		slog.WarnContext(ctx, "Forecast export attempt failed",
			"attempt", attempt,
			"error", err)
	}
	return lastErr
}
