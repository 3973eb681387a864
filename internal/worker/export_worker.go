// Package worker turns item and forecast events into Sheets exports.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cashflow/internal/amqp"
	"cashflow/internal/cache"
	"cashflow/internal/core"
	"cashflow/internal/services"
)

// Exports is the part of services.ExportProcessor the worker drives.
type Exports interface {
	MarkDirty()
	Enqueue(req services.ForecastRequest) error
}

// ExportWorker implements amqp.Handler.
type ExportWorker struct {
	exports Exports
	reports cache.ReportCache
}

var _ amqp.Handler = (*ExportWorker)(nil)

// NewExportWorker wires the handler. reports may be nil when this process
// keeps no report cache of its own.
func NewExportWorker(exports Exports, reports cache.ReportCache) *ExportWorker {
	return &ExportWorker{exports: exports, reports: reports}
}

// HandleItemChanged drops cached reports and schedules a refresh of the
// standing forecast. Bursts of changes collapse into one export per flush.
func (w *ExportWorker) HandleItemChanged(ctx context.Context, msg *amqp.ItemChangedMessage) error {
	slog.InfoContext(ctx, "Processing item change",
		"item_kind", msg.Kind,
		"item_id", msg.ID,
		"action", msg.Action)

	if w.reports != nil {
		w.reports.Invalidate(ctx)
	}
	w.exports.MarkDirty()
	return nil
}

// HandleForecastRequested queues an explicit export. Messages with an invalid
// start date are logged and acknowledged; a full queue is returned as an
// error so the delivery is requeued.
func (w *ExportWorker) HandleForecastRequested(ctx context.Context, msg *amqp.ForecastRequestedMessage) error {
	req, err := RequestFromMessage(msg)
	if err != nil {
		slog.ErrorContext(ctx, "Discarding forecast request",
			"start_date", msg.StartDate,
			"error", err)
		return nil
	}

	if err := w.exports.Enqueue(req); err != nil {
		return fmt.Errorf("enqueue forecast export: %w", err)
	}

	slog.InfoContext(ctx, "Forecast export queued",
		"start_date", req.StartDate.String(),
		"num_weeks", msg.NumWeeks)
	return nil
}

// RequestFromMessage converts a ForecastRequested message. A NumWeeks of zero
// or less leaves the horizon to the default_forecast_weeks setting.
func RequestFromMessage(msg *amqp.ForecastRequestedMessage) (services.ForecastRequest, error) {
	start, err := core.ParseDateField("startDate", msg.StartDate)
	if err != nil {
		return services.ForecastRequest{}, err
	}
	req := services.ForecastRequest{
		StartDate:      start,
		InitialBalance: msg.InitialBalance,
	}
	if msg.NumWeeks > 0 {
		if msg.NumWeeks > core.MaxForecastWeeks {
			return services.ForecastRequest{}, errors.New("numWeeks exceeds maximum horizon")
		}
		n := msg.NumWeeks
		req.NumWeeks = &n
	}
	return req, nil
}
