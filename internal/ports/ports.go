// Package ports declares the interfaces between the forecast services and
// the adapters that store items, export reports and send notifications.
package ports

import (
	"context"

	"cashflow/internal/core"
)

type (
	ExpenseStore interface {
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		GetExpense(ctx context.Context, id string) (core.Expense, error)
		CreateExpense(ctx context.Context, e core.Expense) error
		UpdateExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id string) error
	}

	RevenueStore interface {
		ListRevenue(ctx context.Context) ([]core.Revenue, error)
		GetRevenue(ctx context.Context, id string) (core.Revenue, error)
		CreateRevenue(ctx context.Context, r core.Revenue) error
		UpdateRevenue(ctx context.Context, r core.Revenue) error
		DeleteRevenue(ctx context.Context, id string) error
	}

	SettingsStore interface {
		GetSettings(ctx context.Context) (core.Settings, error)
		UpdateSettings(ctx context.Context, s core.Settings) error
	}

	// SnapshotReader returns a consistent copy of all items for one forecast.
	SnapshotReader interface {
		Snapshot(ctx context.Context) (core.Snapshot, error)
	}

	// Store is everything a backend provides.
	Store interface {
		ExpenseStore
		RevenueStore
		SettingsStore
		SnapshotReader
	}

	// ReportExporter pushes a finished report somewhere outside the service.
	ReportExporter interface {
		ExportForecast(ctx context.Context, r core.ForecastReport) (ref string, err error)
	}

	Notifier interface {
		NotifyLowBalance(ctx context.Context, a core.LowBalanceAlert) error
	}
)
