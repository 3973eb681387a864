package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cashflow/internal/core"
	"cashflow/internal/plan"
	"cashflow/internal/storage"
)

type rootOptions struct {
	planPath string
	dbPath   string
	jsonOut  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "cashflowctl",
		Short:         "Cash flow forecasts from the command line",
		Long:          "Project weekly balances from a TOML/YAML plan file or a cashflow SQLite database.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.planPath, "plan", "p", "", "Plan file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVarP(&opts.dbPath, "db", "d", "", "cashflow SQLite database")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print JSON instead of a table")

	root.AddCommand(
		newForecastCmd(opts),
		newItemsCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
	)
	return root
}

// source is what a command reads items and defaults from.
type source struct {
	snapshot core.Snapshot
	settings core.Settings
	plan     *plan.Plan
}

// loadSource reads either the plan file or the database. Exactly one must be set.
func loadSource(ctx context.Context, opts *rootOptions) (*source, error) {
	switch {
	case opts.planPath != "" && opts.dbPath != "":
		return nil, errors.New("use either --plan or --db, not both")
	case opts.planPath != "":
		p, err := plan.Load(opts.planPath)
		if err != nil {
			return nil, err
		}
		snap, err := p.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.planPath, err)
		}
		settings := core.DefaultSettings()
		if p.Currency != "" {
			settings.Currency = p.Currency
		}
		if p.Weeks > 0 {
			settings.DefaultForecastWeeks = p.Weeks
		}
		return &source{snapshot: snap, settings: settings, plan: p}, nil
	case opts.dbPath != "":
		repo, err := storage.NewSQLiteRepository(opts.dbPath)
		if err != nil {
			return nil, err
		}
		defer repo.Close()
		snap, err := repo.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		settings, err := repo.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		return &source{snapshot: snap, settings: settings}, nil
	}
	return nil, errors.New("one of --plan or --db is required")
}
