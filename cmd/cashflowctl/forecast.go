package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"cashflow/internal/cli"
	"cashflow/internal/core"
	"cashflow/internal/services"
)

type forecastOptions struct {
	start     string
	weeks     int
	balance   float64
	threshold *float64
}

func newForecastCmd(root *rootOptions) *cobra.Command {
	opts := &forecastOptions{}
	var threshold float64
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project weekly balances",
		Example: `  cashflowctl forecast --plan plan.toml --start 2025-01-06 --weeks 12 --balance 2500
  cashflowctl forecast --db ./data/cashflow.db --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("threshold") {
				opts.threshold = &threshold
			}
			src, err := loadSource(cmd.Context(), root)
			if err != nil {
				return err
			}
			return runForecast(cmd, root, opts, src)
		},
	}
	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "First day of the forecast (default: plan start_date or today)")
	cmd.Flags().IntVarP(&opts.weeks, "weeks", "w", 0, "Number of weeks (default: plan weeks or default_forecast_weeks)")
	cmd.Flags().Float64VarP(&opts.balance, "balance", "b", 0, "Starting balance (default: plan initial_balance)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Highlight weeks ending below this balance (default: low_balance_threshold)")
	return cmd
}

func runForecast(cmd *cobra.Command, root *rootOptions, opts *forecastOptions, src *source) error {
	start := core.Today()
	if src.plan != nil {
		var err error
		if start, err = src.plan.ForecastStart(start); err != nil {
			return err
		}
	}
	if opts.start != "" {
		d, err := core.ParseDateField("start", opts.start)
		if err != nil {
			return err
		}
		start = d
	}

	weeks := src.settings.DefaultForecastWeeks
	if cmd.Flags().Changed("weeks") {
		weeks = opts.weeks
	}
	if weeks < 0 || weeks > core.MaxForecastWeeks {
		return core.NewValidationError("weeks", "must be between 0 and %d", core.MaxForecastWeeks)
	}

	balance := opts.balance
	if !cmd.Flags().Changed("balance") && src.plan != nil {
		balance = src.plan.InitialBalance
	}

	report := services.GenerateForecast(src.snapshot, start, weeks, balance)

	if root.jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	threshold := src.settings.LowBalanceThreshold
	if opts.threshold != nil {
		threshold = *opts.threshold
	}
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderForecast(report, src.settings.Currency, threshold))
	if week := report.FirstWeekBelow(threshold); week >= 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Balance drops below %s in week %d (%s)\n",
			core.FormatAmount(threshold, src.settings.Currency), week+1, report.Entries[week].Date)
	}
	return nil
}
