package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"cashflow/internal/cli"
	"cashflow/internal/core"
	"cashflow/internal/plan"
)

func newItemsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List expenses and revenue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := loadSource(cmd.Context(), root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if root.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan.FromSnapshot(src.snapshot))
			}
			fmt.Fprint(out, cli.RenderTable(expenseTable(src.snapshot.Expenses, src.settings.Currency)))
			fmt.Fprint(out, cli.RenderTable(revenueTable(src.snapshot.Revenue, src.settings.Currency)))
			return nil
		},
	}
}

func expenseTable(items []core.Expense, currency string) cli.Table {
	t := cli.Table{
		Title:   fmt.Sprintf("Expenses (%d)", len(items)),
		Headers: []string{"ID", "Name", "Category", "Schedule", "Amount"},
	}
	for _, e := range items {
		t.Rows = append(t.Rows, []string{
			e.ID, e.Name, e.Category,
			describeSchedule(e.Schedule()),
			core.FormatAmount(e.Amount, currency),
		})
	}
	return t
}

func revenueTable(items []core.Revenue, currency string) cli.Table {
	t := cli.Table{
		Title:   fmt.Sprintf("Revenue (%d)", len(items)),
		Headers: []string{"ID", "Source", "Probability", "Schedule", "Amount"},
	}
	for _, r := range items {
		t.Rows = append(t.Rows, []string{
			r.ID, r.Source,
			fmt.Sprintf("%.0f%%", r.Probability*100),
			describeSchedule(r.Schedule()),
			core.FormatAmount(r.Amount, currency),
		})
	}
	return t
}

func describeSchedule(s core.Schedule) string {
	if !s.IsRecurring || s.Frequency == core.OneTime {
		return "once on " + s.StartDate.String()
	}
	desc := fmt.Sprintf("%s from %s", s.Frequency, s.StartDate)
	if s.EndDate != nil {
		desc += " to " + s.EndDate.String()
	}
	return desc
}
