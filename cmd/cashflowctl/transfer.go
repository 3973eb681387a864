package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cashflow/internal/core"
	"cashflow/internal/plan"
	"cashflow/internal/services"
	"cashflow/internal/storage"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Write the database items to a plan file",
		Example: "  cashflowctl export --db ./data/cashflow.db --out plan.toml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if root.dbPath == "" {
				return errors.New("--db is required")
			}
			src, err := loadSource(cmd.Context(), root)
			if err != nil {
				return err
			}
			p := plan.FromSnapshot(src.snapshot)
			p.Currency = src.settings.Currency
			p.Weeks = src.settings.DefaultForecastWeeks
			if err := plan.Save(out, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d expenses and %d revenue items to %s\n",
				len(p.Expenses), len(p.Revenue), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Plan file to write (.toml, .yaml or .yml)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newImportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "import",
		Short:   "Store the items of a plan file in the database",
		Example: "  cashflowctl import --plan plan.toml --db ./data/cashflow.db",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if root.planPath == "" || root.dbPath == "" {
				return errors.New("--plan and --db are required")
			}
			p, err := plan.Load(root.planPath)
			if err != nil {
				return err
			}
			snap, err := p.Snapshot()
			if err != nil {
				return fmt.Errorf("%s: %w", root.planPath, err)
			}
			// positional IDs are only meaningful inside the file
			for i := range snap.Expenses {
				if p.Expenses[i].ID == "" {
					snap.Expenses[i].ID = ""
				}
			}
			for i := range snap.Revenue {
				if p.Revenue[i].ID == "" {
					snap.Revenue[i].ID = ""
				}
			}

			repo, err := storage.NewSQLiteRepository(root.dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			n, err := importSnapshot(cmd, services.NewItemService(repo, repo), snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into %s\n", n, root.dbPath)
			return nil
		},
	}
}

func importSnapshot(cmd *cobra.Command, items *services.ItemService, snap core.Snapshot) (int, error) {
	ctx := cmd.Context()
	n := 0
	for _, e := range snap.Expenses {
		if _, err := items.CreateExpense(ctx, e); err != nil {
			return n, fmt.Errorf("expense %q: %w", e.Name, err)
		}
		n++
	}
	for _, r := range snap.Revenue {
		if _, err := items.CreateRevenue(ctx, r); err != nil {
			return n, fmt.Errorf("revenue %q: %w", r.Source, err)
		}
		n++
	}
	return n, nil
}
