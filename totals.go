package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"household-expenses/internal/ledger"
	"household-expenses/internal/storage"
)

func totalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Print income, expense and balance per person",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.SeedDev = false

			db, err := initDB(cmd.Context(), cfg, slog.Default())
			if err != nil {
				return err
			}
			store := storage.New(db)
			defer func() { _ = store.Close() }()

			report, err := store.Totals(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			renderTotals(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the report as JSON")
	return cmd
}

func renderTotals(out io.Writer, r ledger.Report) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	if len(r.People) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("(nenhuma pessoa cadastrada)"))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
		headerStyle.Render("ID"),
		headerStyle.Render("Nome"),
		headerStyle.Render("Receitas"),
		headerStyle.Render("Despesas"),
		headerStyle.Render("Saldo"))
	for _, p := range r.People {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
			p.PersonID, p.Name,
			p.Income.StringFixed(2), p.Expense.StringFixed(2), p.Balance.StringFixed(2))
	}
	fmt.Fprintf(w, "\t%s\t%s\t%s\t%s\t\n",
		headerStyle.Render("Total"),
		r.TotalIncome.StringFixed(2), r.TotalExpense.StringFixed(2), r.NetBalance.StringFixed(2))
	_ = w.Flush()
}
