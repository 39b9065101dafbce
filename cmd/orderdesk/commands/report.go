package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"difflin-api/internal/store"
)

func reportCmd() *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the financial report as of a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if svcCtx.Store == nil {
				return errors.New("report requires Postgres.DSN to be configured")
			}
			if asOf == "" {
				asOf = time.Now().Format("2006-01-02")
			}
			report, err := svcCtx.Store.GenerateReport(cmd.Context(), asOf)
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "date", "", "report date (YYYY-MM-DD, default today)")
	return cmd
}

func printReport(r *store.FinancialReport) {
	fmt.Printf("Financial report as of %s\n", r.AsOfDate)
	fmt.Printf("  Cash balance:    $%.2f\n", r.CashBalance)
	fmt.Printf("  Inventory value: $%.2f\n", r.InventoryValue)
	fmt.Printf("  Total assets:    $%.2f\n", r.TotalAssets)
	if len(r.TopSellingProduct) > 0 {
		fmt.Println("  Top sellers:")
		for _, row := range r.TopSellingProduct {
			fmt.Printf("    %-28s %6d units  $%.2f\n", row.ItemName, row.Units, row.Revenue)
		}
	}
}
