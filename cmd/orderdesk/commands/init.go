package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"difflin-api/internal/seed"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the schema and seed the opening inventory and ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			if svcCtx.Seeder == nil {
				return errors.New("init requires Postgres.DSN to be configured")
			}
			supply, quotes, requests := cfg.SeedPaths()
			if err := svcCtx.Seeder.Run(cmd.Context(), seed.Options{
				SupplyFile:   supply,
				QuotesFile:   quotes,
				RequestsFile: requests,
				Seed:         cfg.Seed.Seed,
				Coverage:     cfg.Seed.Coverage,
				StartDate:    cfg.Seed.StartDate,
				StartingCash: cfg.Seed.StartingCash,
			}); err != nil {
				return err
			}
			fmt.Println("Database initialized.")
			return nil
		},
	}
}
