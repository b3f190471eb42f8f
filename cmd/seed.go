package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"medibook/internal/models"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default services, doctors and locations",
		Long:  "Seed is idempotent: rows that already exist by name are left as they are.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := models.InitDB(databaseConfig(cfg))
			if err != nil {
				return fmt.Errorf("init database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			res, err := models.Seed(db.WithContext(cmd.Context()))
			if err != nil {
				return fmt.Errorf("failed to seed catalog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d services, %d doctors, %d locations.\n",
				res.Services, res.Doctors, res.Locations)
			return nil
		},
	}
}
