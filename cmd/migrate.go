package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"medibook/internal/models"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := models.OpenDB(databaseConfig(cfg))
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Running migrations on %s database.\n", cfg.Database.Driver)
			if err := models.AutoMigrate(db.WithContext(cmd.Context())); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations executed successfully.")
			return nil
		},
	}
}
