package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"

	"medibook/internal/config"
	"medibook/internal/models"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "medibook",
	Short: "Medibook doctor appointment booking API.",
	Long: `Medibook is the backend of a doctor appointment booking site. Patients
sign up, browse doctors and services, book and cancel appointments, review
doctors they have seen, and read the notifications each booking produces.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global env file flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
}

// loadConfig reads the env file when it exists and builds the configuration.
// Variables already set in the environment win over the file.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func databaseConfig(cfg *config.Config) models.DatabaseConfig {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() && cfg.Logging.Level == "debug" {
		logLevel = gormlogger.Info
	}
	return models.DatabaseConfig{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeMinutes) * time.Minute,
		LogLevel:        logLevel,
	}
}
