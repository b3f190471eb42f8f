package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"medibook/internal/logger"
	"medibook/internal/mailer"
	"medibook/internal/models"
	"medibook/internal/routes"
	"medibook/internal/services"
	"medibook/internal/storage"
)

func newServeCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Set up structured logger before anything else logs.
			log := logger.New(cfg)
			slog.SetDefault(log)

			if !cfg.IsDevelopment() {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := models.InitDB(databaseConfig(cfg))
			if err != nil {
				return fmt.Errorf("init database: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("database handle: %w", err)
			}
			defer sqlDB.Close()

			opts := routes.Options{Logger: log}
			if cfg.Mailer.Enabled {
				opts.Mailer = mailer.New(cfg.Mailer)
				log.Info("email notifications enabled", slog.String("smtp_host", cfg.Mailer.Host))
			}
			if cfg.Storage.Enabled {
				images, err := storage.NewMinIOImageStore(ctx, cfg.Storage)
				if err != nil {
					return fmt.Errorf("init image storage: %w", err)
				}
				opts.Images = images
				log.Info("doctor image signing enabled", slog.String("bucket", cfg.Storage.Bucket))
			}

			appointments := services.NewAppointmentService(db, opts.Mailer, log)
			opts.Appointments = appointments

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           routes.NewRouter(db, cfg, opts),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("server listening", slog.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down", slog.Duration("timeout", shutdownTimeout))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown: %w", err)
			}
			appointments.Wait()
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Maximum time to wait for graceful shutdown")

	return cmd
}
