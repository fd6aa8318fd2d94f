package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	applog "household-expenses/internal/log"
	"household-expenses/internal/routes"
	"household-expenses/internal/storage"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Apply pending migrations, optionally seed development data and
serve the JSON API until interrupted.`,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default :5216)")
	cmd.Flags().Bool("seed", false, "seed development data into an empty database")
	_ = viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("seed.dev", cmd.Flags().Lookup("seed"))
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()
	appLog := applog.WithComponent(logger, applog.ComponentApp)
	gin.SetMode(cfg.GinMode)

	db, err := initDB(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	store := storage.New(db)
	defer func() { _ = store.Close() }()

	srv := &http.Server{
		Addr:           cfg.Addr,
		Handler:        routes.Register(store, cfg, logger),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		appLog.Info("listening", applog.FieldOperation, applog.OpStartup, "addr", cfg.Addr, "driver", cfg.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		appLog.Info("shutting down", applog.FieldOperation, applog.OpShutdown)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
