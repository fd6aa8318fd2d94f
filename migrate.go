package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	applog "household-expenses/internal/log"
	"household-expenses/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Bring the database schema up to the latest version.

With --status, print the applied version without changing anything.`,
		RunE: runMigrate,
	}
	cmd.Flags().Bool("status", false, "show current migration status without applying changes")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dsn, err := cfg.MigrationDSN()
	if err != nil {
		return err
	}
	logger := applog.WithComponent(slog.Default(), applog.ComponentMigrate)

	if !status {
		logger.Info("running migrations", applog.FieldOperation, applog.OpMigrate, "driver", cfg.Driver)
		if err := storage.RunMigrations(cfg.Driver, dsn); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	v, dirty, err := storage.MigrationVersion(cfg.Driver, dsn)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "driver: %s\nversion: %d\ndirty: %t\n", cfg.Driver, v, dirty)
	return nil
}
