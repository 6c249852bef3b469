package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/pastry-blog/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable or --database-url is required")
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
	return nil
}
