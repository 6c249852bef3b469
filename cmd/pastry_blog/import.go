package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/pastry-blog/internal/observability"
	"github.com/spf13/cobra"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import recipes, techniques, science articles and products",
	Long:  "Validates a JSON import file against the import schema and creates every entry in the database. Entries whose slug already exists are skipped.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate the file and import into memory only")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	c := cfg
	c.SeedFile = ""
	if importDryRun {
		c.DatabaseURL = ""
	} else if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable or --database-url is required (use --dry-run to validate only)")
	}

	store, closeStore, err := openStore(cmd.Context(), c)
	if err != nil {
		return err
	}
	defer closeStore()

	result, err := importFile(cmd.Context(), store, args[0])
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintImportResult(result)
	if importDryRun {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Dry run: nothing was written")
	}
	return nil
}
