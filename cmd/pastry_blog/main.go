// Package main provides the pastry_blog CLI: the HTTP API server plus the
// content tools used by the editors.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/pastry-blog/internal/config"
	"github.com/jonathan/pastry-blog/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configPath string
	flagConfig config.Config

	// cfg is resolved before every command runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pastry_blog",
	Short: "Pastry blog content API",
	Long:  "Serves recipes, techniques, food science articles and affiliate products over a JSON API, and ships the tools to import, browse and scale recipes.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		resolved, err := config.Resolve(flagConfig, configPath)
		if err != nil {
			return err
		}
		cfg = resolved
		logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		return nil
	},
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON config file")
	flags.StringVar(&flagConfig.DatabaseURL, "database-url", "", "PostgreSQL connection URL (default $DATABASE_URL)")
	flags.StringVar(&flagConfig.SeedFile, "seed", "", "Import file served from memory when no database is configured (default $SEED_FILE)")
	flags.StringVar(&flagConfig.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&flagConfig.LogFormat, "log-format", "", "Log format: json or console")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
