package main

import (
	"fmt"

	"github.com/jonathan/pastry-blog/internal/config"
	"github.com/jonathan/pastry-blog/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the public content API and, when an admin account is configured, the admin API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&flagConfig.Port, "port", 0, "Port to listen on (default $PORT or 8080)")
	serveCmd.Flags().StringVar(&flagConfig.CORSOrigin, "cors-origin", "", "Allowed browser origin (default $CORS_ORIGIN or *)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	auth, err := config.NewAuthConfig()
	if err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}

	store, closeStore, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return server.New(cfg, auth, store).Start()
}
