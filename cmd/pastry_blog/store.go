package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/pastry-blog/internal/config"
	"github.com/jonathan/pastry-blog/internal/content"
	"github.com/jonathan/pastry-blog/internal/db"
	"github.com/jonathan/pastry-blog/internal/logging"
)

// openStore connects to PostgreSQL when a database URL is configured.
// Otherwise it returns an in-memory store loaded from the seed file, if any.
func openStore(ctx context.Context, c config.Config) (content.Store, func(), error) {
	if c.DatabaseURL != "" {
		database, err := db.Connect(ctx, c.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return database, database.Close, nil
	}

	store := content.NewMemoryStore()
	if c.SeedFile == "" {
		logging.Warn().Msg("no database or seed file configured, serving an empty in-memory store")
		return store, func() {}, nil
	}

	result, err := importFile(ctx, store, c.SeedFile)
	if err != nil {
		return nil, nil, err
	}
	logging.Info().
		Str("file", c.SeedFile).
		Int("created", result.Created()).
		Int("skipped", result.Skipped).
		Msg("seed file loaded into memory")
	return store, func() {}, nil
}

// importFile validates path against the import schema and loads it into store.
func importFile(ctx context.Context, store content.Store, path string) (content.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return content.ImportResult{}, fmt.Errorf("failed to read import file: %w", err)
	}
	file, err := content.ParseImport(data)
	if err != nil {
		return content.ImportResult{}, fmt.Errorf("invalid import file %s: %w", path, err)
	}
	result, err := content.Import(ctx, store, file)
	if err != nil {
		return result, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return result, nil
}
