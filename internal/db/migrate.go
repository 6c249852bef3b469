package db

import (
	"context"
	"fmt"
)

// migrations are idempotent and run in order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS recipes (
		id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		slug            TEXT NOT NULL UNIQUE,
		title           TEXT NOT NULL,
		excerpt         TEXT NOT NULL DEFAULT '',
		body_html       TEXT NOT NULL DEFAULT '',
		categories      TEXT[] NOT NULL DEFAULT '{}',
		tags            TEXT[] NOT NULL DEFAULT '{}',
		difficulty      TEXT NOT NULL,
		prep_minutes    INTEGER NOT NULL DEFAULT 0 CHECK (prep_minutes >= 0),
		cook_minutes    INTEGER NOT NULL DEFAULT 0 CHECK (cook_minutes >= 0),
		servings        INTEGER NOT NULL CHECK (servings > 0),
		pan_diameter_cm DOUBLE PRECISION CHECK (pan_diameter_cm > 0),
		ingredients     JSONB NOT NULL DEFAULT '[]',
		published_at    TIMESTAMPTZ,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_published_at ON recipes (published_at DESC)`,

	`CREATE TABLE IF NOT EXISTS techniques (
		id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		slug             TEXT NOT NULL UNIQUE,
		title            TEXT NOT NULL,
		excerpt          TEXT NOT NULL DEFAULT '',
		body_html        TEXT NOT NULL DEFAULT '',
		category         TEXT NOT NULL,
		tags             TEXT[] NOT NULL DEFAULT '{}',
		difficulty       TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL DEFAULT 0 CHECK (duration_minutes >= 0),
		published_at     TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_techniques_published_at ON techniques (published_at DESC)`,

	`CREATE TABLE IF NOT EXISTS science_articles (
		id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		slug            TEXT NOT NULL UNIQUE,
		title           TEXT NOT NULL,
		excerpt         TEXT NOT NULL DEFAULT '',
		body_html       TEXT NOT NULL DEFAULT '',
		category        TEXT NOT NULL,
		tags            TEXT[] NOT NULL DEFAULT '{}',
		difficulty      TEXT NOT NULL,
		reading_minutes INTEGER NOT NULL DEFAULT 0 CHECK (reading_minutes >= 0),
		published_at    TIMESTAMPTZ,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_science_articles_published_at ON science_articles (published_at DESC)`,

	`CREATE TABLE IF NOT EXISTS products (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		asin          TEXT UNIQUE,
		name          TEXT NOT NULL,
		brand         TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		affiliate_url TEXT NOT NULL,
		image_url     TEXT NOT NULL DEFAULT '',
		price         NUMERIC(10, 2) CHECK (price >= 0),
		currency      TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
}

// Migrate creates the content tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration %d: %w", i+1, err)
		}
	}
	return nil
}
