package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/pastry-blog/internal/types"
)

// -----------------------------------------------------------------------------
// Technique Methods
// -----------------------------------------------------------------------------

const techniqueColumns = `id, slug, title, excerpt, body_html, category, tags, difficulty,
	duration_minutes, published_at, created_at, updated_at`

func scanTechnique(row pgx.Row) (*types.Technique, error) {
	var t types.Technique
	var publishedAt *time.Time

	err := row.Scan(&t.ID, &t.Slug, &t.Title, &t.Excerpt, &t.BodyHTML, &t.Category, &t.Tags,
		&t.Difficulty, &t.DurationMinutes, &publishedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.PublishedAt = fromNullTime(publishedAt)
	return &t, nil
}

func (db *DB) queryTechniques(ctx context.Context, sql string, args ...any) ([]types.Technique, error) {
	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query techniques: %w", err)
	}
	defer rows.Close()

	techniques := []types.Technique{}
	for rows.Next() {
		t, err := scanTechnique(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan technique: %w", err)
		}
		techniques = append(techniques, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate techniques: %w", err)
	}
	return techniques, nil
}

// ListTechniques retrieves all published techniques, newest first
func (db *DB) ListTechniques(ctx context.Context) ([]types.Technique, error) {
	return db.queryTechniques(ctx,
		`SELECT `+techniqueColumns+` FROM techniques WHERE `+publishedClause+`
		 ORDER BY published_at DESC, slug`)
}

// GetTechnique retrieves a published technique by slug
func (db *DB) GetTechnique(ctx context.Context, slug string) (*types.Technique, error) {
	t, err := scanTechnique(db.pool.QueryRow(ctx,
		`SELECT `+techniqueColumns+` FROM techniques WHERE slug = $1 AND `+publishedClause,
		slug,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get technique: %w", err)
	}
	return t, nil
}

// SearchTechniques finds published techniques whose title, excerpt or tags contain term
func (db *DB) SearchTechniques(ctx context.Context, term string, limit int) ([]types.Technique, error) {
	return db.queryTechniques(ctx,
		`SELECT `+techniqueColumns+` FROM techniques
		 WHERE `+publishedClause+`
		   AND (title ILIKE $1 OR excerpt ILIKE $1
		        OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $1))
		 ORDER BY published_at DESC
		 LIMIT $2`,
		likePattern(term), searchLimit(limit),
	)
}

// CreateTechnique inserts a technique and fills in its ID and timestamps
func (db *DB) CreateTechnique(ctx context.Context, t *types.Technique) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO techniques (id, slug, title, excerpt, body_html, category, tags, difficulty,
		                         duration_minutes, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		t.ID, t.Slug, t.Title, t.Excerpt, t.BodyHTML, t.Category, nonNil(t.Tags), t.Difficulty,
		t.DurationMinutes, nullTime(t.PublishedAt),
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create technique %s: %w", t.Slug, mapWriteError(err))
	}
	return nil
}

// UpdateTechnique replaces every editable field of an existing technique
func (db *DB) UpdateTechnique(ctx context.Context, t *types.Technique) error {
	err := db.pool.QueryRow(ctx,
		`UPDATE techniques SET slug = $2, title = $3, excerpt = $4, body_html = $5, category = $6,
		        tags = $7, difficulty = $8, duration_minutes = $9, published_at = $10, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		t.ID, t.Slug, t.Title, t.Excerpt, t.BodyHTML, t.Category, nonNil(t.Tags), t.Difficulty,
		t.DurationMinutes, nullTime(t.PublishedAt),
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.ErrNotFound
		}
		return fmt.Errorf("failed to update technique %s: %w", t.Slug, mapWriteError(err))
	}
	return nil
}

// DeleteTechnique removes a technique
func (db *DB) DeleteTechnique(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM techniques WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete technique: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
