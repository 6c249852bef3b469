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
// Science Article Methods
// -----------------------------------------------------------------------------

const scienceColumns = `id, slug, title, excerpt, body_html, category, tags, difficulty,
	reading_minutes, published_at, created_at, updated_at`

func scanScience(row pgx.Row) (*types.ScienceArticle, error) {
	var a types.ScienceArticle
	var publishedAt *time.Time

	err := row.Scan(&a.ID, &a.Slug, &a.Title, &a.Excerpt, &a.BodyHTML, &a.Category, &a.Tags,
		&a.Difficulty, &a.ReadingMinutes, &publishedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.PublishedAt = fromNullTime(publishedAt)
	return &a, nil
}

func (db *DB) queryScience(ctx context.Context, sql string, args ...any) ([]types.ScienceArticle, error) {
	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query science articles: %w", err)
	}
	defer rows.Close()

	articles := []types.ScienceArticle{}
	for rows.Next() {
		a, err := scanScience(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan science article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate science articles: %w", err)
	}
	return articles, nil
}

// ListScience retrieves all published science articles, newest first
func (db *DB) ListScience(ctx context.Context) ([]types.ScienceArticle, error) {
	return db.queryScience(ctx,
		`SELECT `+scienceColumns+` FROM science_articles WHERE `+publishedClause+`
		 ORDER BY published_at DESC, slug`)
}

// GetScience retrieves a published science article by slug
func (db *DB) GetScience(ctx context.Context, slug string) (*types.ScienceArticle, error) {
	a, err := scanScience(db.pool.QueryRow(ctx,
		`SELECT `+scienceColumns+` FROM science_articles WHERE slug = $1 AND `+publishedClause,
		slug,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get science article: %w", err)
	}
	return a, nil
}

// SearchScience finds published science articles whose title, excerpt or tags contain term
func (db *DB) SearchScience(ctx context.Context, term string, limit int) ([]types.ScienceArticle, error) {
	return db.queryScience(ctx,
		`SELECT `+scienceColumns+` FROM science_articles
		 WHERE `+publishedClause+`
		   AND (title ILIKE $1 OR excerpt ILIKE $1
		        OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $1))
		 ORDER BY published_at DESC
		 LIMIT $2`,
		likePattern(term), searchLimit(limit),
	)
}

// CreateScience inserts a science article and fills in its ID and timestamps
func (db *DB) CreateScience(ctx context.Context, a *types.ScienceArticle) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO science_articles (id, slug, title, excerpt, body_html, category, tags, difficulty,
		                         reading_minutes, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		a.ID, a.Slug, a.Title, a.Excerpt, a.BodyHTML, a.Category, nonNil(a.Tags), a.Difficulty,
		a.ReadingMinutes, nullTime(a.PublishedAt),
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create science article %s: %w", a.Slug, mapWriteError(err))
	}
	return nil
}

// UpdateScience replaces every editable field of an existing science article
func (db *DB) UpdateScience(ctx context.Context, a *types.ScienceArticle) error {
	err := db.pool.QueryRow(ctx,
		`UPDATE science_articles SET slug = $2, title = $3, excerpt = $4, body_html = $5, category = $6,
		        tags = $7, difficulty = $8, reading_minutes = $9, published_at = $10, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		a.ID, a.Slug, a.Title, a.Excerpt, a.BodyHTML, a.Category, nonNil(a.Tags), a.Difficulty,
		a.ReadingMinutes, nullTime(a.PublishedAt),
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.ErrNotFound
		}
		return fmt.Errorf("failed to update science article %s: %w", a.Slug, mapWriteError(err))
	}
	return nil
}

// DeleteScience removes a science article
func (db *DB) DeleteScience(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM science_articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete science article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
