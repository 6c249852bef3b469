package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/pastry-blog/internal/types"
)

// -----------------------------------------------------------------------------
// Recipe Methods
// -----------------------------------------------------------------------------

const recipeColumns = `id, slug, title, excerpt, body_html, categories, tags, difficulty,
	prep_minutes, cook_minutes, servings, pan_diameter_cm, ingredients,
	published_at, created_at, updated_at`

const publishedClause = `published_at IS NOT NULL AND published_at <= NOW()`

func scanRecipe(row pgx.Row) (*types.Recipe, error) {
	var r types.Recipe
	var ingredientsJSON []byte
	var publishedAt *time.Time

	err := row.Scan(&r.ID, &r.Slug, &r.Title, &r.Excerpt, &r.BodyHTML, &r.Categories, &r.Tags,
		&r.Difficulty, &r.PrepMinutes, &r.CookMinutes, &r.Servings, &r.PanDiameterCM,
		&ingredientsJSON, &publishedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	r.PublishedAt = fromNullTime(publishedAt)
	if ingredientsJSON != nil {
		if err := json.Unmarshal(ingredientsJSON, &r.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ingredients of %s: %w", r.Slug, err)
		}
	}
	return &r, nil
}

func (db *DB) queryRecipes(ctx context.Context, sql string, args ...any) ([]types.Recipe, error) {
	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []types.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}
	return recipes, nil
}

// ListRecipes retrieves all published recipes, newest first
func (db *DB) ListRecipes(ctx context.Context) ([]types.Recipe, error) {
	return db.queryRecipes(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE `+publishedClause+`
		 ORDER BY published_at DESC, slug`)
}

// GetRecipe retrieves a published recipe by slug
func (db *DB) GetRecipe(ctx context.Context, slug string) (*types.Recipe, error) {
	r, err := scanRecipe(db.pool.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE slug = $1 AND `+publishedClause,
		slug,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return r, nil
}

// SearchRecipes finds published recipes whose title, excerpt or tags contain term
func (db *DB) SearchRecipes(ctx context.Context, term string, limit int) ([]types.Recipe, error) {
	return db.queryRecipes(ctx,
		`SELECT `+recipeColumns+` FROM recipes
		 WHERE `+publishedClause+`
		   AND (title ILIKE $1 OR excerpt ILIKE $1
		        OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $1))
		 ORDER BY published_at DESC
		 LIMIT $2`,
		likePattern(term), searchLimit(limit),
	)
}

// CreateRecipe inserts a recipe and fills in its ID and timestamps
func (db *DB) CreateRecipe(ctx context.Context, r *types.Recipe) error {
	ingredientsJSON, err := json.Marshal(ingredientsOrEmpty(r.Ingredients))
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO recipes (id, slug, title, excerpt, body_html, categories, tags, difficulty,
		                      prep_minutes, cook_minutes, servings, pan_diameter_cm, ingredients, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING created_at, updated_at`,
		r.ID, r.Slug, r.Title, r.Excerpt, r.BodyHTML, nonNil(r.Categories), nonNil(r.Tags), r.Difficulty,
		r.PrepMinutes, r.CookMinutes, r.Servings, r.PanDiameterCM, ingredientsJSON, nullTime(r.PublishedAt),
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recipe %s: %w", r.Slug, mapWriteError(err))
	}
	return nil
}

// UpdateRecipe replaces every editable field of an existing recipe
func (db *DB) UpdateRecipe(ctx context.Context, r *types.Recipe) error {
	ingredientsJSON, err := json.Marshal(ingredientsOrEmpty(r.Ingredients))
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`UPDATE recipes SET slug = $2, title = $3, excerpt = $4, body_html = $5, categories = $6,
		        tags = $7, difficulty = $8, prep_minutes = $9, cook_minutes = $10, servings = $11,
		        pan_diameter_cm = $12, ingredients = $13, published_at = $14, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		r.ID, r.Slug, r.Title, r.Excerpt, r.BodyHTML, nonNil(r.Categories), nonNil(r.Tags), r.Difficulty,
		r.PrepMinutes, r.CookMinutes, r.Servings, r.PanDiameterCM, ingredientsJSON, nullTime(r.PublishedAt),
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.ErrNotFound
		}
		return fmt.Errorf("failed to update recipe %s: %w", r.Slug, mapWriteError(err))
	}
	return nil
}

// DeleteRecipe removes a recipe
func (db *DB) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func ingredientsOrEmpty(groups []types.IngredientGroup) []types.IngredientGroup {
	if groups == nil {
		return []types.IngredientGroup{}
	}
	return groups
}
