package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/pastry-blog/internal/types"
)

// -----------------------------------------------------------------------------
// Product Methods
// -----------------------------------------------------------------------------

const productColumns = `id, asin, name, brand, category, description, affiliate_url,
	image_url, price, currency, created_at, updated_at`

func scanProduct(row pgx.Row) (*types.Product, error) {
	var p types.Product
	var asin *string

	err := row.Scan(&p.ID, &asin, &p.Name, &p.Brand, &p.Category, &p.Description, &p.AffiliateURL,
		&p.ImageURL, &p.Price, &p.Currency, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if asin != nil {
		p.ASIN = *asin
	}
	return &p, nil
}

// ListProducts retrieves products ordered by category and name, optionally
// restricted to one category (case-insensitive)
func (db *DB) ListProducts(ctx context.Context, category string) ([]types.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	argNum := 1

	if category = strings.TrimSpace(category); category != "" {
		query += fmt.Sprintf(" AND LOWER(category) = LOWER($%d)", argNum)
		args = append(args, category)
		argNum++
	}
	query += " ORDER BY category, name"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []types.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a product by ID
func (db *DB) GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	p, err := scanProduct(db.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`,
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// CreateProduct inserts a product and fills in its ID and timestamps
func (db *DB) CreateProduct(ctx context.Context, p *types.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO products (id, asin, name, brand, category, description, affiliate_url,
		                       image_url, price, currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		p.ID, nullString(p.ASIN), p.Name, p.Brand, p.Category, p.Description, p.AffiliateURL,
		p.ImageURL, p.Price, p.Currency,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product %s: %w", p.Name, mapWriteError(err))
	}
	return nil
}

// UpdateProduct replaces every editable field of an existing product
func (db *DB) UpdateProduct(ctx context.Context, p *types.Product) error {
	err := db.pool.QueryRow(ctx,
		`UPDATE products SET asin = $2, name = $3, brand = $4, category = $5, description = $6,
		        affiliate_url = $7, image_url = $8, price = $9, currency = $10, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		p.ID, nullString(p.ASIN), p.Name, p.Brand, p.Category, p.Description, p.AffiliateURL,
		p.ImageURL, p.Price, p.Currency,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.ErrNotFound
		}
		return fmt.Errorf("failed to update product %s: %w", p.Name, mapWriteError(err))
	}
	return nil
}

// DeleteProduct removes a product
func (db *DB) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
