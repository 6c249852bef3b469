// Package content connects the pure catalog and scaling code to a data
// source: listings, cross-collection search, recipe scaling and imports.
package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/pastry-blog/internal/types"
)

// Source is the read side of the content store. List, Get and Search only
// return published content. Get returns (nil, nil) when nothing matches.
type Source interface {
	ListRecipes(ctx context.Context) ([]types.Recipe, error)
	GetRecipe(ctx context.Context, slug string) (*types.Recipe, error)
	SearchRecipes(ctx context.Context, term string, limit int) ([]types.Recipe, error)

	ListTechniques(ctx context.Context) ([]types.Technique, error)
	GetTechnique(ctx context.Context, slug string) (*types.Technique, error)
	SearchTechniques(ctx context.Context, term string, limit int) ([]types.Technique, error)

	ListScience(ctx context.Context) ([]types.ScienceArticle, error)
	GetScience(ctx context.Context, slug string) (*types.ScienceArticle, error)
	SearchScience(ctx context.Context, term string, limit int) ([]types.ScienceArticle, error)

	// ListProducts returns affiliate products, optionally restricted to one
	// category (empty means all).
	ListProducts(ctx context.Context, category string) ([]types.Product, error)
}

// Store adds the admin writes. Create assigns the ID and timestamps and
// fails with types.ErrAlreadyExists on a duplicate slug (or ASIN for
// products). Update and Delete fail with types.ErrNotFound for unknown ids.
type Store interface {
	Source

	CreateRecipe(ctx context.Context, r *types.Recipe) error
	UpdateRecipe(ctx context.Context, r *types.Recipe) error
	DeleteRecipe(ctx context.Context, id uuid.UUID) error

	CreateTechnique(ctx context.Context, t *types.Technique) error
	UpdateTechnique(ctx context.Context, t *types.Technique) error
	DeleteTechnique(ctx context.Context, id uuid.UUID) error

	CreateScience(ctx context.Context, a *types.ScienceArticle) error
	UpdateScience(ctx context.Context, a *types.ScienceArticle) error
	DeleteScience(ctx context.Context, id uuid.UUID) error

	GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error)
	CreateProduct(ctx context.Context, p *types.Product) error
	UpdateProduct(ctx context.Context, p *types.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
