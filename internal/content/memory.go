package content

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/pastry-blog/internal/catalog"
	"github.com/jonathan/pastry-blog/internal/logging"
	"github.com/jonathan/pastry-blog/internal/types"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps all content in memory. It backs tests and the seed-file
// mode of the server. Safe for concurrent use. Returned items share their
// slices with the store and must be treated as read-only.
type MemoryStore struct {
	mu         sync.RWMutex
	now        func() time.Time
	recipes    *table[types.Recipe]
	techniques *table[types.Technique]
	science    *table[types.ScienceArticle]
	products   *table[types.Product]
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now: time.Now,
		recipes: newTable(accessors[types.Recipe]{
			id:        func(r *types.Recipe) *uuid.UUID { return &r.ID },
			key:       func(r *types.Recipe) string { return r.Slug },
			published: func(r *types.Recipe) time.Time { return r.PublishedAt },
			stamps:    func(r *types.Recipe) (*time.Time, *time.Time) { return &r.CreatedAt, &r.UpdatedAt },
			facets:    catalog.RecipeFacets,
		}),
		techniques: newTable(accessors[types.Technique]{
			id:        func(t *types.Technique) *uuid.UUID { return &t.ID },
			key:       func(t *types.Technique) string { return t.Slug },
			published: func(t *types.Technique) time.Time { return t.PublishedAt },
			stamps:    func(t *types.Technique) (*time.Time, *time.Time) { return &t.CreatedAt, &t.UpdatedAt },
			facets:    catalog.TechniqueFacets,
		}),
		science: newTable(accessors[types.ScienceArticle]{
			id:        func(a *types.ScienceArticle) *uuid.UUID { return &a.ID },
			key:       func(a *types.ScienceArticle) string { return a.Slug },
			published: func(a *types.ScienceArticle) time.Time { return a.PublishedAt },
			stamps:    func(a *types.ScienceArticle) (*time.Time, *time.Time) { return &a.CreatedAt, &a.UpdatedAt },
			facets:    catalog.ScienceFacets,
		}),
		products: newTable(accessors[types.Product]{
			id:     func(p *types.Product) *uuid.UUID { return &p.ID },
			key:    func(p *types.Product) string { return p.ASIN },
			stamps: func(p *types.Product) (*time.Time, *time.Time) { return &p.CreatedAt, &p.UpdatedAt },
		}),
	}
}

// WithClock replaces the clock used for publish checks and timestamps.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// -----------------------------------------------------------------------------
// Recipes
// -----------------------------------------------------------------------------

// ListRecipes returns the published recipes in insertion order.
func (s *MemoryStore) ListRecipes(_ context.Context) ([]types.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.published(s.now()), nil
}

// GetRecipe returns a published recipe by slug.
func (s *MemoryStore) GetRecipe(_ context.Context, slug string) (*types.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.bySlug(slug, s.now()), nil
}

// SearchRecipes returns up to limit published recipes matching term, newest first.
func (s *MemoryStore) SearchRecipes(_ context.Context, term string, limit int) ([]types.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.search(term, limit, s.now()), nil
}

// CreateRecipe stores a new recipe.
func (s *MemoryStore) CreateRecipe(_ context.Context, r *types.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipes.create(r, s.now())
}

// UpdateRecipe replaces an existing recipe.
func (s *MemoryStore) UpdateRecipe(_ context.Context, r *types.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipes.update(r, s.now())
}

// DeleteRecipe removes a recipe.
func (s *MemoryStore) DeleteRecipe(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipes.delete(id)
}

// -----------------------------------------------------------------------------
// Techniques
// -----------------------------------------------------------------------------

// ListTechniques returns the published techniques in insertion order.
func (s *MemoryStore) ListTechniques(_ context.Context) ([]types.Technique, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.techniques.published(s.now()), nil
}

// GetTechnique returns a published technique by slug.
func (s *MemoryStore) GetTechnique(_ context.Context, slug string) (*types.Technique, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.techniques.bySlug(slug, s.now()), nil
}

// SearchTechniques returns up to limit published techniques matching term.
func (s *MemoryStore) SearchTechniques(_ context.Context, term string, limit int) ([]types.Technique, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.techniques.search(term, limit, s.now()), nil
}

// CreateTechnique stores a new technique.
func (s *MemoryStore) CreateTechnique(_ context.Context, t *types.Technique) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.techniques.create(t, s.now())
}

// UpdateTechnique replaces an existing technique.
func (s *MemoryStore) UpdateTechnique(_ context.Context, t *types.Technique) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.techniques.update(t, s.now())
}

// DeleteTechnique removes a technique.
func (s *MemoryStore) DeleteTechnique(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.techniques.delete(id)
}

// -----------------------------------------------------------------------------
// Science articles
// -----------------------------------------------------------------------------

// ListScience returns the published science articles in insertion order.
func (s *MemoryStore) ListScience(_ context.Context) ([]types.ScienceArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.science.published(s.now()), nil
}

// GetScience returns a published science article by slug.
func (s *MemoryStore) GetScience(_ context.Context, slug string) (*types.ScienceArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.science.bySlug(slug, s.now()), nil
}

// SearchScience returns up to limit published science articles matching term.
func (s *MemoryStore) SearchScience(_ context.Context, term string, limit int) ([]types.ScienceArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.science.search(term, limit, s.now()), nil
}

// CreateScience stores a new science article.
func (s *MemoryStore) CreateScience(_ context.Context, a *types.ScienceArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.science.create(a, s.now())
}

// UpdateScience replaces an existing science article.
func (s *MemoryStore) UpdateScience(_ context.Context, a *types.ScienceArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.science.update(a, s.now())
}

// DeleteScience removes a science article.
func (s *MemoryStore) DeleteScience(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.science.delete(id)
}

// -----------------------------------------------------------------------------
// Products
// -----------------------------------------------------------------------------

// ListProducts returns products ordered by category then name.
func (s *MemoryStore) ListProducts(_ context.Context, category string) ([]types.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []types.Product{}
	for _, p := range s.products.all() {
		if category == "" || strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b types.Product) int {
		return cmp.Or(strings.Compare(a.Category, b.Category), strings.Compare(a.Name, b.Name))
	})
	return out, nil
}

// GetProduct returns a product by ID.
func (s *MemoryStore) GetProduct(_ context.Context, id uuid.UUID) (*types.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.get(id), nil
}

// CreateProduct stores a new product.
func (s *MemoryStore) CreateProduct(_ context.Context, p *types.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.create(p, s.now())
}

// UpdateProduct replaces an existing product.
func (s *MemoryStore) UpdateProduct(_ context.Context, p *types.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.update(p, s.now())
}

// DeleteProduct removes a product.
func (s *MemoryStore) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.delete(id)
}

// -----------------------------------------------------------------------------
// table
// -----------------------------------------------------------------------------

// accessors tells a table how to reach the bookkeeping fields of T.
// published is nil for always-visible items and facets is nil when the
// items are not searchable.
type accessors[T any] struct {
	id        func(*T) *uuid.UUID
	key       func(*T) string
	published func(*T) time.Time
	stamps    func(*T) (created, updated *time.Time)
	facets    catalog.FacetFunc[T]
}

// table is an insertion-ordered collection. Callers hold the store lock.
type table[T any] struct {
	acc   accessors[T]
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newTable[T any](acc accessors[T]) *table[T] {
	return &table[T]{acc: acc, rows: make(map[uuid.UUID]T)}
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) visible(item *T, now time.Time) bool {
	return t.acc.published == nil || types.IsPublished(t.acc.published(item), now)
}

func (t *table[T]) published(now time.Time) []T {
	out := []T{}
	for _, id := range t.order {
		item := t.rows[id]
		if t.visible(&item, now) {
			out = append(out, item)
		}
	}
	return out
}

func (t *table[T]) get(id uuid.UUID) *T {
	item, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &item
}

func (t *table[T]) bySlug(key string, now time.Time) *T {
	for _, id := range t.order {
		item := t.rows[id]
		if t.acc.key(&item) == key && t.visible(&item, now) {
			return &item
		}
	}
	logging.Debug().Str("slug", key).Msg("content not found")
	return nil
}

func (t *table[T]) search(term string, limit int, now time.Time) []T {
	criteria := catalog.Criteria{Search: term}
	out := []T{}
	for _, item := range t.published(now) {
		if catalog.Matches(t.acc.facets(item), criteria) {
			out = append(out, item)
		}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return t.acc.published(&b).Compare(t.acc.published(&a))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (t *table[T]) taken(key string, except uuid.UUID) bool {
	if key == "" {
		return false
	}
	for id, item := range t.rows {
		if id != except && t.acc.key(&item) == key {
			return true
		}
	}
	return false
}

func (t *table[T]) create(item *T, now time.Time) error {
	if t.taken(t.acc.key(item), uuid.Nil) {
		return types.ErrAlreadyExists
	}
	id := t.acc.id(item)
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if _, exists := t.rows[*id]; exists {
		return types.ErrAlreadyExists
	}
	created, updated := t.acc.stamps(item)
	*created, *updated = now, now

	t.rows[*id] = *item
	t.order = append(t.order, *id)
	return nil
}

func (t *table[T]) update(item *T, now time.Time) error {
	id := *t.acc.id(item)
	existing, ok := t.rows[id]
	if !ok {
		return types.ErrNotFound
	}
	if t.taken(t.acc.key(item), id) {
		return types.ErrAlreadyExists
	}
	prevCreated, _ := t.acc.stamps(&existing)
	created, updated := t.acc.stamps(item)
	*created, *updated = *prevCreated, now

	t.rows[id] = *item
	return nil
}

func (t *table[T]) delete(id uuid.UUID) error {
	if _, ok := t.rows[id]; !ok {
		return types.ErrNotFound
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(o uuid.UUID) bool { return o == id })
	return nil
}
