package content

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/pastry-blog/internal/catalog"
	"github.com/jonathan/pastry-blog/internal/logging"
	"github.com/jonathan/pastry-blog/internal/metrics"
	"github.com/jonathan/pastry-blog/internal/scaling"
	"github.com/jonathan/pastry-blog/internal/types"
	"golang.org/x/sync/errgroup"
)

// MinQueryLength is the shortest accepted search term, in runes, after trimming.
const MinQueryLength = 2

// DefaultSearchLimit caps the hits returned by one search.
const DefaultSearchLimit = 20

// ErrQueryTooShort is returned by Search for terms below MinQueryLength.
var ErrQueryTooShort = errors.New("query must be at least 2 characters")

// Listing is a page of content plus the query that produced it.
type Listing[T any] struct {
	catalog.Page[T]
	Sort    catalog.SortKey        `json:"sort"`
	Filters []catalog.ActiveFilter `json:"filters"`
}

// Service answers the public read operations on top of a Source.
type Service struct {
	src         Source
	searchLimit int
}

// NewService creates a service reading from src.
func NewService(src Source) *Service {
	return &Service{src: src, searchLimit: DefaultSearchLimit}
}

// WithSearchLimit overrides DefaultSearchLimit. Non-positive values are ignored.
func (s *Service) WithSearchLimit(limit int) *Service {
	if limit > 0 {
		s.searchLimit = limit
	}
	return s
}

// Recipes returns one page of published recipes.
func (s *Service) Recipes(ctx context.Context, q catalog.Query) (*Listing[types.Recipe], error) {
	items, err := s.src.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return listing(types.KindRecipe, items, catalog.RecipeFacets, q), nil
}

// Techniques returns one page of published techniques.
func (s *Service) Techniques(ctx context.Context, q catalog.Query) (*Listing[types.Technique], error) {
	items, err := s.src.ListTechniques(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list techniques: %w", err)
	}
	return listing(types.KindTechnique, items, catalog.TechniqueFacets, q), nil
}

// Science returns one page of published science articles.
func (s *Service) Science(ctx context.Context, q catalog.Query) (*Listing[types.ScienceArticle], error) {
	items, err := s.src.ListScience(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list science articles: %w", err)
	}
	return listing(types.KindScience, items, catalog.ScienceFacets, q), nil
}

func listing[T any](kind types.ContentKind, items []T, facets catalog.FacetFunc[T], q catalog.Query) *Listing[T] {
	q.Sort = catalog.ParseSortKey(string(q.Sort))
	metrics.ListingQueriesTotal.WithLabelValues(string(kind)).Inc()
	return &Listing[T]{
		Page:    catalog.Run(items, facets, q),
		Sort:    q.Sort,
		Filters: q.Criteria.Active(),
	}
}

// RecipeFacets counts categories and difficulties over all published recipes.
func (s *Service) RecipeFacets(ctx context.Context) (catalog.FacetCounts, error) {
	items, err := s.src.ListRecipes(ctx)
	if err != nil {
		return catalog.FacetCounts{}, fmt.Errorf("failed to list recipes: %w", err)
	}
	return catalog.Counts(items, catalog.RecipeFacets, types.RecipeDifficulties), nil
}

// ScaleRecipe resizes the published recipe slug to servings. A nil servings
// keeps the recipe's own serving count. It returns (nil, nil, nil) when the
// recipe does not exist.
func (s *Service) ScaleRecipe(ctx context.Context, slug string, servings *int) (*types.Recipe, *scaling.Scaled, error) {
	recipe, err := s.src.GetRecipe(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get recipe %s: %w", slug, err)
	}
	if recipe == nil {
		return nil, nil, nil
	}

	target := recipe.Servings
	if servings != nil {
		target = *servings
	}
	scaled := scaling.ScaleRecipe(recipe, target)
	metrics.RecipeScalesTotal.Inc()
	return recipe, &scaled, nil
}

// Search looks for term across recipes, techniques and science articles at
// once. Hits are merged newest first and capped at the search limit.
func (s *Service) Search(ctx context.Context, term string) ([]types.SearchHit, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < MinQueryLength {
		return nil, ErrQueryTooShort
	}

	var recipes []types.Recipe
	var techniques []types.Technique
	var science []types.ScienceArticle

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = s.src.SearchRecipes(gctx, term, s.searchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		techniques, err = s.src.SearchTechniques(gctx, term, s.searchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		science, err = s.src.SearchScience(gctx, term, s.searchLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to search content: %w", err)
	}

	hits := make([]types.SearchHit, 0, len(recipes)+len(techniques)+len(science))
	for _, r := range recipes {
		hits = append(hits, types.SearchHit{Kind: types.KindRecipe, ID: r.ID, Slug: r.Slug, Title: r.Title, Excerpt: r.Excerpt, PublishedAt: r.PublishedAt})
	}
	for _, t := range techniques {
		hits = append(hits, types.SearchHit{Kind: types.KindTechnique, ID: t.ID, Slug: t.Slug, Title: t.Title, Excerpt: t.Excerpt, PublishedAt: t.PublishedAt})
	}
	for _, a := range science {
		hits = append(hits, types.SearchHit{Kind: types.KindScience, ID: a.ID, Slug: a.Slug, Title: a.Title, Excerpt: a.Excerpt, PublishedAt: a.PublishedAt})
	}

	slices.SortStableFunc(hits, func(a, b types.SearchHit) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	if len(hits) > s.searchLimit {
		hits = hits[:s.searchLimit]
	}

	metrics.SearchQueriesTotal.WithLabelValues("ok").Inc()
	metrics.SearchResults.Observe(float64(len(hits)))
	logging.Ctx(ctx).Debug().Str("term", term).Int("hits", len(hits)).Msg("search completed")
	return hits, nil
}
