package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/pastry-blog/internal/catalog"
	"github.com/jonathan/pastry-blog/internal/config"
	"github.com/jonathan/pastry-blog/internal/content"
	"github.com/jonathan/pastry-blog/internal/scaling"
	"github.com/jonathan/pastry-blog/internal/types"
)

// maxServings bounds the scale endpoint.
const maxServings = 200

// parseQueryInt parses an integer query parameter with default and max values.
// Missing, malformed or negative values yield the default.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// parseListQuery builds a listing query from category, difficulty, maxTime,
// search, sort, page and pageSize.
func parseListQuery(r *http.Request, defaultPageSize int) catalog.Query {
	q := r.URL.Query()

	criteria := catalog.Criteria{
		Category:   q.Get("category"),
		Difficulty: q.Get("difficulty"),
		Search:     q.Get("search"),
	}
	if maxTime := parseQueryInt(r, "maxTime", -1, 0); maxTime >= 0 {
		criteria.MaxTimeMinutes = catalog.MaxTime(maxTime)
	}

	pageSize := parseQueryInt(r, "pageSize", defaultPageSize, config.MaxPageSize)
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	return catalog.Query{
		Criteria: criteria,
		Sort:     catalog.ParseSortKey(q.Get("sort")),
		Page:     max(parseQueryInt(r, "page", 1, 0), 1),
		PageSize: pageSize,
	}
}

// listHandler serves one filtered, sorted and paginated listing.
func listHandler[T any](s *Server, list func(context.Context, catalog.Query) (*content.Listing[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listing, err := list(r.Context(), parseListQuery(r, s.cfg.PageSize))
		if err != nil {
			s.internalError(w, r, err, "Failed to load content")
			return
		}
		s.jsonResponse(w, http.StatusOK, listing)
	}
}

// getHandler serves a single published item by slug.
func getHandler[T any](s *Server, noun string, get func(context.Context, string) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := get(r.Context(), r.PathValue("slug"))
		if err != nil {
			s.internalError(w, r, err, "Failed to load content")
			return
		}
		if item == nil {
			s.errorResponse(w, http.StatusNotFound, noun+" not found")
			return
		}
		s.jsonResponse(w, http.StatusOK, item)
	}
}

// handleRecipeFacets returns category and difficulty counts for the filter menus.
func (s *Server) handleRecipeFacets(w http.ResponseWriter, r *http.Request) {
	counts, err := s.content.RecipeFacets(r.Context())
	if err != nil {
		s.internalError(w, r, err, "Failed to load facets")
		return
	}
	s.jsonResponse(w, http.StatusOK, counts)
}

// ScaleResponse is returned by GET /api/recipes/{slug}/scale.
type ScaleResponse struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	*scaling.Scaled
}

// handleScaleRecipe resizes a recipe to ?servings=N. Without servings the
// recipe's own count is used.
func (s *Server) handleScaleRecipe(w http.ResponseWriter, r *http.Request) {
	var servings *int
	if raw := strings.TrimSpace(r.URL.Query().Get("servings")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, (&ErrValidation{Field: "servings", Message: "must be an integer"}).Error())
			return
		}
		n = min(n, maxServings)
		servings = &n
	}

	recipe, scaled, err := s.content.ScaleRecipe(r.Context(), r.PathValue("slug"), servings)
	if err != nil {
		s.internalError(w, r, err, "Failed to scale recipe")
		return
	}
	if recipe == nil {
		s.errorResponse(w, http.StatusNotFound, "Recipe not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, ScaleResponse{Slug: recipe.Slug, Title: recipe.Title, Scaled: scaled})
}

// handleListProducts lists affiliate products, optionally for one ?category=.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
	if err != nil {
		s.internalError(w, r, err, "Failed to load products")
		return
	}
	if products == nil {
		products = []types.Product{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    len(products),
	})
}
