package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/pastry-blog/internal/content"
	"github.com/jonathan/pastry-blog/internal/metrics"
	"github.com/jonathan/pastry-blog/internal/types"
)

// searchCacheControl lets the CDN serve a search for a minute and keep a
// stale copy for two more while it revalidates.
const searchCacheControl = "public, s-maxage=60, stale-while-revalidate=120"

const queryTooShortMessage = "Query must be at least 2 characters"

// validate is shared by the handlers; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// searchRequest is the validated form of the search query string.
type searchRequest struct {
	Query string `validate:"min=2"`
}

// SearchResponse is returned by GET /api/search.
type SearchResponse struct {
	Query   string            `json:"query"`
	Results []types.SearchHit `json:"results"`
	Total   int               `json:"total"`
}

// handleSearch searches recipes, techniques and science articles at once.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req := searchRequest{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if err := validate.Struct(req); err != nil {
		metrics.SearchQueriesTotal.WithLabelValues("rejected").Inc()
		s.errorResponse(w, http.StatusBadRequest, queryTooShortMessage)
		return
	}

	hits, err := s.content.Search(r.Context(), req.Query)
	if errors.Is(err, content.ErrQueryTooShort) {
		metrics.SearchQueriesTotal.WithLabelValues("rejected").Inc()
		s.errorResponse(w, http.StatusBadRequest, queryTooShortMessage)
		return
	}
	if err != nil {
		s.internalError(w, r, err, "Search failed")
		return
	}

	w.Header().Set("Cache-Control", searchCacheControl)
	s.jsonResponse(w, http.StatusOK, SearchResponse{
		Query:   req.Query,
		Results: hits,
		Total:   len(hits),
	})
}
