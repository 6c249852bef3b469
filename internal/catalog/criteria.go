package catalog

import (
	"strconv"
	"strings"
)

// SortKey selects the ordering of a listing.
type SortKey string

// Sort keys
const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortTitleAsc  SortKey = "titleAsc"
	SortTitleDesc SortKey = "titleDesc"
	SortTimeAsc   SortKey = "timeAsc"
	SortTimeDesc  SortKey = "timeDesc"
)

// DefaultSort is used when no sort key is given.
const DefaultSort = SortNewest

// SortKeys lists every supported sort key.
var SortKeys = []SortKey{SortNewest, SortOldest, SortTitleAsc, SortTitleDesc, SortTimeAsc, SortTimeDesc}

// ParseSortKey returns the sort key named by s, ignoring case. Empty or
// unknown values fall back to DefaultSort.
func ParseSortKey(s string) SortKey {
	s = strings.TrimSpace(s)
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return DefaultSort
}

// Criteria holds the facet filters of a listing. A zero field places no
// constraint on its facet.
type Criteria struct {
	Category       string
	Difficulty     string
	MaxTimeMinutes *int
	Search         string
}

// Query is a full listing request.
type Query struct {
	Criteria Criteria
	Sort     SortKey
	Page     int
	PageSize int
}

// ActiveFilter names one facet constraint currently applied.
type ActiveFilter struct {
	Facet string `json:"facet"`
	Value string `json:"value"`
}

// MaxTime is a convenience for building Criteria literals.
func MaxTime(minutes int) *int {
	return &minutes
}

// Normalize trims the criteria and canonicalizes the difficulty. A
// whitespace-only search term becomes absent.
func (c Criteria) Normalize() Criteria {
	c.Category = strings.TrimSpace(c.Category)
	c.Difficulty = normalizeDifficulty(c.Difficulty)
	c.Search = strings.TrimSpace(c.Search)
	return c
}

// IsEmpty reports whether no facet is constrained.
func (c Criteria) IsEmpty() bool {
	n := c.Normalize()
	return n.Category == "" && n.Difficulty == "" && n.MaxTimeMinutes == nil && n.Search == ""
}

// Active lists the applied constraints in a fixed facet order, using the
// query parameter names the listing pages understand.
func (c Criteria) Active() []ActiveFilter {
	n := c.Normalize()
	filters := []ActiveFilter{}
	if n.Category != "" {
		filters = append(filters, ActiveFilter{Facet: "category", Value: n.Category})
	}
	if n.Difficulty != "" {
		filters = append(filters, ActiveFilter{Facet: "difficulty", Value: n.Difficulty})
	}
	if n.MaxTimeMinutes != nil {
		filters = append(filters, ActiveFilter{Facet: "maxTime", Value: strconv.Itoa(*n.MaxTimeMinutes)})
	}
	if n.Search != "" {
		filters = append(filters, ActiveFilter{Facet: "search", Value: n.Search})
	}
	return filters
}
