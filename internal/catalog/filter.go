package catalog

import (
	"slices"
	"strings"
)

// Filter returns the items matching every constrained facet of c, in their
// original order. The input slice is not modified.
func Filter[T any](items []T, facets FacetFunc[T], c Criteria) []T {
	c = c.Normalize()
	term := strings.ToLower(c.Search)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if matches(facets(item), c, term) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether a single item satisfies c.
func Matches(f Facets, c Criteria) bool {
	c = c.Normalize()
	return matches(f, c, strings.ToLower(c.Search))
}

func matches(f Facets, c Criteria, term string) bool {
	if c.Category != "" && !slices.Contains(f.Categories, c.Category) {
		return false
	}
	if c.Difficulty != "" && f.Difficulty != c.Difficulty {
		return false
	}
	if c.MaxTimeMinutes != nil && f.TotalMinutes > *c.MaxTimeMinutes {
		return false
	}
	if term != "" && !containsTerm(f, term) {
		return false
	}
	return true
}

// containsTerm does a case-insensitive substring match on title, excerpt and tags.
func containsTerm(f Facets, term string) bool {
	if strings.Contains(strings.ToLower(f.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(f.Excerpt), term) {
		return true
	}
	for _, tag := range f.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
