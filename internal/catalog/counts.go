package catalog

import (
	"slices"
	"strings"
)

// FacetCount is the number of items carrying one facet value.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetCounts feeds the filter menus of a listing page.
type FacetCounts struct {
	Categories   []FacetCount `json:"categories"`
	Difficulties []FacetCount `json:"difficulties"`
	MaxMinutes   int          `json:"max_minutes"`
	Total        int          `json:"total"`
}

// Counts tallies categories and difficulties across items. Categories are
// ordered by count then name, difficulties follow the order of levels when
// given (unknown values are appended by name).
func Counts[T any](items []T, facets FacetFunc[T], levels []string) FacetCounts {
	categories := map[string]int{}
	difficulties := map[string]int{}
	result := FacetCounts{Total: len(items)}

	for _, item := range items {
		f := facets(item)
		for _, c := range f.Categories {
			categories[c]++
		}
		if f.Difficulty != "" {
			difficulties[f.Difficulty]++
		}
		result.MaxMinutes = max(result.MaxMinutes, f.TotalMinutes)
	}

	result.Categories = toCounts(categories)
	slices.SortStableFunc(result.Categories, func(a, b FacetCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Value, b.Value)
	})

	result.Difficulties = make([]FacetCount, 0, len(difficulties))
	for _, level := range levels {
		if n, ok := difficulties[level]; ok {
			result.Difficulties = append(result.Difficulties, FacetCount{Value: level, Count: n})
			delete(difficulties, level)
		}
	}
	rest := toCounts(difficulties)
	slices.SortFunc(rest, func(a, b FacetCount) int { return strings.Compare(a.Value, b.Value) })
	result.Difficulties = append(result.Difficulties, rest...)

	return result
}

func toCounts(m map[string]int) []FacetCount {
	out := make([]FacetCount, 0, len(m))
	for v, n := range m {
		out = append(out, FacetCount{Value: v, Count: n})
	}
	return out
}
