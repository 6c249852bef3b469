package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a stably sorted copy of items. Items that compare equal under
// key keep their input order.
func Sort[T any](items []T, facets FacetFunc[T], key SortKey) []T {
	type entry struct {
		item T
		f    Facets
	}
	entries := make([]entry, len(items))
	for i, item := range items {
		entries[i] = entry{item: item, f: facets(item)}
	}

	compare := comparator(key)
	slices.SortStableFunc(entries, func(a, b entry) int {
		return compare(a.f, b.f)
	})

	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out
}

func comparator(key SortKey) func(a, b Facets) int {
	switch ParseSortKey(string(key)) {
	case SortOldest:
		return func(a, b Facets) int { return a.PublishedAt.Compare(b.PublishedAt) }
	case SortTitleAsc:
		titles := titleCollator()
		return func(a, b Facets) int { return titles.CompareString(a.Title, b.Title) }
	case SortTitleDesc:
		titles := titleCollator()
		return func(a, b Facets) int { return titles.CompareString(b.Title, a.Title) }
	case SortTimeAsc:
		return func(a, b Facets) int { return cmp.Compare(a.TotalMinutes, b.TotalMinutes) }
	case SortTimeDesc:
		return func(a, b Facets) int { return cmp.Compare(b.TotalMinutes, a.TotalMinutes) }
	default:
		return func(a, b Facets) int { return b.PublishedAt.Compare(a.PublishedAt) }
	}
}

// titleCollator orders Italian titles the way readers expect: accents are
// secondary differences, so "Éclair" sorts with the E's. A Collator is not
// safe for concurrent use, hence one per sort.
func titleCollator() *collate.Collator {
	return collate.New(language.Italian)
}
