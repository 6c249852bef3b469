package catalog

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/jonathan/pastry-blog/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return base.AddDate(0, 0, n)
}

// tenRecipes has three "Torte" recipes rated "facile".
func tenRecipes() []types.Recipe {
	return []types.Recipe{
		{Slug: "r1", Title: "Torta margherita", Categories: []string{"Torte"}, Difficulty: "facile", PrepMinutes: 20, CookMinutes: 40, PublishedAt: day(1)},
		{Slug: "r2", Title: "Crostata di frutta", Categories: []string{"Crostate"}, Difficulty: "media", PrepMinutes: 40, CookMinutes: 35, PublishedAt: day(2)},
		{Slug: "r3", Title: "Torta di mele", Categories: []string{"Torte", "Frutta"}, Difficulty: "facile", PrepMinutes: 25, CookMinutes: 45, PublishedAt: day(3)},
		{Slug: "r4", Title: "Sacher", Categories: []string{"Torte"}, Difficulty: "difficile", PrepMinutes: 60, CookMinutes: 50, PublishedAt: day(4)},
		{Slug: "r5", Title: "Bignè alla crema", Categories: []string{"Pasticcini"}, Difficulty: "difficile", PrepMinutes: 50, CookMinutes: 30, PublishedAt: day(5)},
		{Slug: "r6", Title: "Ciambellone", Categories: []string{"Torte"}, Difficulty: "facile", PrepMinutes: 15, CookMinutes: 45, PublishedAt: day(6)},
		{Slug: "r7", Title: "Millefoglie", Categories: []string{"Pasticcini"}, Difficulty: "professionale", PrepMinutes: 120, CookMinutes: 30, PublishedAt: day(7)},
		{Slug: "r8", Title: "Tiramisù", Categories: []string{"Dolci al cucchiaio"}, Difficulty: "facile", PrepMinutes: 30, CookMinutes: 0, Tags: []string{"mascarpone", "caffè"}, PublishedAt: day(8)},
		{Slug: "r9", Title: "Panna cotta", Categories: []string{"Dolci al cucchiaio"}, Difficulty: "medio", PrepMinutes: 15, CookMinutes: 5, Excerpt: "Il classico dessert piemontese", PublishedAt: day(9)},
		{Slug: "r10", Title: "Torta Paradiso", Categories: []string{"Torte"}, Difficulty: "media", PrepMinutes: 20, CookMinutes: 45, PublishedAt: day(10)},
	}
}

func slugs(rs []types.Recipe) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Slug
	}
	return out
}

func TestFilter_CategoryAndDifficulty(t *testing.T) {
	got := Filter(tenRecipes(), RecipeFacets, Criteria{Category: "Torte", Difficulty: "facile"})
	assert.Equal(t, []string{"r1", "r3", "r6"}, slugs(got))

	page := Run(tenRecipes(), RecipeFacets, Query{Criteria: Criteria{Category: "Torte", Difficulty: "facile"}})
	assert.Equal(t, []string{"r6", "r3", "r1"}, slugs(page.Items), "default sort is newest first")
}

func TestFilter_Conjunction(t *testing.T) {
	criteria := []Criteria{
		{Category: "Torte", MaxTimeMinutes: MaxTime(60)},
		{Difficulty: "facile", Search: "tor"},
		{Category: "Dolci al cucchiaio", Difficulty: "media", MaxTimeMinutes: MaxTime(30)},
		{Category: "Pasticcini", Difficulty: "difficile", Search: "crema", MaxTimeMinutes: MaxTime(90)},
	}

	for i, c := range criteria {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			got := Filter(tenRecipes(), RecipeFacets, c)
			require.NotEmpty(t, got)
			for _, r := range got {
				assert.True(t, Matches(RecipeFacets(r), c), "%s should satisfy every facet", r.Slug)
			}
			for _, r := range tenRecipes() {
				if Matches(RecipeFacets(r), c) {
					assert.Contains(t, slugs(got), r.Slug)
				}
			}
		})
	}
}

func TestFilter_MaxTimeIsInclusive(t *testing.T) {
	got := Filter(tenRecipes(), RecipeFacets, Criteria{MaxTimeMinutes: MaxTime(60)})
	assert.Equal(t, []string{"r1", "r6", "r8", "r9"}, slugs(got))
}

func TestFilter_DifficultyNormalization(t *testing.T) {
	got := Filter(tenRecipes(), RecipeFacets, Criteria{Difficulty: " Medio "})
	assert.Equal(t, []string{"r2", "r9", "r10"}, slugs(got))
}

func TestFilter_Search(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"TORTA", []string{"r1", "r3", "r10"}},
		{"piemontese", []string{"r9"}},
		{"caffè", []string{"r8"}},
		{"bignè", []string{"r5"}},
		{"   ", slugs(tenRecipes())},
		{"nessun risultato", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := Filter(tenRecipes(), RecipeFacets, Criteria{Search: tt.term})
			assert.Equal(t, tt.want, slugs(got))
		})
	}
}

func TestFilter_IdentityAndNoMutation(t *testing.T) {
	items := tenRecipes()
	got := Filter(items, RecipeFacets, Criteria{})
	assert.Equal(t, items, got)

	sorted := Run(items, RecipeFacets, Query{Sort: SortOldest})
	assert.Equal(t, slugs(items), slugs(sorted.Items))
	assert.Equal(t, tenRecipes(), items)
}

func TestSort_Keys(t *testing.T) {
	items := tenRecipes()

	newest := Sort(items, RecipeFacets, SortNewest)
	assert.Equal(t, "r10", newest[0].Slug)
	assert.Equal(t, "r1", newest[len(newest)-1].Slug)

	timeAsc := Sort(items, RecipeFacets, SortTimeAsc)
	assert.Equal(t, "r9", timeAsc[0].Slug)
	assert.Equal(t, "r7", timeAsc[len(timeAsc)-1].Slug)

	timeDesc := Sort(items, RecipeFacets, SortTimeDesc)
	assert.Equal(t, "r7", timeDesc[0].Slug)
}

func TestSort_ItalianCollation(t *testing.T) {
	items := []types.Recipe{
		{Slug: "zuppa", Title: "Zuppa inglese"},
		{Slug: "eclair", Title: "Éclair al cioccolato"},
		{Slug: "baba", Title: "babà al rum"},
		{Slug: "cannoli", Title: "Cannoli siciliani"},
		{Slug: "ecc", Title: "Eccellenze"},
	}

	asc := Sort(items, RecipeFacets, SortTitleAsc)
	assert.Equal(t, []string{"baba", "cannoli", "ecc", "eclair", "zuppa"}, slugs(asc))

	desc := Sort(items, RecipeFacets, SortTitleDesc)
	assert.Equal(t, []string{"zuppa", "eclair", "ecc", "cannoli", "baba"}, slugs(desc))
}

func TestSort_Stable(t *testing.T) {
	same := day(3)
	items := []types.Recipe{
		{Slug: "a", Title: "Uguale", PrepMinutes: 10, PublishedAt: same},
		{Slug: "b", Title: "Uguale", PrepMinutes: 10, PublishedAt: same},
		{Slug: "c", Title: "Uguale", PrepMinutes: 10, PublishedAt: same},
		{Slug: "d", Title: "Altro", PrepMinutes: 5, PublishedAt: day(1)},
		{Slug: "e", Title: "Uguale", PrepMinutes: 10, PublishedAt: same},
	}

	for _, key := range SortKeys {
		t.Run(string(key), func(t *testing.T) {
			got := slugs(Sort(items, RecipeFacets, key))
			var equal []string
			for _, s := range got {
				if s != "d" {
					equal = append(equal, s)
				}
			}
			assert.Equal(t, []string{"a", "b", "c", "e"}, equal)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	p := Paginate(items, 1, 3)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
	assert.Equal(t, 7, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasMore)

	p = Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, p.Items)
	assert.False(t, p.HasMore)

	p = Paginate(items, 9, 3)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasMore)

	p = Paginate(items, 0, 3)
	assert.Equal(t, 1, p.Page)

	p = Paginate(items, 1, 0)
	assert.Equal(t, items, p.Items)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasMore)

	empty := Paginate([]int{}, 1, 12)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasMore)
}

func TestPaginate_HugeValues(t *testing.T) {
	items := []int{1, 2, 3}

	p := Paginate(items, math.MaxInt, 12)
	assert.Empty(t, p.Items)
	assert.Equal(t, math.MaxInt, p.Page)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasMore)

	p = Paginate(items, math.MaxInt/2, 3)
	assert.Empty(t, p.Items)

	p = Paginate(items, 1, math.MaxInt)
	assert.Equal(t, items, p.Items)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasMore)
}

func TestPaginate_Coverage(t *testing.T) {
	items := tenRecipes()
	for size := 1; size <= 11; size++ {
		q := Query{Criteria: Criteria{}, Sort: SortTitleAsc, Page: 1, PageSize: size}
		first := Run(items, RecipeFacets, q)

		var all []types.Recipe
		for page := 1; page <= first.TotalPages; page++ {
			q.Page = page
			all = append(all, Run(items, RecipeFacets, q).Items...)
		}

		full := Sort(items, RecipeFacets, SortTitleAsc)
		assert.Equal(t, slugs(full), slugs(all), "page size %d", size)
	}
}

func TestCriteria_Active(t *testing.T) {
	c := Criteria{Category: "Torte", Difficulty: "Medio", MaxTimeMinutes: MaxTime(45), Search: "  mele "}
	assert.Equal(t, []ActiveFilter{
		{Facet: "category", Value: "Torte"},
		{Facet: "difficulty", Value: "media"},
		{Facet: "maxTime", Value: "45"},
		{Facet: "search", Value: "mele"},
	}, c.Active())

	assert.Empty(t, Criteria{Search: "  "}.Active())
	assert.True(t, Criteria{Search: "  "}.IsEmpty())
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortTitleAsc, ParseSortKey("titleasc"))
	assert.Equal(t, SortTimeDesc, ParseSortKey("timeDesc"))
	assert.Equal(t, SortNewest, ParseSortKey(""))
	assert.Equal(t, SortNewest, ParseSortKey("random"))
}

func TestTechniqueAndScienceFacets(t *testing.T) {
	techniques := []types.Technique{
		{Slug: "temperaggio", Title: "Temperaggio del cioccolato", Category: "Cioccolato", Difficulty: "avanzato", DurationMinutes: 45},
		{Slug: "frolla", Title: "Pasta frolla", Category: "Impasti", Difficulty: "base", DurationMinutes: 20},
	}
	got := Filter(techniques, TechniqueFacets, Criteria{Category: "Impasti", Difficulty: "base"})
	require.Len(t, got, 1)
	assert.Equal(t, "frolla", got[0].Slug)

	articles := []types.ScienceArticle{
		{Slug: "glutine", Title: "La rete glutinica", Category: "Farine", Difficulty: "intermedio", ReadingMinutes: 8},
		{Slug: "maillard", Title: "Reazione di Maillard", Category: "Cottura", Difficulty: "avanzato", ReadingMinutes: 15},
	}
	fast := Filter(articles, ScienceFacets, Criteria{MaxTimeMinutes: MaxTime(10)})
	require.Len(t, fast, 1)
	assert.Equal(t, "glutine", fast[0].Slug)

	assert.Nil(t, TechniqueFacets(types.Technique{}).Categories)
}

func TestFacets_DifficultyCaseInsensitive(t *testing.T) {
	techniques := []types.Technique{
		{Slug: "temperaggio", Category: "Cioccolato", Difficulty: "Avanzato"},
		{Slug: "frolla", Category: "Impasti", Difficulty: " BASE "},
	}
	got := Filter(techniques, TechniqueFacets, Criteria{Difficulty: "avanzato"})
	require.Len(t, got, 1)
	assert.Equal(t, "temperaggio", got[0].Slug)
	assert.Equal(t, "base", TechniqueFacets(techniques[1]).Difficulty)

	articles := []types.ScienceArticle{{Slug: "maillard", Category: "Cottura", Difficulty: "INTERMEDIO"}}
	assert.Len(t, Filter(articles, ScienceFacets, Criteria{Difficulty: "Intermedio"}), 1)

	recipes := []types.Recipe{{Slug: "panna-cotta", Difficulty: "Medio"}}
	assert.Len(t, Filter(recipes, RecipeFacets, Criteria{Difficulty: "media"}), 1)
}

func TestCounts(t *testing.T) {
	counts := Counts(tenRecipes(), RecipeFacets, types.RecipeDifficulties)

	assert.Equal(t, 10, counts.Total)
	assert.Equal(t, 150, counts.MaxMinutes)
	require.NotEmpty(t, counts.Categories)
	assert.Equal(t, FacetCount{Value: "Torte", Count: 5}, counts.Categories[0])
	assert.Equal(t, []FacetCount{
		{Value: "facile", Count: 4},
		{Value: "media", Count: 3},
		{Value: "difficile", Count: 2},
		{Value: "professionale", Count: 1},
	}, counts.Difficulties)
}
