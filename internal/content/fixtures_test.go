package content

import (
	"context"
	"testing"
	"time"

	"github.com/jonathan/pastry-blog/internal/types"
	"github.com/stretchr/testify/require"
)

var fixtureNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 8, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// newFixtureStore returns a store holding two published recipes, one
// scheduled recipe, one technique and one science article.
func newFixtureStore(t *testing.T) *MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := NewMemoryStore().WithClock(func() time.Time { return fixtureNow })

	recipes := []types.Recipe{
		{
			Slug:          "crostata-albicocche",
			Title:         "Crostata di albicocche",
			Categories:    []string{"Crostate"},
			Tags:          []string{"frolla", "estate"},
			Difficulty:    types.DifficultyEasy,
			PrepMinutes:   30,
			CookMinutes:   40,
			Servings:      8,
			PanDiameterCM: ptr(24.0),
			Ingredients: []types.IngredientGroup{{
				GroupName: "Frolla",
				Items: []types.IngredientItem{
					{Quantity: "250", Unit: "g", Name: "farina 00"},
					{Quantity: "q.b.", Name: "sale"},
				},
			}},
			PublishedAt: day(time.May, 1),
		},
		{
			Slug:        "tiramisu",
			Title:       "Tiramisù classico",
			Categories:  []string{"Dolci al cucchiaio"},
			Difficulty:  "medio",
			PrepMinutes: 40,
			Servings:    6,
			Ingredients: []types.IngredientGroup{{Items: []types.IngredientItem{{Quantity: "500", Unit: "g", Name: "mascarpone"}}}},
			PublishedAt: day(time.April, 1),
		},
		{
			Slug:        "crostata-futura",
			Title:       "Crostata in arrivo",
			Categories:  []string{"Crostate"},
			Difficulty:  types.DifficultyHard,
			Servings:    8,
			PublishedAt: day(time.July, 1),
		},
	}
	for i := range recipes {
		require.NoError(t, store.CreateRecipe(ctx, &recipes[i]))
	}

	require.NoError(t, store.CreateTechnique(ctx, &types.Technique{
		Slug:            "frolla-perfetta",
		Title:           "Pasta frolla perfetta",
		Category:        "Impasti",
		Difficulty:      types.LevelBasic,
		DurationMinutes: 20,
		PublishedAt:     day(time.March, 1),
	}))
	require.NoError(t, store.CreateScience(ctx, &types.ScienceArticle{
		Slug:           "amido",
		Title:          "L'amido nella crostata",
		Category:       "Chimica",
		Difficulty:     types.LevelIntermediate,
		ReadingMinutes: 8,
		PublishedAt:    day(time.May, 15),
	}))

	return store
}
