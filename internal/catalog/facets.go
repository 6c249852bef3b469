// Package catalog filters, sorts and paginates content listings. It works on
// any content type through the Facets view, so recipes, techniques and science
// articles share one implementation.
package catalog

import (
	"strings"
	"time"

	"github.com/jonathan/pastry-blog/internal/types"
)

// Facets is the part of a content item the engine looks at.
type Facets struct {
	Title        string
	Excerpt      string
	Categories   []string
	Tags         []string
	Difficulty   string
	TotalMinutes int
	PublishedAt  time.Time
}

// FacetFunc projects an item onto its Facets.
type FacetFunc[T any] func(T) Facets

// RecipeFacets adapts a recipe. Total time is preparation plus cooking.
func RecipeFacets(r types.Recipe) Facets {
	return Facets{
		Title:        r.Title,
		Excerpt:      r.Excerpt,
		Categories:   r.Categories,
		Tags:         r.Tags,
		Difficulty:   normalizeDifficulty(r.Difficulty),
		TotalMinutes: r.TotalMinutes(),
		PublishedAt:  r.PublishedAt,
	}
}

// TechniqueFacets adapts a technique article.
func TechniqueFacets(t types.Technique) Facets {
	return Facets{
		Title:        t.Title,
		Excerpt:      t.Excerpt,
		Categories:   single(t.Category),
		Tags:         t.Tags,
		Difficulty:   normalizeDifficulty(t.Difficulty),
		TotalMinutes: t.DurationMinutes,
		PublishedAt:  t.PublishedAt,
	}
}

// ScienceFacets adapts a science article. Its time facet is the reading time.
func ScienceFacets(a types.ScienceArticle) Facets {
	return Facets{
		Title:        a.Title,
		Excerpt:      a.Excerpt,
		Categories:   single(a.Category),
		Tags:         a.Tags,
		Difficulty:   normalizeDifficulty(a.Difficulty),
		TotalMinutes: a.ReadingMinutes,
		PublishedAt:  a.PublishedAt,
	}
}

func single(category string) []string {
	if category == "" {
		return nil
	}
	return []string{category}
}

// normalizeDifficulty puts both sides of a difficulty comparison in the same
// form: trimmed, lower case, with "medio" folded into "media".
func normalizeDifficulty(d string) string {
	return types.NormalizeDifficulty(strings.ToLower(strings.TrimSpace(d)))
}
