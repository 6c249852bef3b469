package content

import (
	"fmt"

	"github.com/jonathan/pastry-blog/internal/richtext"
	"github.com/jonathan/pastry-blog/internal/types"
)

// PrepareRecipe derives the excerpt from the body when the editor left it empty.
func PrepareRecipe(r *types.Recipe) error {
	return fillExcerpt(&r.Excerpt, r.BodyHTML)
}

// PrepareTechnique derives the excerpt from the body when it is empty.
func PrepareTechnique(t *types.Technique) error {
	return fillExcerpt(&t.Excerpt, t.BodyHTML)
}

// PrepareScience derives the excerpt from the body when it is empty.
func PrepareScience(a *types.ScienceArticle) error {
	return fillExcerpt(&a.Excerpt, a.BodyHTML)
}

func fillExcerpt(excerpt *string, body string) error {
	if *excerpt != "" || body == "" {
		return nil
	}
	text, err := richtext.Excerpt(body, richtext.DefaultExcerptLength)
	if err != nil {
		return fmt.Errorf("failed to derive excerpt: %w", err)
	}
	*excerpt = text
	return nil
}
