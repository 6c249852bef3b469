package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// IngredientItemInput is the admin representation of an ingredient line.
type IngredientItemInput struct {
	Quantity string `json:"quantity" validate:"max=32"`
	Unit     string `json:"unit,omitempty" validate:"max=32"`
	Name     string `json:"name" validate:"required,max=200"`
	Notes    string `json:"notes,omitempty" validate:"max=500"`
}

// IngredientGroupInput is the admin representation of an ingredient group.
type IngredientGroupInput struct {
	GroupName string                `json:"group_name,omitempty" validate:"max=200"`
	Items     []IngredientItemInput `json:"items" validate:"required,min=1,dive"`
}

// RecipeRequest creates or replaces a recipe.
type RecipeRequest struct {
	Slug          string                 `json:"slug" validate:"required,max=200"`
	Title         string                 `json:"title" validate:"required,min=1,max=300"`
	Excerpt       string                 `json:"excerpt,omitempty" validate:"max=1000"`
	BodyHTML      string                 `json:"body_html,omitempty"`
	Categories    []string               `json:"categories" validate:"required,min=1,dive,required"`
	Tags          []string               `json:"tags,omitempty" validate:"dive,required"`
	Difficulty    string                 `json:"difficulty" validate:"required,oneof=facile media medio difficile professionale"`
	PrepMinutes   int                    `json:"prep_minutes" validate:"gte=0"`
	CookMinutes   int                    `json:"cook_minutes" validate:"gte=0"`
	Servings      int                    `json:"servings" validate:"required,min=1"`
	PanDiameterCM *float64               `json:"pan_diameter_cm,omitempty" validate:"omitempty,gt=0,lte=200"`
	Ingredients   []IngredientGroupInput `json:"ingredients" validate:"required,min=1,dive"`
	PublishedAt   *time.Time             `json:"published_at,omitempty"`
}

// TechniqueRequest creates or replaces a technique article.
type TechniqueRequest struct {
	Slug            string     `json:"slug" validate:"required,max=200"`
	Title           string     `json:"title" validate:"required,min=1,max=300"`
	Excerpt         string     `json:"excerpt,omitempty" validate:"max=1000"`
	BodyHTML        string     `json:"body_html,omitempty"`
	Category        string     `json:"category" validate:"required"`
	Tags            []string   `json:"tags,omitempty" validate:"dive,required"`
	Difficulty      string     `json:"difficulty" validate:"required,oneof=base intermedio avanzato"`
	DurationMinutes int        `json:"duration_minutes" validate:"gte=0"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

// ScienceRequest creates or replaces a science article.
type ScienceRequest struct {
	Slug           string     `json:"slug" validate:"required,max=200"`
	Title          string     `json:"title" validate:"required,min=1,max=300"`
	Excerpt        string     `json:"excerpt,omitempty" validate:"max=1000"`
	BodyHTML       string     `json:"body_html,omitempty"`
	Category       string     `json:"category" validate:"required"`
	Tags           []string   `json:"tags,omitempty" validate:"dive,required"`
	Difficulty     string     `json:"difficulty" validate:"required,oneof=base intermedio avanzato"`
	ReadingMinutes int        `json:"reading_minutes" validate:"gte=0"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
}

// ProductRequest creates or replaces an affiliate product.
type ProductRequest struct {
	ASIN         string   `json:"asin,omitempty" validate:"omitempty,alphanum,len=10"`
	Name         string   `json:"name" validate:"required,max=300"`
	Brand        string   `json:"brand,omitempty" validate:"max=200"`
	Category     string   `json:"category" validate:"required"`
	Description  string   `json:"description,omitempty"`
	AffiliateURL string   `json:"affiliate_url" validate:"required,url"`
	ImageURL     string   `json:"image_url,omitempty" validate:"omitempty,url"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency     string   `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// Validate validates the RecipeRequest using the validator.
func (r *RecipeRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the TechniqueRequest using the validator.
func (r *TechniqueRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the ScienceRequest using the validator.
func (r *ScienceRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the ProductRequest using the validator.
func (r *ProductRequest) Validate() error {
	return validator.New().Struct(r)
}

// NormalizeDifficulty maps accepted spellings onto the canonical value.
// Both "media" and "medio" appear in the editorial content.
func NormalizeDifficulty(d string) string {
	switch d {
	case "medio":
		return DifficultyMedium
	default:
		return d
	}
}

// ToRecipe converts the request into a Recipe. Identity and timestamps are left to the store.
func (r *RecipeRequest) ToRecipe() Recipe {
	groups := make([]IngredientGroup, 0, len(r.Ingredients))
	for _, g := range r.Ingredients {
		items := make([]IngredientItem, 0, len(g.Items))
		for _, it := range g.Items {
			items = append(items, IngredientItem(it))
		}
		groups = append(groups, IngredientGroup{GroupName: g.GroupName, Items: items})
	}

	recipe := Recipe{
		Slug:          r.Slug,
		Title:         r.Title,
		Excerpt:       r.Excerpt,
		BodyHTML:      r.BodyHTML,
		Categories:    r.Categories,
		Tags:          r.Tags,
		Difficulty:    NormalizeDifficulty(r.Difficulty),
		PrepMinutes:   r.PrepMinutes,
		CookMinutes:   r.CookMinutes,
		Servings:      r.Servings,
		PanDiameterCM: r.PanDiameterCM,
		Ingredients:   groups,
	}
	if r.PublishedAt != nil {
		recipe.PublishedAt = *r.PublishedAt
	}
	return recipe
}

// ToTechnique converts the request into a Technique.
func (r *TechniqueRequest) ToTechnique() Technique {
	t := Technique{
		Slug:            r.Slug,
		Title:           r.Title,
		Excerpt:         r.Excerpt,
		BodyHTML:        r.BodyHTML,
		Category:        r.Category,
		Tags:            r.Tags,
		Difficulty:      r.Difficulty,
		DurationMinutes: r.DurationMinutes,
	}
	if r.PublishedAt != nil {
		t.PublishedAt = *r.PublishedAt
	}
	return t
}

// ToScience converts the request into a ScienceArticle.
func (r *ScienceRequest) ToScience() ScienceArticle {
	a := ScienceArticle{
		Slug:           r.Slug,
		Title:          r.Title,
		Excerpt:        r.Excerpt,
		BodyHTML:       r.BodyHTML,
		Category:       r.Category,
		Tags:           r.Tags,
		Difficulty:     r.Difficulty,
		ReadingMinutes: r.ReadingMinutes,
	}
	if r.PublishedAt != nil {
		a.PublishedAt = *r.PublishedAt
	}
	return a
}

// ToProduct converts the request into a Product.
func (r *ProductRequest) ToProduct() Product {
	return Product{
		ASIN:         r.ASIN,
		Name:         r.Name,
		Brand:        r.Brand,
		Category:     r.Category,
		Description:  r.Description,
		AffiliateURL: r.AffiliateURL,
		ImageURL:     r.ImageURL,
		Price:        r.Price,
		Currency:     r.Currency,
	}
}
