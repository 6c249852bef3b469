// Package types provides type definitions for the content served by the pastry blog.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind identifies which collection a piece of content belongs to.
type ContentKind string

// Content kinds
const (
	KindRecipe    ContentKind = "recipe"
	KindTechnique ContentKind = "technique"
	KindScience   ContentKind = "science"
)

// Recipe difficulty levels
const (
	DifficultyEasy         = "facile"
	DifficultyMedium       = "media"
	DifficultyHard         = "difficile"
	DifficultyProfessional = "professionale"
)

// Technique and science article levels
const (
	LevelBasic        = "base"
	LevelIntermediate = "intermedio"
	LevelAdvanced     = "avanzato"
)

// RecipeDifficulties lists the closed set of recipe difficulty values in ascending order.
var RecipeDifficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyProfessional}

// Levels lists the closed set of technique/science levels in ascending order.
var Levels = []string{LevelBasic, LevelIntermediate, LevelAdvanced}

// Recipe is a published recipe with its ingredient list.
type Recipe struct {
	ID            uuid.UUID         `json:"id"`
	Slug          string            `json:"slug"`
	Title         string            `json:"title"`
	Excerpt       string            `json:"excerpt,omitempty"`
	BodyHTML      string            `json:"body_html,omitempty"`
	Categories    []string          `json:"categories"`
	Tags          []string          `json:"tags,omitempty"`
	Difficulty    string            `json:"difficulty"`
	PrepMinutes   int               `json:"prep_minutes"`
	CookMinutes   int               `json:"cook_minutes"`
	Servings      int               `json:"servings"`
	PanDiameterCM *float64          `json:"pan_diameter_cm,omitempty"`
	Ingredients   []IngredientGroup `json:"ingredients"`
	PublishedAt   time.Time         `json:"published_at"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TotalMinutes returns preparation plus cooking time.
func (r *Recipe) TotalMinutes() int {
	return r.PrepMinutes + r.CookMinutes
}

// Technique is an article describing a pastry technique.
type Technique struct {
	ID              uuid.UUID `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Excerpt         string    `json:"excerpt,omitempty"`
	BodyHTML        string    `json:"body_html,omitempty"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags,omitempty"`
	Difficulty      string    `json:"difficulty"`
	DurationMinutes int       `json:"duration_minutes"`
	PublishedAt     time.Time `json:"published_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ScienceArticle explains the food science behind a preparation.
type ScienceArticle struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Excerpt        string    `json:"excerpt,omitempty"`
	BodyHTML       string    `json:"body_html,omitempty"`
	Category       string    `json:"category"`
	Tags           []string  `json:"tags,omitempty"`
	Difficulty     string    `json:"difficulty"`
	ReadingMinutes int       `json:"reading_minutes"`
	PublishedAt    time.Time `json:"published_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Product is an affiliate product listing (molds, tools, ingredients).
type Product struct {
	ID           uuid.UUID `json:"id"`
	ASIN         string    `json:"asin,omitempty"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand,omitempty"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	AffiliateURL string    `json:"affiliate_url"`
	ImageURL     string    `json:"image_url,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SearchHit is a single result of the cross-collection search.
type SearchHit struct {
	Kind        ContentKind `json:"type"`
	ID          uuid.UUID   `json:"id"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Excerpt     string      `json:"excerpt,omitempty"`
	PublishedAt time.Time   `json:"published_at"`
}

// IsPublished reports whether content with the given publish date is visible at now.
func IsPublished(publishedAt, now time.Time) bool {
	return !publishedAt.IsZero() && !publishedAt.After(now)
}
