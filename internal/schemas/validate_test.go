package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validImport = `{
	"recipes": [{
		"slug": "crostata-di-albicocche",
		"title": "Crostata di albicocche",
		"categories": ["Crostate"],
		"difficulty": "facile",
		"servings": 8,
		"pan_diameter_cm": 24,
		"ingredients": [{"items": [{"quantity": "250", "unit": "g", "name": "farina 00"}]}],
		"published_at": "2024-05-01T08:00:00Z"
	}],
	"techniques": [{"slug": "temperaggio", "title": "Temperaggio", "category": "Cioccolato", "difficulty": "avanzato"}],
	"products": [{"name": "Tortiera 24 cm", "category": "stampi", "affiliate_url": "https://www.amazon.it/dp/B000123456"}]
}`

func TestValidateImport_Valid(t *testing.T) {
	assert.NoError(t, ValidateImport([]byte(validImport)))
}

func TestValidateImport_Empty(t *testing.T) {
	assert.NoError(t, ValidateImport([]byte(`{}`)))
}

func TestValidateImport_MissingFields(t *testing.T) {
	err := ValidateImport([]byte(`{"recipes": [{"slug": "torta", "title": "Torta"}]}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateImport_BadDifficultyAndSlug(t *testing.T) {
	err := ValidateImport([]byte(`{"techniques": [{"slug": "Con Spazi", "title": "T", "category": "c", "difficulty": "esperto"}]}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.GreaterOrEqual(t, len(validationErr.Errors), 2)
}

func TestValidateImport_UnknownCollection(t *testing.T) {
	err := ValidateImport([]byte(`{"posts": []}`))
	require.Error(t, err)
}

func TestValidateImport_NotJSON(t *testing.T) {
	err := ValidateImport([]byte(`not json`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateImport_FieldPath(t *testing.T) {
	err := ValidateImport([]byte(`{"recipes": [{
		"slug": "torta",
		"title": "Torta",
		"categories": ["Torte"],
		"difficulty": "facile",
		"servings": "otto",
		"ingredients": [{"items": [{"name": "uova"}]}]
	}]}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "recipes.0.servings", validationErr.Errors[0].Field)
}

func TestValidateImport_PanDiameterBounds(t *testing.T) {
	recipe := func(diameter string) []byte {
		return []byte(`{"recipes": [{
			"slug": "torta",
			"title": "Torta",
			"categories": ["Torte"],
			"difficulty": "facile",
			"servings": 8,
			"pan_diameter_cm": ` + diameter + `,
			"ingredients": [{"items": [{"name": "uova"}]}]
		}]}`)
	}

	assert.NoError(t, ValidateImport(recipe("200")))
	assert.Error(t, ValidateImport(recipe("200.5")))
	assert.Error(t, ValidateImport(recipe("1e300")))
	assert.Error(t, ValidateImport(recipe("0")))
}
