package richtext

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	html := `
		<h2>La frolla perfetta</h2>
		<p>Lavorate il <strong>burro</strong> freddo   con lo zucchero.</p>
		<script>track()</script>
		<ul><li>250 g di farina</li><li>q.b. sale</li></ul>`

	text, err := PlainText(html)
	require.NoError(t, err)

	assert.Equal(t, "La frolla perfetta\nLavorate il burro freddo con lo zucchero.\n250 g di farina\nq.b. sale", text)
	assert.NotContains(t, text, "track")
}

func TestPlainText_Empty(t *testing.T) {
	text, err := PlainText("   ")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExcerpt(t *testing.T) {
	html := "<p>" + strings.Repeat("zucchero a velo ", 30) + "</p>"

	excerpt, err := Excerpt(html, 50)
	require.NoError(t, err)

	assert.LessOrEqual(t, utf8.RuneCountInString(excerpt), 50)
	assert.True(t, strings.HasSuffix(excerpt, "…"))
	assert.True(t, strings.HasPrefix(excerpt, "zucchero a velo"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "breve", Truncate("breve", 10))
	assert.Equal(t, "senza limite", Truncate("senza limite", 0))
	assert.Equal(t, "torta di…", Truncate("torta di mele caramellate", 12))
	assert.Equal(t, "àèìòùàèì…", Truncate("àèìòùàèìòù", 9))
}
