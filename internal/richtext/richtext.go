// Package richtext turns the HTML bodies coming from the editor into plain
// text for excerpts and search.
package richtext

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultExcerptLength is the excerpt size, in runes, used by listings.
const DefaultExcerptLength = 160

// blockSelectors are elements that end a line of text.
const blockSelectors = "p, h1, h2, h3, h4, h5, h6, li, blockquote, figcaption, br, div"

// PlainText strips markup from an HTML fragment. Scripts, styles and embedded
// media are dropped and block elements become line breaks.
func PlainText(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, figure img, svg").Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(doc.Find("body").Text()), nil
}

// Excerpt returns the first paragraph-ish text of html, cut at a word
// boundary to at most maxRunes runes (an ellipsis is appended when cut).
func Excerpt(html string, maxRunes int) (string, error) {
	text, err := PlainText(html)
	if err != nil {
		return "", err
	}
	return Truncate(strings.ReplaceAll(text, "\n", " "), maxRunes), nil
}

// Truncate shortens text to at most maxRunes runes, preferring a word boundary.
func Truncate(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:maxRunes-1])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:.") + "…"
}

// cleanWhitespace trims every line, collapses inner runs of spaces and drops
// empty lines.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
