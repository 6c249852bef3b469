package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/pastry-blog/internal/types"
)

// ProductInfo is the metadata advertised by a product page.
type ProductInfo struct {
	Title       string
	Description string
	ImageURL    string
	Price       *float64
	Currency    string
}

// ProductMetadata fetches pageURL and reads its Open Graph / product meta tags.
func ProductMetadata(ctx context.Context, pageURL string, opts *Options) (*ProductInfo, error) {
	result, err := URL(ctx, pageURL, opts)
	if err != nil {
		return nil, err
	}
	return ParseProductHTML(result.HTML, pageURL)
}

// ParseProductHTML extracts product metadata from html. Relative image URLs
// are resolved against pageURL.
func ParseProductHTML(html, pageURL string) (*ProductInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	info := &ProductInfo{
		Title:       firstNonEmpty(meta(doc, "og:title"), strings.TrimSpace(doc.Find("#productTitle").First().Text()), strings.TrimSpace(doc.Find("title").First().Text())),
		Description: firstNonEmpty(meta(doc, "og:description"), meta(doc, "description")),
		ImageURL:    resolve(pageURL, firstNonEmpty(meta(doc, "og:image"), attr(doc, "#landingImage", "src"))),
		Currency:    strings.ToUpper(firstNonEmpty(meta(doc, "product:price:currency"), meta(doc, "og:price:currency"))),
	}

	if raw := firstNonEmpty(meta(doc, "product:price:amount"), meta(doc, "og:price:amount")); raw != "" {
		if price, ok := parsePrice(raw); ok {
			info.Price = &price
		}
	}

	if info.Title == "" {
		return nil, fmt.Errorf("no product title found on %s", pageURL)
	}
	return info, nil
}

// Apply copies the fetched metadata onto p without clearing fields the page
// did not advertise. Curated names are kept.
func (i *ProductInfo) Apply(p *types.Product) {
	if p.Name == "" {
		p.Name = i.Title
	}
	if i.Description != "" && p.Description == "" {
		p.Description = i.Description
	}
	if i.ImageURL != "" {
		p.ImageURL = i.ImageURL
	}
	if i.Price != nil {
		p.Price = i.Price
	}
	if i.Currency != "" {
		p.Currency = i.Currency
	}
}

func meta(doc *goquery.Document, name string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, name, name)).First()
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolve(pageURL, ref string) string {
	if ref == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}

// parsePrice accepts "24.90", "24,90" and "1.024,90".
func parsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
