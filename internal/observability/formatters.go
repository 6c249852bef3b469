// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jonathan/pastry-blog/internal/content"
	"github.com/jonathan/pastry-blog/internal/scaling"
	"github.com/jonathan/pastry-blog/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxTitleRunes truncates titles in table cells
	maxTitleRunes = 40
	// dateLayout is used for publish dates
	dateLayout = "2006-01-02"
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// newTable returns a writer in the house style.
func (p *Printer) newTable(headers ...string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(p.out)
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	return tw
}

// PrintRecipeListing outputs one page of recipes as a table.
func (p *Printer) PrintRecipeListing(listing *content.Listing[types.Recipe]) {
	if listing == nil {
		return
	}

	tw := p.newTable("#", "Title", "Slug", "Difficulty", "Time", "Published")
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	offset := (listing.Page.Page - 1) * listing.PageSize
	for i, r := range listing.Items {
		tw.AppendRow(table.Row{
			offset + i + 1,
			truncate(r.Title, maxTitleRunes),
			r.Slug,
			r.Difficulty,
			formatMinutes(r.TotalMinutes()),
			r.PublishedAt.Format(dateLayout),
		})
	}

	filters := make([]string, 0, len(listing.Filters))
	for _, f := range listing.Filters {
		filters = append(filters, f.Facet+"="+f.Value)
	}
	footer := fmt.Sprintf("page %d/%d · %d recipes · sort %s", listing.Page.Page, max(listing.TotalPages, 1), listing.Total, listing.Sort)
	if len(filters) > 0 {
		footer += " · " + strings.Join(filters, ", ")
	}
	tw.SetCaption(footer)
	tw.Render()
}

// PrintScaledRecipe outputs a recipe's ingredients resized to a new serving count.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintScaledRecipe(recipe *types.Recipe, scaled *scaling.Scaled) {
	if recipe == nil || scaled == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Servings: %d → %d (×%s)\n", scaled.BaseServings, scaled.TargetServings, strconv.FormatFloat(scaled.Ratio, 'f', -1, 64)))
	if recipe.PanDiameterCM != nil && scaled.PanDiameterCM != nil {
		sb.WriteString(fmt.Sprintf("Pan:      %s cm → %d cm", strconv.FormatFloat(*recipe.PanDiameterCM, 'f', -1, 64), *scaled.PanDiameterCM))
	} else {
		sb.WriteString("Pan:      -")
	}
	p.printBox(strings.ToUpper(recipe.Title), sb.String())

	for _, group := range scaled.Ingredients {
		tw := p.newTable("Quantity", "Unit", "Ingredient", "Notes")
		tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
		if group.GroupName != "" {
			tw.SetTitle(group.GroupName)
		}
		for _, item := range group.Items {
			tw.AppendRow(table.Row{item.Quantity, item.Unit, item.Name, item.Notes})
		}
		tw.Render()
	}
}

// PrintSearchHits outputs the merged results of a search.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSearchHits(term string, hits []types.SearchHit) {
	if len(hits) == 0 {
		fmt.Fprintf(p.out, "No results for %q\n", term)
		return
	}

	tw := p.newTable("Type", "Title", "Slug", "Published")
	for _, h := range hits {
		tw.AppendRow(table.Row{h.Kind, truncate(h.Title, maxTitleRunes), h.Slug, h.PublishedAt.Format(dateLayout)})
	}
	tw.SetCaption(fmt.Sprintf("%d results for %q", len(hits), term))
	tw.Render()
}

// PrintImportResult outputs the summary of a content import.
func (p *Printer) PrintImportResult(result content.ImportResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recipes:     %d\n", result.Recipes))
	sb.WriteString(fmt.Sprintf("Techniques:  %d\n", result.Techniques))
	sb.WriteString(fmt.Sprintf("Science:     %d\n", result.Science))
	sb.WriteString(fmt.Sprintf("Products:    %d\n", result.Products))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Created %d, skipped %d existing", result.Created(), result.Skipped))

	p.printBox("IMPORT COMPLETE", sb.String())
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%d h", m/60)
	}
	return fmt.Sprintf("%d h %02d", m/60, m%60)
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes-3]) + "..."
}

// pad right-pads s to width runes; fmt's %-*s counts bytes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
