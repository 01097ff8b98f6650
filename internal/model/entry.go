package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CrawlTarget is a URL paired with the hierarchy level it represents.
// Targets are created by the crawl driver and consumed immediately;
// they are never stored between runs.
type CrawlTarget struct {
	// URL is the absolute URL of the page to fetch.
	URL string

	// Level is the hierarchy level the page belongs to.
	Level Level
}

// YearEntry is a single model year discovered on the years listing page.
type YearEntry struct {
	// Year is the four-digit model year as it appears in the URL.
	Year string `json:"year"`

	// Link is the absolute URL of the year's brand listing page.
	Link string `json:"link"`
}

// BrandEntry is a single brand discovered on a per-year listing page.
type BrandEntry struct {
	// Name is the brand name as rendered on the listing page.
	// May be empty when the anchor carries no text; Slug is always set.
	Name string `json:"name"`

	// Slug is the URL path segment identifying the brand.
	Slug string `json:"slug"`

	// Link is the absolute URL of the brand's model listing page.
	Link string `json:"link"`
}

// DisplayName returns the brand name for human-readable output.
// When the listing anchor carried no text, the slug is title-cased
// instead ("santa-cruz" → "Santa Cruz").
func (b BrandEntry) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(b.Slug, "-", " "))
}

// ModelEntry is a single model discovered on a brand's listing page.
type ModelEntry struct {
	// Name is the model name as rendered on the listing page.
	Name string `json:"name"`

	// Slug is the URL path segment identifying the model.
	Slug string `json:"slug"`

	// Link is the absolute URL of the model's detail page.
	Link string `json:"link"`
}
