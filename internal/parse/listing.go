package parse

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/NFliegel/crawler-99spokes/internal/model"
)

// Structural markers for the three listing levels. Catalog URLs follow
// the pattern /bikes/<year>/<brand>/<model>; a link's path depth tells
// us which level it points into.
var (
	yearHrefRe  = regexp.MustCompile(`^/bikes/((?:19|20)\d{2})/?$`)
	brandHrefRe = regexp.MustCompile(`^/bikes/((?:19|20)\d{2})/([a-z0-9][a-z0-9._-]*)/?$`)
	modelHrefRe = regexp.MustCompile(`^/bikes/((?:19|20)\d{2})/([a-z0-9][a-z0-9._-]*)/([a-z0-9][a-z0-9._%-]*)/?$`)
)

// Listing parses listing pages at each hierarchy level.
// Relative links are resolved against the configured base URL.
type Listing struct {
	base *url.URL
}

// NewListing creates a listing parser for the given catalog site.
func NewListing(baseURL string) (*Listing, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Listing{base: u}, nil
}

// Years extracts the model years enumerated on the top-level listing
// page, in document order without duplicates. pageURL is only used for
// error context.
func (l *Listing) Years(content io.Reader, pageURL string) ([]model.YearEntry, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return nil, &ParseError{Level: model.LevelYears, URL: pageURL, Err: err}
	}

	years := make([]model.YearEntry, 0)
	seen := make(map[string]bool) // keyed by year so URL variants count once

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		link, path := l.resolve(sel.AttrOr("href", ""))
		if link == "" {
			return
		}
		m := yearHrefRe.FindStringSubmatch(path)
		if m == nil || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		years = append(years, model.YearEntry{Year: m[1], Link: link})
	})

	if len(years) == 0 {
		return nil, &ParseError{Level: model.LevelYears, URL: pageURL, Err: ErrNoEntries}
	}
	return years, nil
}

// Brands extracts the brands enumerated on a per-year listing page, in
// document order without duplicates. Links pointing into other years
// are ignored.
func (l *Listing) Brands(content io.Reader, pageURL, year string) ([]model.BrandEntry, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return nil, &ParseError{Level: model.LevelBrands, URL: pageURL, Err: err}
	}

	brands := make([]model.BrandEntry, 0)
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		link, path := l.resolve(sel.AttrOr("href", ""))
		if link == "" {
			return
		}
		m := brandHrefRe.FindStringSubmatch(path)
		if m == nil || m[1] != year || seen[m[2]] {
			return
		}
		seen[m[2]] = true
		brands = append(brands, model.BrandEntry{
			Name: cleanText(sel.Text()),
			Slug: m[2],
			Link: link,
		})
	})

	if len(brands) == 0 {
		return nil, &ParseError{Level: model.LevelBrands, URL: pageURL, Err: ErrNoEntries}
	}
	return brands, nil
}

// Models extracts the models enumerated on a brand's listing page, in
// document order without duplicates, plus the URL of the next listing
// page when the page links one via rel="next" (empty string otherwise).
func (l *Listing) Models(content io.Reader, pageURL, year, brand string) ([]model.ModelEntry, string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return nil, "", &ParseError{Level: model.LevelModels, URL: pageURL, Err: err}
	}

	models := make([]model.ModelEntry, 0)
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		link, path := l.resolve(sel.AttrOr("href", ""))
		if link == "" {
			return
		}
		m := modelHrefRe.FindStringSubmatch(path)
		if m == nil || m[1] != year || m[2] != brand || seen[m[3]] {
			return
		}
		seen[m[3]] = true
		models = append(models, model.ModelEntry{
			Name: cleanText(sel.Text()),
			Slug: m[3],
			Link: link,
		})
	})

	next := ""
	if href, ok := doc.Find(`a[rel="next"]`).First().Attr("href"); ok {
		if link, _ := l.resolve(href); link != "" && link != pageURL {
			next = link
		}
	}

	if len(models) == 0 && next == "" {
		return nil, "", &ParseError{Level: model.LevelModels, URL: pageURL, Err: ErrNoEntries}
	}
	return models, next, nil
}

// resolve turns an href into an absolute URL on the catalog host and
// returns it together with its path. Links to other hosts and
// non-navigational schemes resolve to the empty string.
func (l *Listing) resolve(href string) (link, path string) {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") {
		return "", ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", ""
	}

	resolved := l.base.ResolveReference(u)
	if !strings.EqualFold(resolved.Host, l.base.Host) {
		return "", ""
	}

	// Fragments never change the page identity.
	resolved.Fragment = ""
	return resolved.String(), resolved.Path
}
