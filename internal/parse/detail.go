package parse

import (
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/NFliegel/crawler-99spokes/internal/model"
)

// Detail parses a single model's detail page into a ModelRecord.
//
// Extraction order: embedded JSON-LD product data first, DOM selectors
// as a fallback and supplement. JSON-LD, when present, is the site's
// own structured publication of the same fields and needs no selector
// maintenance; the DOM pass still runs afterwards to pick up spec rows
// that JSON-LD omits.
type Detail struct {
	base *url.URL
}

// NewDetail creates a detail parser for the given catalog site.
func NewDetail(baseURL string) (*Detail, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Detail{base: u}, nil
}

// Record extracts the model record from a detail page. The returned
// record carries every field found on the page; Year and Brand are left
// empty for the crawl driver to resolve from the hierarchy.
//
// A page without a model name fails with a ParseError. Missing optional
// fields are recorded as absent, never as errors, and all attribute
// values keep the literal page text.
func (d *Detail) Record(content io.Reader, pageURL string) (*model.ModelRecord, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return nil, &ParseError{Level: model.LevelDetail, URL: pageURL, Err: err}
	}

	rec := &model.ModelRecord{DetailURL: pageURL}

	if p := extractJSONLD(doc); p != nil {
		rec.Model = p.Name
		rec.Availability = p.Availability
		rec.ImageURL = d.absolute(p.ImageURL)
		if p.DetailURL != "" {
			rec.DetailURL = d.absolute(p.DetailURL)
		}
		if p.PriceText != "" {
			rec.SetAttribute("price", p.PriceText)
			if v, ok := ParsePrice(p.PriceText); ok {
				rec.Price = &v
			}
		}
		for name, value := range p.Properties {
			rec.SetAttribute(name, value)
		}
	}

	d.fillFromDOM(doc, rec)

	if rec.Model == "" {
		return nil, &ParseError{Level: model.LevelDetail, URL: pageURL, Err: ErrNoModelName}
	}
	return rec, nil
}

// fillFromDOM supplements the record with selector lookups. Fields the
// JSON-LD pass already filled are left alone.
func (d *Detail) fillFromDOM(doc *goquery.Document, rec *model.ModelRecord) {
	if rec.Model == "" {
		rec.Model = cleanText(doc.Find("h1").First().Text())
	}

	if _, ok := rec.Attribute("price"); !ok {
		if raw := cleanText(doc.Find(".price").First().Text()); raw != "" {
			rec.SetAttribute("price", raw)
			if v, ok := ParsePrice(raw); ok {
				rec.Price = &v
			}
		}
	}

	if rec.Availability == "" {
		rec.Availability = cleanText(doc.Find(".availability").First().Text())
	}

	if rec.ImageURL == "" {
		if src, ok := doc.Find("img").First().Attr("src"); ok {
			rec.ImageURL = d.absolute(src)
		}
	}

	// Spec tables: header/value row pairs. Both th/td rows and
	// two-cell td rows appear in the wild.
	doc.Find("table.specs tr, .specs table tr").Each(func(_ int, row *goquery.Selection) {
		key := cleanText(row.Find("th").First().Text())
		value := cleanText(row.Find("td").Last().Text())
		if key == "" {
			cells := row.Find("td")
			if cells.Length() >= 2 {
				key = cleanText(cells.First().Text())
			}
		}
		if key == "" || value == "" || key == value {
			return
		}
		if _, exists := rec.Attribute(key); !exists {
			rec.SetAttribute(key, value)
		}
	})
}

// absolute resolves a possibly-relative URL against the catalog base.
func (d *Detail) absolute(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return d.base.ResolveReference(u).String()
}
