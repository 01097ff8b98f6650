package model

import "strings"

// ModelRecord is the final extracted unit for one bicycle model.
// It is created by the detail parser, owned by the crawl driver until
// handed to an output writer, and treated as immutable afterwards.
//
// Design decision: Attribute values keep the literal text found on the
// page. The only derived field is Price, recovered from the raw price
// text for convenience; the raw text itself stays in Attributes so no
// information is lost to normalization.
type ModelRecord struct {
	// Year is the four-digit model year, resolved from the hierarchy.
	Year string `json:"year"`

	// Brand is the brand identifier, resolved from the hierarchy.
	Brand string `json:"brand"`

	// Model is the model name extracted from the detail page.
	// This is the only required detail field; a page without it is
	// rejected by the parser.
	Model string `json:"model"`

	// Price is the numeric price parsed from the page's price text.
	// Nil when the page carries no recognizable price.
	Price *float64 `json:"price,omitempty"`

	// Availability is the stock state as published by the site
	// (e.g., "InStock"). Empty when absent.
	Availability string `json:"availability,omitempty"`

	// ImageURL is the absolute URL of the model's primary image.
	ImageURL string `json:"image_url,omitempty"`

	// DetailURL is the absolute URL of the detail page the record
	// was extracted from.
	DetailURL string `json:"detail_url"`

	// Attributes maps attribute names to the raw text values found at
	// the corresponding structural locations (spec rows, price text,
	// JSON-LD additional properties).
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Complete reports whether the record's identity is fully resolved.
// Records failing this check are never emitted.
func (r *ModelRecord) Complete() bool {
	return r.Year != "" && r.Brand != "" && r.Model != ""
}

// Validate checks the record's shape before it is accepted into a
// catalog: a resolved identity, a four-digit model year, a
// non-negative price, and no blank attribute names.
func (r *ModelRecord) Validate() error {
	if !r.Complete() {
		return ErrIncompleteRecord
	}
	if len(r.Year) != 4 || strings.IndexFunc(r.Year, notDigit) >= 0 {
		return ErrInvalidYear
	}
	if r.Price != nil && *r.Price < 0 {
		return ErrInvalidPrice
	}
	for k := range r.Attributes {
		if strings.TrimSpace(k) == "" {
			return ErrBlankAttribute
		}
	}
	return nil
}

func notDigit(c rune) bool {
	return c < '0' || c > '9'
}

// Attribute returns the raw text value for the named attribute and
// whether it was present on the page.
func (r *ModelRecord) Attribute(name string) (string, bool) {
	v, ok := r.Attributes[name]
	return v, ok
}

// SetAttribute records a raw attribute value, allocating the map on
// first use. Empty values are ignored so absent fields stay absent.
func (r *ModelRecord) SetAttribute(name, value string) {
	if value == "" {
		return
	}
	if r.Attributes == nil {
		r.Attributes = make(map[string]string)
	}
	r.Attributes[name] = value
}
