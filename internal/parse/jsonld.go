package parse

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// productTypes are the JSON-LD @type values treated as model data.
var productTypes = map[string]bool{
	"product": true,
	"bike":    true,
	"bicycle": true,
}

// jsonLDProduct is the subset of a schema.org Product block the detail
// parser consumes. Fields are decoded leniently because real-world
// JSON-LD is inconsistent about types (price as string vs number,
// image as string vs list).
type jsonLDProduct struct {
	Name         string
	PriceText    string
	Availability string
	ImageURL     string
	DetailURL    string
	Properties   map[string]string
}

// extractJSONLD scans the document's ld+json script blocks for the
// first Product/Bike/Bicycle entry and returns it, or nil when the
// page embeds no usable product data. Malformed blocks are skipped;
// JSON-LD is an optional shortcut, never a reason to fail the page.
func extractJSONLD(doc *goquery.Document) *jsonLDProduct {
	var product *jsonLDProduct

	for _, node := range doc.Find(`script[type="application/ld+json"]`).Nodes {
		if product != nil {
			break
		}

		var data any
		if err := json.Unmarshal([]byte(nodeText(node)), &data); err != nil {
			continue
		}

		for _, item := range flattenJSONLD(data) {
			if p := productFromItem(item); p != nil {
				product = p
				break
			}
		}
	}

	return product
}

// flattenJSONLD normalizes a decoded ld+json payload into a list of
// candidate objects. Sites publish single objects, arrays, and @graph
// containers interchangeably.
func flattenJSONLD(data any) []map[string]any {
	switch v := data.(type) {
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			items := make([]map[string]any, 0, len(graph))
			for _, g := range graph {
				if m, ok := g.(map[string]any); ok {
					items = append(items, m)
				}
			}
			return items
		}
		return []map[string]any{v}
	case []any:
		items := make([]map[string]any, 0, len(v))
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				items = append(items, m)
			}
		}
		return items
	default:
		return nil
	}
}

// productFromItem converts one JSON-LD object into a jsonLDProduct,
// or nil when the object is not a product type.
func productFromItem(item map[string]any) *jsonLDProduct {
	typ, _ := item["@type"].(string)
	if !productTypes[strings.ToLower(typ)] {
		return nil
	}

	p := &jsonLDProduct{
		Name:       cleanText(asString(item["name"])),
		DetailURL:  asString(item["url"]),
		ImageURL:   firstString(item["image"]),
		Properties: make(map[string]string),
	}

	if offers, ok := item["offers"].(map[string]any); ok {
		p.PriceText = asString(offers["price"])
		p.Availability = trimSchemaPrefix(asString(offers["availability"]))
	}

	if props, ok := item["additionalProperty"].([]any); ok {
		for _, raw := range props {
			prop, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			name := cleanText(asString(prop["name"]))
			value := cleanText(asString(prop["value"]))
			if name != "" && value != "" {
				p.Properties[name] = value
			}
		}
	}

	return p
}

// trimSchemaPrefix strips the schema.org URL prefix from enum values,
// so "https://schema.org/InStock" and "InStock" read the same.
func trimSchemaPrefix(s string) string {
	for _, prefix := range []string{"https://schema.org/", "http://schema.org/"} {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimPrefix(s, prefix)
		}
	}
	return s
}

// asString renders a JSON scalar as a string. Numbers are formatted
// the way encoding/json decoded them.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// JSON numbers decode as float64; print integers without a
		// trailing ".0" so "1299" survives the round trip.
		if s == float64(int64(s)) {
			return strings.TrimSuffix(strings.TrimSuffix(jsonNumber(s), ".0"), ".00")
		}
		return jsonNumber(s)
	default:
		return ""
	}
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

// firstString returns v if it is a string, or the first string element
// if v is a list. JSON-LD image fields use both shapes.
func firstString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []any:
		for _, e := range s {
			if str, ok := e.(string); ok {
				return str
			}
		}
	}
	return ""
}
