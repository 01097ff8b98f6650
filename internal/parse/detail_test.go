package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/NFliegel/crawler-99spokes/internal/model"
)

const detailURL = baseURL + "/bikes/2024/trek/marlin-7"

// TestDetailJSONLD tests extraction from embedded JSON-LD product data.
func TestDetailJSONLD(t *testing.T) {
	t.Parallel()

	page := `<html><head>
	<script type="application/ld+json">
	{
	  "@context": "http://schema.org",
	  "@type": "Product",
	  "name": "Marlin 7",
	  "image": "/images/marlin-7.jpg",
	  "url": "/bikes/2024/trek/marlin-7",
	  "offers": {"price": "1099.99", "availability": "https://schema.org/InStock"},
	  "additionalProperty": [
	    {"@type": "PropertyValue", "name": "Frame", "value": "Alpha Silver Aluminum"},
	    {"@type": "PropertyValue", "name": "Fork", "value": "RockShox Judy"}
	  ]
	}
	</script>
	</head><body><h1>should not be used</h1></body></html>`

	d, err := NewDetail(baseURL)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}

	rec, err := d.Record(strings.NewReader(page), detailURL)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if rec.Model != "Marlin 7" {
		t.Errorf("Model = %q, want %q", rec.Model, "Marlin 7")
	}
	if rec.Price == nil || *rec.Price != 1099.99 {
		t.Errorf("Price = %v, want 1099.99", rec.Price)
	}
	if rec.Availability != "InStock" {
		t.Errorf("Availability = %q, want InStock", rec.Availability)
	}
	if rec.ImageURL != baseURL+"/images/marlin-7.jpg" {
		t.Errorf("ImageURL = %q, want absolute image URL", rec.ImageURL)
	}
	if rec.DetailURL != detailURL {
		t.Errorf("DetailURL = %q, want %q", rec.DetailURL, detailURL)
	}

	if got, _ := rec.Attribute("price"); got != "1099.99" {
		t.Errorf("raw price attribute = %q, want literal text", got)
	}
	if got, _ := rec.Attribute("Frame"); got != "Alpha Silver Aluminum" {
		t.Errorf("Frame = %q, want literal text", got)
	}
	if got, _ := rec.Attribute("Fork"); got != "RockShox Judy" {
		t.Errorf("Fork = %q, want literal text", got)
	}
}

// TestDetailDOMFallback tests the selector pass when no JSON-LD exists.
func TestDetailDOMFallback(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<h1> Marlin 7 </h1>
		<span class="price">$1,099.99</span>
		<span class="availability">In stock</span>
		<img src="/images/marlin-7.jpg" alt="">
		<div class="specs"><table>
			<tr><th>Frame</th><td>Alpha Silver Aluminum</td></tr>
			<tr><td>Drivetrain</td><td>Shimano Deore</td></tr>
		</table></div>
	</body></html>`

	d, err := NewDetail(baseURL)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}

	rec, err := d.Record(strings.NewReader(page), detailURL)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if rec.Model != "Marlin 7" {
		t.Errorf("Model = %q, want whitespace-trimmed h1 text", rec.Model)
	}
	if got, _ := rec.Attribute("price"); got != "$1,099.99" {
		t.Errorf("raw price = %q, want literal text", got)
	}
	if rec.Price == nil || *rec.Price != 1099.99 {
		t.Errorf("Price = %v, want 1099.99", rec.Price)
	}
	if rec.Availability != "In stock" {
		t.Errorf("Availability = %q, want %q", rec.Availability, "In stock")
	}
	if rec.ImageURL != baseURL+"/images/marlin-7.jpg" {
		t.Errorf("ImageURL = %q, want resolved image", rec.ImageURL)
	}
	if got, _ := rec.Attribute("Frame"); got != "Alpha Silver Aluminum" {
		t.Errorf("Frame = %q", got)
	}
	if got, _ := rec.Attribute("Drivetrain"); got != "Shimano Deore" {
		t.Errorf("Drivetrain = %q", got)
	}
}

// TestDetailMissingOptionalFields tests that absent fields stay absent.
func TestDetailMissingOptionalFields(t *testing.T) {
	t.Parallel()

	page := `<html><body><h1>Marlin 7</h1></body></html>`

	d, err := NewDetail(baseURL)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}

	rec, err := d.Record(strings.NewReader(page), detailURL)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if rec.Price != nil {
		t.Errorf("Price = %v, want nil", rec.Price)
	}
	if rec.Availability != "" {
		t.Errorf("Availability = %q, want empty", rec.Availability)
	}
	if len(rec.Attributes) != 0 {
		t.Errorf("Attributes = %v, want empty", rec.Attributes)
	}
}

// TestDetailMissingName tests that a missing model name is fatal for the page.
func TestDetailMissingName(t *testing.T) {
	t.Parallel()

	page := `<html><body><span class="price">$999</span></body></html>`

	d, err := NewDetail(baseURL)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}

	_, err = d.Record(strings.NewReader(page), detailURL)
	if err == nil {
		t.Fatal("expected error for page without model name")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Level != model.LevelDetail {
		t.Errorf("level = %v, want %v", pe.Level, model.LevelDetail)
	}
	if !errors.Is(err, ErrNoModelName) {
		t.Errorf("expected ErrNoModelName cause, got %v", pe.Err)
	}
	if pe.URL != detailURL {
		t.Errorf("URL = %q, want page URL", pe.URL)
	}
}

// TestDetailJSONLDGraph tests products nested in an @graph container.
func TestDetailJSONLDGraph(t *testing.T) {
	t.Parallel()

	page := `<html><head>
	<script type="application/ld+json">
	{"@graph": [
	  {"@type": "BreadcrumbList"},
	  {"@type": "Bicycle", "name": "Spectral CF 8", "offers": {"price": 4299}}
	]}
	</script>
	</head><body></body></html>`

	d, err := NewDetail(baseURL)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}

	rec, err := d.Record(strings.NewReader(page), detailURL)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if rec.Model != "Spectral CF 8" {
		t.Errorf("Model = %q, want graph product name", rec.Model)
	}
	if rec.Price == nil || *rec.Price != 4299 {
		t.Errorf("Price = %v, want 4299", rec.Price)
	}
}

// TestDetailMalformedJSONLD tests that broken JSON-LD falls back to the DOM.
func TestDetailMalformedJSONLD(t *testing.T) {
	t.Parallel()

	page := `<html><head>
	<script type="application/ld+json">{not valid json</script>
	</head><body><h1>Marlin 7</h1></body></html>`

	d, err := NewDetail(baseURL)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}

	rec, err := d.Record(strings.NewReader(page), detailURL)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if rec.Model != "Marlin 7" {
		t.Errorf("Model = %q, want DOM fallback name", rec.Model)
	}
}
