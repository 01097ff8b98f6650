package report

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/NFliegel/crawler-99spokes/internal/model"
)

// fixedCSVHeader lists the columns every CSV export starts with.
// Attribute columns follow, in the sorted order of Catalog.AttributeKeys.
var fixedCSVHeader = []string{
	"year",
	"brand",
	"model",
	"price",
	"availability",
	"detail_url",
	"image_url",
}

// CSVWriter outputs the catalog as a flat CSV table.
// This format is designed for spreadsheets and data analysis tools.
//
// Design decision: We use standard encoding/csv because CSV is a simple
// format and the standard library handles quoting and escaping
// correctly. Attribute maps are flattened into one column per distinct
// attribute name so rows stay comparable across models.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the catalog in CSV format.
// The header is the fixed columns followed by the sorted union of
// attribute names, so the column set is stable for a given catalog.
func (w *CSVWriter) Write(catalog *model.Catalog) (int, error) {
	attrKeys := attributeColumns(catalog)

	// Render into a buffer first so a mid-write failure does not leave
	// a truncated header plus partial rows in the output file.
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	header := append(append([]string(nil), fixedCSVHeader...), attrKeys...)
	if err := cw.Write(header); err != nil {
		return 0, err
	}

	for _, rec := range catalog.Records {
		row := make([]string, 0, len(header))
		row = append(row,
			rec.Year,
			rec.Brand,
			rec.Model,
			priceString(rec.Price),
			rec.Availability,
			rec.DetailURL,
			rec.ImageURL,
		)
		for _, key := range attrKeys {
			value, _ := rec.Attribute(key)
			row = append(row, value)
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}

// attributeColumns returns the sorted attribute names that do not
// collide with a fixed column. The raw "price" attribute is the usual
// collision; its parsed value already fills the fixed price column.
func attributeColumns(catalog *model.Catalog) []string {
	fixed := make(map[string]bool, len(fixedCSVHeader))
	for _, name := range fixedCSVHeader {
		fixed[name] = true
	}

	keys := make([]string, 0)
	for _, key := range catalog.AttributeKeys() {
		if !fixed[key] {
			keys = append(keys, key)
		}
	}
	return keys
}
