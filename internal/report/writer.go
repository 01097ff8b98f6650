package report

import (
	"io"
	"strconv"

	"github.com/NFliegel/crawler-99spokes/internal/model"
)

// Writer defines the interface for catalog output.
// Implementations write the crawl result in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the catalog to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(catalog *model.Catalog) (int, error)
}

// New creates a Writer for the named format writing to output.
// Known formats are "json", "csv", and "markdown".
func New(format string, output io.Writer) (Writer, error) {
	switch format {
	case "json":
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case "csv":
		return NewCSVWriter(output), nil
	case "markdown":
		return NewMarkdownWriter(output), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write catalogs, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the catalog to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(catalog *model.Catalog) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(catalog)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for catalog writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// priceString renders an optional price for tabular output.
// A missing price renders as the empty string, never as zero.
func priceString(price *float64) string {
	if price == nil {
		return ""
	}
	return strconv.FormatFloat(*price, 'f', -1, 64)
}
