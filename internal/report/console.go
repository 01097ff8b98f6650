package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/NFliegel/crawler-99spokes/internal/model"
)

// ConsoleWriter renders a crawl summary as a terminal table.
// It is meant for the end of an interactive run, not for files; the
// file formats carry the full data.
//
// Design decision: We use go-pretty for the table rendering rather
// than hand-formatted columns because it handles width calculation and
// alignment, and its rounded style is readable in any terminal.
type ConsoleWriter struct {
	baseWriter
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer) *ConsoleWriter {
	return &ConsoleWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the per-brand summary table followed by the run totals.
func (w *ConsoleWriter) Write(catalog *model.Catalog) (int, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w.output)
	t.SetTitle("99spokes crawl summary")

	t.AppendHeader(table.Row{"Brand", "Models"})
	counts := catalog.RecordsByBrand()
	for _, brand := range catalog.Brands() {
		t.AppendRow(table.Row{brand, counts[brand]})
	}
	t.AppendFooter(table.Row{"Total", strconv.Itoa(len(catalog.Records))})

	rendered := t.Render()
	total := len(rendered) + 1 // Render mirrors with a trailing newline

	n, err := fmt.Fprintf(w.output, "pages: %d  records: %d  skipped: %d  duration: %s\n",
		catalog.Stats.PagesFetched,
		catalog.Stats.RecordsEmitted,
		catalog.Stats.SubtreesSkipped,
		catalog.Stats.Duration.Round(time.Millisecond))
	return total + n, err
}
