package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/NFliegel/crawler-99spokes/internal/model"
)

// MarkdownWriter outputs the catalog in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the catalog in Markdown format.
func (w *MarkdownWriter) Write(catalog *model.Catalog) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, catalog)
	w.writeRecords(md, catalog)
	w.writeSkips(md, catalog)

	return len(md.String()), md.Build()
}

// writeHeader writes the catalog header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, catalog *model.Catalog) {
	md.H1("Bike Catalog")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + catalog.BaseURL + "`"},
			{"Crawled At", catalog.Stats.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", catalog.Stats.Duration.Round(time.Millisecond).String()},
			{"Pages Fetched", strconv.Itoa(catalog.Stats.PagesFetched)},
			{"Records", strconv.Itoa(catalog.Stats.RecordsEmitted)},
			{"Skipped Subtrees", strconv.Itoa(catalog.Stats.SubtreesSkipped)},
		},
	})
	md.PlainText("")
}

// writeRecords writes the per-brand summary and the full record table.
func (w *MarkdownWriter) writeRecords(md *markdown.Markdown, catalog *model.Catalog) {
	md.H2("Models")
	md.PlainText("")

	if len(catalog.Records) == 0 {
		md.PlainText("No models collected.")
		md.PlainText("")
		return
	}

	counts := catalog.RecordsByBrand()
	brandRows := make([][]string, 0, len(counts))
	for _, brand := range catalog.Brands() {
		brandRows = append(brandRows, []string{brand, strconv.Itoa(counts[brand])})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Brand", "Models"},
		Rows:   brandRows,
	})
	md.PlainText("")

	rows := make([][]string, 0, len(catalog.Records))
	for _, rec := range catalog.Records {
		rows = append(rows, []string{
			rec.Year,
			rec.Brand,
			"[" + rec.Model + "](" + rec.DetailURL + ")",
			priceString(rec.Price),
			rec.Availability,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Year", "Brand", "Model", "Price", "Availability"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSkips writes the list of abandoned subtrees, if any.
func (w *MarkdownWriter) writeSkips(md *markdown.Markdown, catalog *model.Catalog) {
	if len(catalog.Skips) == 0 {
		return
	}

	md.H2("Skipped Subtrees")
	md.PlainText("")

	items := make([]string, 0, len(catalog.Skips))
	for _, skip := range catalog.Skips {
		items = append(items, "`"+skip.URL+"` ("+skip.Level.String()+"): "+skip.Reason)
	}
	md.BulletList(items...)
	md.PlainText("")
}
