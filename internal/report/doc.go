// Package report provides catalog output in multiple formats.
//
// This package contains writers for the formats the crawler supports:
//   - JSONWriter: Structured JSON output for tool integration
//   - CSVWriter: Flat spreadsheet output with attribute columns
//   - MarkdownWriter: Human-readable documentation output
//   - ConsoleWriter: Terminal summary table
//
// Design decision: We separate catalog writing from the catalog data
// structures (which are in the model package) to follow the single
// responsibility principle. This allows adding new output formats
// without modifying the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. Unlike fetch
// and parse failures, which the crawl driver downgrades to skips, a
// write failure is fatal: the run's whole purpose is the output files.
package report
