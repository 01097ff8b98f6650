// Package main provides the entry point for the spokes CLI.
//
// spokes crawls the 99spokes.com bicycle catalog and exports the
// collected model data as JSON, CSV, or Markdown.
//
// Usage:
//
//	spokes crawl
//	spokes crawl --year 2024 --brand trek
//
// See --help for all available options.
package main

// main is the entry point for spokes.
func main() {
	Execute()
}
