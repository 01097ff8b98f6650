// Package model defines the data structures shared across the crawler.
//
// The types mirror the three-level hierarchy of the target catalog site
// (model year → brand → model) plus the final extracted record and the
// aggregate catalog produced by a crawl run.
//
// Design decision: This package depends on nothing else in the module.
// Keeping the data model dependency-free lets the fetch, parse, crawl,
// and report packages all import it without cycles.
package model
