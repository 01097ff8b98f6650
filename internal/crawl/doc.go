// Package crawl walks the three-level catalog hierarchy and collects
// model records.
//
// # Architecture
//
// The package is designed around the Driver type, which coordinates one
// crawl run. The traversal is a sequential depth-first walk: the years
// listing is fetched first, then for each year the brand listing, for
// each brand the model listing (following pagination), and for each
// model its detail page.
//
// Design decision: The walk is strictly sequential rather than
// concurrent because:
//  1. The target is a single public site; politeness matters more than speed
//  2. A single in-flight request makes the crawl delay meaningful
//  3. Deterministic traversal order makes failures reproducible
//
// # Failure handling
//
// A fetch or parse failure below the root abandons that page's subtree
// and the walk continues with the next sibling. Every abandoned subtree
// is recorded on the catalog as a Skip. Only context cancellation stops
// the walk early; partially collected results are still returned so the
// caller can write them out.
//
// # Usage
//
//	driver, err := crawl.New(cfg, fetcher, logger)
//	catalog, err := driver.Run(ctx)
package crawl
