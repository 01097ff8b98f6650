// Package parse extracts structured data from catalog markup.
//
// Two parsers live here. The listing parser walks listing pages at each
// hierarchy level (years, brands-in-year, models-in-brand) and returns
// the child entries in document order. The detail parser extracts one
// ModelRecord from a model's detail page, preferring embedded JSON-LD
// product data and falling back to DOM selectors.
//
// Design decision: We use goquery on top of golang.org/x/net/html rather
// than walking the node tree by hand because the extraction contract is
// a fixed set of selector lookups; CSS selectors state that contract
// directly and survive markup noise better than manual traversal.
package parse
