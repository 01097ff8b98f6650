// Package fetch retrieves catalog pages over HTTP.
//
// The fetcher is deliberately simple: one GET at a time, a bounded
// retry with exponential backoff for transient failures, and a typed
// FetchError for everything that ultimately fails. There is no caching
// and no parallelism; the crawl driver decides how to react to errors.
package fetch
