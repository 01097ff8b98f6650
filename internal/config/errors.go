package config

import "errors"

// Configuration validation errors returned by Config.Validate().
//
// Design decision: Package-level sentinel errors rather than fresh error
// instances, so callers can use errors.Is() for programmatic handling
// while the messages stay human-readable.
var (
	// ErrNoBaseURL is returned when the base URL is empty.
	ErrNoBaseURL = errors.New("no base URL specified")

	// ErrInvalidBaseURL is returned when the base URL cannot be parsed
	// or lacks a scheme or host.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	// Use 0 for no delay between requests.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidMaxRetries is returned when the retry count is negative.
	// Use 0 to disable retries entirely.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be non-negative")

	// ErrInvalidRetryWait is returned when the retry backoff bounds are
	// negative or inverted.
	ErrInvalidRetryWait = errors.New("invalid retry wait: min must be non-negative and max must be >= min")

	// ErrInvalidMaxModels is returned when the model cap is negative.
	// Use 0 for an unbounded crawl.
	ErrInvalidMaxModels = errors.New("invalid max models: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoOutputFormat is returned when no output format is requested.
	ErrNoOutputFormat = errors.New("no output format specified")

	// ErrUnknownFormat is returned when an output format is not one of
	// json, csv, or markdown.
	ErrUnknownFormat = errors.New("unknown output format: must be json, csv, or markdown")
)
