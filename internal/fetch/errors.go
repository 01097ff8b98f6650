package fetch

import "fmt"

// FetchError describes a failed page fetch. It carries the URL and,
// when the server responded at all, the HTTP status code.
//
// Design decision: A typed error rather than fmt.Errorf strings so the
// crawl driver can use errors.As to distinguish fetch failures from
// parse failures when recording skips.
type FetchError struct {
	// URL is the page that failed to fetch.
	URL string

	// StatusCode is the HTTP status code, or 0 when the request never
	// produced a response (network error, timeout).
	StatusCode int

	// Err is the underlying cause, nil for plain non-success statuses.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}
