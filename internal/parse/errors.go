package parse

import (
	"errors"
	"fmt"

	"github.com/NFliegel/crawler-99spokes/internal/model"
)

// Sentinel causes carried inside a ParseError.
var (
	// ErrNoEntries is returned when a listing page contains none of the
	// structural markers expected at its level. This usually means the
	// page shape deviated from expectations (site redesign, empty year).
	ErrNoEntries = errors.New("no entries found")

	// ErrNoModelName is returned when a detail page is missing the model
	// name, the one required identity field.
	ErrNoModelName = errors.New("model name not found")

	// ErrBadDocument is returned when the markup cannot be parsed at all.
	ErrBadDocument = errors.New("unparseable document")
)

// ParseError describes an unexpected page structure. It names the
// hierarchy level and the URL so a skipped subtree can be traced back
// to the page that caused it.
type ParseError struct {
	// Level is the hierarchy level the page was expected to serve.
	Level model.Level

	// URL is the page that failed to parse.
	URL string

	// Err is the underlying cause, one of the sentinels above or a
	// wrapped parser error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s page %s: %v", e.Level, e.URL, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *ParseError) Unwrap() error {
	return e.Err
}
