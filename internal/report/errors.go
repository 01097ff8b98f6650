package report

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when an output format name does not
// match any known writer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// WriteError describes a failed catalog write. Unlike crawl failures,
// write failures abort the run; this type carries the format name so
// the failure message names the file that was lost.
type WriteError struct {
	// Format is the output format that failed (json, csv, markdown).
	Format string

	// Err is the underlying error.
	Err error
}

// Error returns the error message.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s output: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *WriteError) Unwrap() error {
	return e.Err
}
