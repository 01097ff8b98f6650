package model

import "errors"

// Validation errors returned by ModelRecord.Validate.
var (
	// ErrIncompleteRecord means the record's identity (year, brand,
	// model) is not fully resolved.
	ErrIncompleteRecord = errors.New("record identity incomplete")

	// ErrInvalidYear means Year is not a four-digit year.
	ErrInvalidYear = errors.New("invalid model year")

	// ErrInvalidPrice means a parsed price is negative.
	ErrInvalidPrice = errors.New("negative price")

	// ErrBlankAttribute means an attribute name is blank.
	ErrBlankAttribute = errors.New("blank attribute name")
)
