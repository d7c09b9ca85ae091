package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoSource is returned when no dataset is given.
	ErrNoSource = errors.New("no dataset specified: provide a CSV file, SQLite database or HTML directory")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidSampleCount is returned when the sample count is negative.
	ErrInvalidSampleCount = errors.New("invalid sample count: must not be negative")

	// ErrInvalidSampleWidth is returned when the sample width cannot fit a
	// character and the ellipsis.
	ErrInvalidSampleWidth = errors.New("invalid sample width: must be at least 4")

	// ErrConflictingSummaryFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingSummaryFormats = errors.New("conflicting summary formats: --json and --markdown cannot be used together")

	// ErrEmptyColumnName is returned when a column name resolves to an
	// empty string.
	ErrEmptyColumnName = errors.New("invalid column mapping: column names must not be empty")
)
