package source

import "errors"

var (
	// ErrSourceUnavailable is returned when the dataset cannot be opened
	// or read. Callers report it to the user and skip the analysis.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMissingColumn is returned when a required column is absent from
	// the dataset. It is fatal to the run.
	ErrMissingColumn = errors.New("missing required column")
)
