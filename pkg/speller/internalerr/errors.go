package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")

	// ErrEmptyCorpus means the cleaned corpus produced no tokens, so no model can be built.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrMarkerNotFound means a corpus source is missing its start or end marker.
	ErrMarkerNotFound = errors.New("marker not found")
)
