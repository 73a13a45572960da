package terrain

import "errors"

// Terrain errors.
var (
	// ErrInvalidInput reports malformed build parameters or grid data.
	ErrInvalidInput = errors.New("invalid terrain input")
	// ErrOutOfBounds reports a query outside the grid. Callers must gate
	// Sample with Contains.
	ErrOutOfBounds = errors.New("point outside terrain")
	// ErrTruncatedData reports a persisted terrain that ends early.
	ErrTruncatedData = errors.New("truncated terrain data")
)
