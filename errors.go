package matchbench

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrOutputExists indicates a sweep would write into a directory left by
	// an earlier sweep.
	ErrOutputExists = errors.New("matchbench: output already exists")

	// ErrInvalidGrid indicates the parameter grid is empty or malformed.
	ErrInvalidGrid = errors.New("matchbench: invalid parameter grid")

	// ErrMatcherFailed indicates the matcher returned an error for a cell.
	ErrMatcherFailed = errors.New("matchbench: matcher failed")

	// ErrIncompleteSweep indicates the sweep directory does not hold a
	// result for every cell of the grid.
	ErrIncompleteSweep = errors.New("matchbench: incomplete sweep")
)
