package dynamo

import "errors"

// Domain errors for world construction.
var (
	// ErrInvalidRadius indicates a non-positive or non-finite particle radius.
	ErrInvalidRadius = errors.New("dynamo: radius must be positive and finite")

	// ErrInvalidGridSize indicates a grid too small to have interior cells.
	ErrInvalidGridSize = errors.New("dynamo: grid size must be at least 3")
)
