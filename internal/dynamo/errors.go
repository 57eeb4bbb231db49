package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidArchetype indicates an archetype outside the closed set.
	ErrInvalidArchetype = errors.New("dynamo: invalid archetype")

	// ErrInvalidBounds indicates a viewport with non-positive or non-finite dimensions.
	ErrInvalidBounds = errors.New("dynamo: invalid viewport bounds")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrNoDrag indicates a drag operation with no grabbed body.
	ErrNoDrag = errors.New("dynamo: no body is being dragged")
)
