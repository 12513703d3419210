package field

import "errors"

var (
	// ErrInvalidGrid indicates malformed grid extents or a value slice that
	// does not match them.
	ErrInvalidGrid = errors.New("field: invalid grid")
)
