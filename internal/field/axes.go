package field

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Axes carries the physical cell-center coordinates of a grid, in meters.
// Z runs downward from the surface, so Z values are non-positive.
type Axes struct {
	X, Y, Z []float64
}

// NewAxes builds cell-center coordinates for a domain of extent (lx, ly, lz)
// discretized into (nx, ny, nz) cells. Z[0] is the deepest cell.
func NewAxes(nx, ny, nz int, lx, ly, lz float64) (*Axes, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("%w: extents (%d, %d, %d)", ErrInvalidGrid, nx, ny, nz)
	}
	if lx <= 0 || ly <= 0 || lz <= 0 {
		return nil, fmt.Errorf("%w: domain size (%g, %g, %g)", ErrInvalidGrid, lx, ly, lz)
	}
	return &Axes{
		X: centers(nx, 0, lx),
		Y: centers(ny, 0, ly),
		Z: centers(nz, -lz, 0),
	}, nil
}

// centers returns n cell-center coordinates spanning [lo, hi].
func centers(n int, lo, hi float64) []float64 {
	h := (hi - lo) / float64(n)
	if n == 1 {
		return []float64{lo + h/2}
	}
	dst := make([]float64, n)
	return floats.Span(dst, lo+h/2, hi-h/2)
}
