package field

import (
	"fmt"
	"math"
)

// Field3 is a scalar field on a regular 3D grid with fixed axis extents.
// Values are stored in a flat slice, x-fastest, so the element at (i, j, k)
// lives at index (k*Ny+j)*Nx + i.
type Field3 struct {
	Nx, Ny, Nz int
	data       []float64
}

// New allocates a zero-valued field. Every extent must be at least 1.
func New(nx, ny, nz int) (*Field3, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("%w: extents (%d, %d, %d)", ErrInvalidGrid, nx, ny, nz)
	}
	return &Field3{
		Nx:   nx,
		Ny:   ny,
		Nz:   nz,
		data: make([]float64, nx*ny*nz),
	}, nil
}

// FromValues wraps an existing flat value slice. The slice is used directly,
// not copied, and its length must equal nx*ny*nz.
func FromValues(nx, ny, nz int, values []float64) (*Field3, error) {
	f, err := New(nx, ny, nz)
	if err != nil {
		return nil, err
	}
	if len(values) != nx*ny*nz {
		return nil, fmt.Errorf("%w: %d values for extents (%d, %d, %d)",
			ErrInvalidGrid, len(values), nx, ny, nz)
	}
	f.data = values
	return f, nil
}

func (f *Field3) index(i, j, k int) int {
	return (k*f.Ny+j)*f.Nx + i
}

// At returns the value at grid position (i, j, k). Indices are not bounds
// checked beyond the slice access itself.
func (f *Field3) At(i, j, k int) float64 {
	return f.data[f.index(i, j, k)]
}

func (f *Field3) Set(i, j, k int, v float64) {
	f.data[f.index(i, j, k)] = v
}

// Values exposes the flat backing slice in storage order.
func (f *Field3) Values() []float64 {
	return f.data
}

// Len returns the total number of grid cells.
func (f *Field3) Len() int {
	return len(f.data)
}

// SameExtents reports whether two fields share the same grid shape.
func (f *Field3) SameExtents(other *Field3) bool {
	return f.Nx == other.Nx && f.Ny == other.Ny && f.Nz == other.Nz
}

// Fill sets every cell to f(i, j, k).
func (f *Field3) Fill(fn func(i, j, k int) float64) {
	for k := 0; k < f.Nz; k++ {
		for j := 0; j < f.Ny; j++ {
			for i := 0; i < f.Nx; i++ {
				f.data[f.index(i, j, k)] = fn(i, j, k)
			}
		}
	}
}

// MinMax returns the smallest and largest values in the field.
func (f *Field3) MinMax() (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range f.data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Clone returns a deep copy.
func (f *Field3) Clone() *Field3 {
	c := &Field3{Nx: f.Nx, Ny: f.Ny, Nz: f.Nz, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}
