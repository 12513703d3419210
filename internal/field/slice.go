package field

// Grid2D is an ordered 2D view of a field slice, rows first. For a vertical
// section through an ocean field the row index runs along depth.
type Grid2D [][]float64

// Rows returns the number of rows.
func (g Grid2D) Rows() int { return len(g) }

// Cols returns the number of columns, 0 for an empty grid.
func (g Grid2D) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Slice2D flattens the field to a 2D grid for display. Axes with extent 1
// collapse at index 0; axes with larger extent keep their full range. The
// result is transposed relative to storage order so that the later surviving
// axis becomes the row axis: a field with extents (256, 1, 32) yields a grid
// of shape (32, 256), indexed grid[z][x].
//
// When more than one axis collapses the view degenerates to a single row, or
// to a 1x1 grid when all three extents are 1. A field with no collapsing
// axis is sectioned through the middle of the y axis.
func (f *Field3) Slice2D() Grid2D {
	switch {
	case f.Nx > 1 && f.Nz > 1:
		// x-z section, the common case for a 2D vertical-plane run. With a
		// non-singleton y axis the mid-plane is used.
		j := f.Ny / 2
		if f.Ny == 1 {
			j = 0
		}
		g := make(Grid2D, f.Nz)
		for k := 0; k < f.Nz; k++ {
			row := make([]float64, f.Nx)
			for i := 0; i < f.Nx; i++ {
				row[i] = f.At(i, j, k)
			}
			g[k] = row
		}
		return g

	case f.Nx > 1 && f.Ny > 1:
		// x-y section (surface plane, z collapsed).
		g := make(Grid2D, f.Ny)
		for j := 0; j < f.Ny; j++ {
			row := make([]float64, f.Nx)
			for i := 0; i < f.Nx; i++ {
				row[i] = f.At(i, j, 0)
			}
			g[j] = row
		}
		return g

	case f.Ny > 1 && f.Nz > 1:
		// y-z section (x collapsed).
		g := make(Grid2D, f.Nz)
		for k := 0; k < f.Nz; k++ {
			row := make([]float64, f.Ny)
			for j := 0; j < f.Ny; j++ {
				row[j] = f.At(0, j, k)
			}
			g[k] = row
		}
		return g
	}

	// Two or three collapsing axes: degenerate single-row view along the
	// surviving axis.
	switch {
	case f.Nx > 1:
		row := make([]float64, f.Nx)
		for i := 0; i < f.Nx; i++ {
			row[i] = f.At(i, 0, 0)
		}
		return Grid2D{row}
	case f.Ny > 1:
		row := make([]float64, f.Ny)
		for j := 0; j < f.Ny; j++ {
			row[j] = f.At(0, j, 0)
		}
		return Grid2D{row}
	case f.Nz > 1:
		row := make([]float64, f.Nz)
		for k := 0; k < f.Nz; k++ {
			row[k] = f.At(0, 0, k)
		}
		return Grid2D{row}
	default:
		return Grid2D{{f.At(0, 0, 0)}}
	}
}

// HorizontalMean collapses x and y, giving the mean profile along z.
func (f *Field3) HorizontalMean() []float64 {
	prof := make([]float64, f.Nz)
	n := float64(f.Nx * f.Ny)
	for k := 0; k < f.Nz; k++ {
		sum := 0.0
		for j := 0; j < f.Ny; j++ {
			for i := 0; i < f.Nx; i++ {
				sum += f.At(i, j, k)
			}
		}
		prof[k] = sum / n
	}
	return prof
}
