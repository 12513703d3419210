// Package heatmap renders 2D field sections as color-mapped raster images
// and assembles sampled frames into an animation.
package heatmap

import (
	"errors"
	"fmt"
	"image"

	"github.com/mkarlsen/convect/internal/field"
)

var (
	// ErrBadRange indicates a color range where min is not below max.
	ErrBadRange = errors.New("heatmap: invalid color range")

	// ErrEmptyGrid indicates a grid with no cells.
	ErrEmptyGrid = errors.New("heatmap: empty grid")
)

// Options controls rasterization. CellSize is the square pixel size of one
// grid cell; Min and Max fix the color range, with values outside clamped.
type Options struct {
	Min, Max float64
	CellSize int
}

// Render rasterizes a grid into a paletted image. Row 0 of the grid maps to
// the bottom of the image, so a depth-ordered section (deepest row first)
// displays with the surface on top. Values are clamped into [Min, Max];
// out-of-range data never errors.
func Render(grid field.Grid2D, opts Options) (*image.Paletted, error) {
	if opts.Min >= opts.Max {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrBadRange, opts.Min, opts.Max)
	}
	rows, cols := grid.Rows(), grid.Cols()
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyGrid
	}
	cell := opts.CellSize
	if cell < 1 {
		cell = 1
	}

	img := image.NewPaletted(image.Rect(0, 0, cols*cell, rows*cell), Palette())
	span := opts.Max - opts.Min

	for r := 0; r < rows; r++ {
		// flip so row 0 lands at the image bottom
		y0 := (rows - 1 - r) * cell
		for c := 0; c < cols; c++ {
			v := grid[r][c]
			if v < opts.Min {
				v = opts.Min
			}
			if v > opts.Max {
				v = opts.Max
			}
			idx := uint8((v - opts.Min) / span * 255)
			x0 := c * cell
			for dy := 0; dy < cell; dy++ {
				for dx := 0; dx < cell; dx++ {
					img.SetColorIndex(x0+dx, y0+dy, idx)
				}
			}
		}
	}
	return img, nil
}
