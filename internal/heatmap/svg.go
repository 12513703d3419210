package heatmap

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/mkarlsen/convect/internal/field"
)

// FrameSVG renders a grid as an SVG rectangle lattice with the same color
// mapping and clamping as Render. Useful for vector output of a single frame.
func FrameSVG(grid field.Grid2D, opts Options, scale float64) (string, error) {
	if opts.Min >= opts.Max {
		return "", fmt.Errorf("%w: [%g, %g]", ErrBadRange, opts.Min, opts.Max)
	}
	rows, cols := grid.Rows(), grid.Cols()
	if rows == 0 || cols == 0 {
		return "", ErrEmptyGrid
	}
	if scale <= 0 {
		scale = 4
	}

	pal := Palette()
	span := opts.Max - opts.Min
	width := float64(cols) * scale
	height := float64(rows) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, width, height, width, height))

	for r := 0; r < rows; r++ {
		y := float64(rows-1-r) * scale
		for c := 0; c < cols; c++ {
			v := grid[r][c]
			if v < opts.Min {
				v = opts.Min
			}
			if v > opts.Max {
				v = opts.Max
			}
			idx := uint8((v - opts.Min) / span * 255)
			rgba := pal[idx].(color.RGBA)
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#%02x%02x%02x"/>
`, float64(c)*scale, y, scale, scale, rgba.R, rgba.G, rgba.B))
		}
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}
