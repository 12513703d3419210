package heatmap

import "image/color"

// Palette returns a 256-entry thermal colormap running dark blue through
// red to yellow-white. Index 0 is the coldest color, 255 the hottest.
func Palette() color.Palette {
	p := make(color.Palette, 256)

	for i := 0; i < 256; i++ {
		t := float64(i) / 255.0
		var r, g, b float64
		switch {
		case t < 0.25:
			// deep blue -> blue
			s := t / 0.25
			r, g, b = 0, 0.1*s, 0.4+0.6*s
		case t < 0.5:
			// blue -> cyan-teal
			s := (t - 0.25) / 0.25
			r, g, b = 0, 0.1+0.6*s, 1.0-0.3*s
		case t < 0.75:
			// teal -> red
			s := (t - 0.5) / 0.25
			r, g, b = s, 0.7-0.5*s, 0.7-0.7*s
		default:
			// red -> yellow
			s := (t - 0.75) / 0.25
			r, g, b = 1, 0.2+0.8*s, 0.15*s
		}
		p[i] = color.RGBA{
			R: uint8(r*255 + 0.5),
			G: uint8(g*255 + 0.5),
			B: uint8(b*255 + 0.5),
			A: 255,
		}
	}
	return p
}
