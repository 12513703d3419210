package heatmap

import (
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// Animator accumulates rendered frames and encodes them as an animated GIF.
type Animator struct {
	frames []*image.Paletted
	delays []int
	delay  int // hundredths of a second per frame
}

// NewAnimator creates an animator running at the given frame rate.
func NewAnimator(fps int) *Animator {
	if fps < 1 {
		fps = 1
	}
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}
	return &Animator{delay: delay}
}

// Append adds one frame.
func (a *Animator) Append(frame *image.Paletted) {
	a.frames = append(a.frames, frame)
	a.delays = append(a.delays, a.delay)
}

// FrameCount returns the number of collected frames.
func (a *Animator) FrameCount() int { return len(a.frames) }

// Encode writes the animation as a GIF.
func (a *Animator) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrEmptyGrid)
	}
	return gif.EncodeAll(w, &gif.GIF{
		Image: a.frames,
		Delay: a.delays,
	})
}

// WriteFile encodes the animation to a file, creating parent directories.
func (a *Animator) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return a.Encode(f)
}

// WritePNG writes a single frame as a PNG file.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
