// Package series holds time-indexed snapshot collections recorded from a
// simulation run and maps playback positions onto recorded frames.
package series

import (
	"errors"
	"fmt"
	"math"

	"github.com/mkarlsen/convect/internal/field"
)

var (
	// ErrInvalidInput indicates playback parameters or series data outside
	// the valid domain.
	ErrInvalidInput = errors.New("series: invalid input")
)

// Series is an ordered collection of field snapshots with their recorded
// simulation times. It is immutable after construction: times are strictly
// increasing, one snapshot per time, all snapshots on the same grid.
type Series struct {
	FieldName string
	times     []float64
	snapshots []*field.Field3
}

// New validates and wraps recorded times and snapshots. The slices are used
// directly and must not be mutated afterwards.
func New(fieldName string, times []float64, snapshots []*field.Field3) (*Series, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: empty time series", ErrInvalidInput)
	}
	if len(times) != len(snapshots) {
		return nil, fmt.Errorf("%w: %d times for %d snapshots", ErrInvalidInput, len(times), len(snapshots))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("%w: times not strictly increasing at index %d (%g after %g)",
				ErrInvalidInput, i, times[i], times[i-1])
		}
	}
	for i, s := range snapshots {
		if s == nil {
			return nil, fmt.Errorf("%w: nil snapshot at index %d", ErrInvalidInput, i)
		}
		if !s.SameExtents(snapshots[0]) {
			return nil, fmt.Errorf("%w: snapshot %d extents (%d, %d, %d) differ from (%d, %d, %d)",
				ErrInvalidInput, i, s.Nx, s.Ny, s.Nz,
				snapshots[0].Nx, snapshots[0].Ny, snapshots[0].Nz)
		}
	}
	return &Series{FieldName: fieldName, times: times, snapshots: snapshots}, nil
}

// Len returns the number of recorded snapshots.
func (s *Series) Len() int { return len(s.times) }

// Times returns the recorded sample times. Callers must not mutate the
// returned slice.
func (s *Series) Times() []float64 { return s.times }

// Time returns the recorded time of snapshot i.
func (s *Series) Time(i int) float64 { return s.times[i] }

// Snapshot returns the field recorded at index i.
func (s *Series) Snapshot(i int) *field.Field3 { return s.snapshots[i] }

// Last returns the final recorded time.
func (s *Series) Last() float64 { return s.times[len(s.times)-1] }

// Nearest returns the index of the recorded time closest to target. Ties
// between equidistant neighbors resolve to the lower index.
func (s *Series) Nearest(target float64) int {
	best := 0
	bestDist := math.Abs(s.times[0] - target)
	for i := 1; i < len(s.times); i++ {
		d := math.Abs(s.times[i] - target)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// FrameAt maps a playback position onto a recorded snapshot index. The
// target simulation time is fraction * Last() / totalDuration, so playback
// over [0, totalDuration] sweeps the whole recorded run; the returned index
// is the one whose recorded time is nearest that target.
func (s *Series) FrameAt(fraction, totalDuration float64) (int, error) {
	if totalDuration <= 0 {
		return 0, fmt.Errorf("%w: total duration %g must be positive", ErrInvalidInput, totalDuration)
	}
	target := fraction * s.Last() / totalDuration
	return s.Nearest(target), nil
}
