package metrics

import (
	"math"

	"github.com/mkarlsen/convect/internal/field"
)

// Extrema tracks the largest absolute value a field reaches over the run,
// typically used on the vertical velocity to gauge plume strength.
type Extrema struct {
	fieldName string
	peak      float64
}

func NewExtrema(fieldName string) *Extrema {
	return &Extrema{fieldName: fieldName}
}

func (m *Extrema) Name() string { return "max_abs_" + m.fieldName }

func (m *Extrema) Observe(t float64, fields map[string]*field.Field3) {
	f, ok := fields[m.fieldName]
	if !ok {
		return
	}
	lo, hi := f.MinMax()
	peak := math.Max(math.Abs(lo), math.Abs(hi))
	if peak > m.peak {
		m.peak = peak
	}
}

func (m *Extrema) Value() float64 { return m.peak }
func (m *Extrema) Reset()         { m.peak = 0 }
