package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mkarlsen/convect/internal/field"
)

// TracerVariance reports the spatial variance of a tracer in the final
// observed snapshot, a proxy for how much plume structure the run developed.
type TracerVariance struct {
	fieldName string
	variance  float64
}

func NewTracerVariance(fieldName string) *TracerVariance {
	return &TracerVariance{fieldName: fieldName}
}

func (m *TracerVariance) Name() string { return "variance_" + m.fieldName }

func (m *TracerVariance) Observe(t float64, fields map[string]*field.Field3) {
	f, ok := fields[m.fieldName]
	if !ok {
		return
	}
	m.variance = stat.Variance(f.Values(), nil)
}

func (m *TracerVariance) Value() float64 { return m.variance }
func (m *TracerVariance) Reset()         { m.variance = 0 }
