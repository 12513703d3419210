// Package metrics computes per-run diagnostics over recorded snapshots.
package metrics

import (
	"math"

	"github.com/mkarlsen/convect/internal/field"
)

// MixedLayerDepth tracks the depth of the convective mixed layer in the
// final observed snapshot: the shallowest depth at which the horizontal-mean
// tracer departs from its surface value by more than the threshold.
type MixedLayerDepth struct {
	fieldName string
	threshold float64
	domainLz  float64
	depth     float64
}

func NewMixedLayerDepth(fieldName string, threshold, domainLz float64) *MixedLayerDepth {
	return &MixedLayerDepth{fieldName: fieldName, threshold: threshold, domainLz: domainLz}
}

func (m *MixedLayerDepth) Name() string { return "mixed_layer_depth" }

func (m *MixedLayerDepth) Observe(t float64, fields map[string]*field.Field3) {
	f, ok := fields[m.fieldName]
	if !ok {
		return
	}
	prof := f.HorizontalMean()
	nz := len(prof)
	if nz == 0 {
		return
	}
	surface := prof[nz-1] // z index runs bottom-up
	dz := m.domainLz / float64(nz)
	m.depth = m.domainLz
	for k := nz - 1; k >= 0; k-- {
		if math.Abs(prof[k]-surface) > m.threshold {
			m.depth = (float64(nz-1-k) + 0.5) * dz
			return
		}
	}
}

func (m *MixedLayerDepth) Value() float64 { return m.depth }
func (m *MixedLayerDepth) Reset()         { m.depth = 0 }
