package store

import (
	"encoding/json"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/mkarlsen/convect/internal/series"
)

// RunExport is the JSON export shape: run metadata plus a per-field summary
// of every recorded snapshot (spatial mean and extrema), compact enough to
// feed external plotting without shipping full 3D fields.
type RunExport struct {
	Meta   RunMetadata             `json:"meta"`
	Times  []float64               `json:"times"`
	Fields map[string]FieldSummary `json:"fields"`
}

type FieldSummary struct {
	Mean []float64 `json:"mean"`
	Min  []float64 `json:"min"`
	Max  []float64 `json:"max"`
}

// ExportJSON writes a run summary for the given field series.
func ExportJSON(w io.Writer, meta *RunMetadata, fields map[string]*series.Series) error {
	out := RunExport{
		Meta:   *meta,
		Fields: make(map[string]FieldSummary, len(fields)),
	}
	for name, ser := range fields {
		if out.Times == nil {
			out.Times = ser.Times()
		}
		summary := FieldSummary{
			Mean: make([]float64, ser.Len()),
			Min:  make([]float64, ser.Len()),
			Max:  make([]float64, ser.Len()),
		}
		for i := 0; i < ser.Len(); i++ {
			snap := ser.Snapshot(i)
			summary.Mean[i] = stat.Mean(snap.Values(), nil)
			summary.Min[i], summary.Max[i] = snap.MinMax()
		}
		out.Fields[name] = summary
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
