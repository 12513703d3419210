// Package store persists simulation runs as one directory per run:
// metadata.json describing the run, plus one CSV per recorded field series
// holding the sample time and the flattened snapshot values per row.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mkarlsen/convect/internal/field"
	"github.com/mkarlsen/convect/internal/ocean"
	"github.com/mkarlsen/convect/internal/series"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored run.
type RunMetadata struct {
	ID          string             `json:"id"`
	Engine      string             `json:"engine"`
	Timestamp   time.Time          `json:"timestamp"`
	Params      ocean.Params       `json:"params"`
	Nx          int                `json:"nx"`
	Ny          int                `json:"ny"`
	Nz          int                `json:"nz"`
	Velocity    []string           `json:"velocity_fields"`
	Tracers     []string           `json:"tracer_fields"`
	Diagnostics map[string]float64 `json:"diagnostics"`
}

// Fields returns all recorded field names, velocity group first.
func (m *RunMetadata) Fields() []string {
	return append(append([]string{}, m.Velocity...), m.Tracers...)
}

// Save writes a completed run and returns its id (engine name plus unix
// timestamp, matching the run directory name).
func (s *Store) Save(engine string, p ocean.Params, result *ocean.RunResult) (string, error) {
	runID := fmt.Sprintf("%s_%d", engine, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Engine:      engine,
		Timestamp:   time.Now(),
		Params:      p,
		Nx:          p.Nx,
		Ny:          p.Ny,
		Nz:          p.Nz,
		Velocity:    result.Velocity,
		Tracers:     result.Tracers,
		Diagnostics: result.Diagnostics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	for name, ser := range result.Series {
		if err := s.writeSeries(runDir, name, ser); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func (s *Store) writeSeries(runDir, name string, ser *series.Series) error {
	f, err := os.Create(filepath.Join(runDir, name+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	n := ser.Snapshot(0).Len()
	header := make([]string, 0, n+1)
	header = append(header, "time")
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < ser.Len(); i++ {
		row := make([]string, 0, n+1)
		row = append(row, strconv.FormatFloat(ser.Time(i), 'g', -1, 64))
		for _, v := range ser.Snapshot(i).Values() {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for every stored run. A missing base directory is an
// empty store, not an error.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

// Load reads the metadata of a stored run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads one recorded field series back as an immutable Series.
func (s *Store) LoadSeries(runID, fieldName string) (*series.Series, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, fieldName+".csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: no snapshots for field %q in run %s",
			series.ErrInvalidInput, fieldName, runID)
	}

	want := meta.Nx * meta.Ny * meta.Nz
	times := make([]float64, 0, len(records)-1)
	snapshots := make([]*field.Field3, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != want+1 {
			return nil, fmt.Errorf("%w: row has %d values, grid (%d, %d, %d) needs %d",
				field.ErrInvalidGrid, len(record)-1, meta.Nx, meta.Ny, meta.Nz, want)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing time %q: %w", record[0], err)
		}
		values := make([]float64, want)
		for i, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing value %q: %w", cell, err)
			}
			values[i] = v
		}
		snap, err := field.FromValues(meta.Nx, meta.Ny, meta.Nz, values)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
		snapshots = append(snapshots, snap)
	}

	return series.New(fieldName, times, snapshots)
}
