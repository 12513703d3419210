package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkarlsen/convect/internal/ocean"
	"github.com/mkarlsen/convect/internal/series"
)

func runAndSave(t *testing.T, st *Store) (string, ocean.Params) {
	t.Helper()

	p := ocean.DefaultParams()
	p.Nx, p.Ny, p.Nz = 8, 1, 4
	p.StopTime = 300
	p.OutputInterval = 100

	drv := ocean.NewDriver(ocean.NewPlumeEngine(), p)
	result, err := drv.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	runID, err := st.Save("plume", p, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	return runID, p
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, p := runAndSave(t, st)
	if !strings.HasPrefix(runID, "plume_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Engine != "plume" {
		t.Errorf("expected engine plume, got %q", meta.Engine)
	}
	if meta.Nx != p.Nx || meta.Ny != p.Ny || meta.Nz != p.Nz {
		t.Errorf("extent mismatch: (%d, %d, %d)", meta.Nx, meta.Ny, meta.Nz)
	}
	if len(meta.Velocity) == 0 || len(meta.Tracers) == 0 {
		t.Error("both field groups should be recorded")
	}
}

func TestStoreLoadSeriesRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	runID, p := runAndSave(t, st)

	ser, err := st.LoadSeries(runID, "T")
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if ser.Len() != 4 {
		t.Errorf("expected 4 snapshots, got %d", ser.Len())
	}
	if ser.Time(0) != 0 || ser.Last() != 300 {
		t.Errorf("unexpected time range: %v", ser.Times())
	}
	snap := ser.Snapshot(0)
	if snap.Nx != p.Nx || snap.Nz != p.Nz {
		t.Errorf("snapshot extents (%d, %d, %d)", snap.Nx, snap.Ny, snap.Nz)
	}

	// temperatures should come back in a physical range, not mangled
	lo, hi := snap.MinMax()
	if lo < 0 || hi > 40 {
		t.Errorf("implausible temperature range [%g, %g]", lo, hi)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	runAndSave(t, st)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	runID, _ := runAndSave(t, st)

	runDir := filepath.Join(dir, runID)
	for _, name := range []string{"metadata.json", "T.csv", "S.csv", "u.csv", "w.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	runID, _ := runAndSave(t, st)

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	ser, err := st.LoadSeries(runID, "T")
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	var sb strings.Builder
	if err := ExportJSON(&sb, meta, map[string]*series.Series{"T": ser}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := sb.String()
	for _, want := range []string{`"meta"`, `"times"`, `"mean"`, runID} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %s", want)
		}
	}
}
