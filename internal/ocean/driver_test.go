package ocean

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mkarlsen/convect/internal/field"
)

func testParams() Params {
	p := DefaultParams()
	p.Nx, p.Ny, p.Nz = 16, 1, 8
	p.StopTime = 600
	p.OutputInterval = 100
	p.Dt = 10
	return p
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero nx", func(p *Params) { p.Nx = 0 }},
		{"negative lz", func(p *Params) { p.Lz = -1 }},
		{"zero dt", func(p *Params) { p.Dt = 0 }},
		{"zero stop", func(p *Params) { p.StopTime = 0 }},
		{"zero interval", func(p *Params) { p.OutputInterval = 0 }},
		{"interval past stop", func(p *Params) { p.OutputInterval = p.StopTime * 2 }},
		{"negative kappa", func(p *Params) { p.Kappa = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}

	if err := testParams().Validate(); err != nil {
		t.Errorf("default-derived params should validate: %v", err)
	}
}

func TestPlumeEngineLifecycle(t *testing.T) {
	eng := NewPlumeEngine()

	if _, err := eng.Field("T"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized before Init, got %v", err)
	}

	if err := eng.Init(testParams()); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if eng.Time() != 0 {
		t.Errorf("fresh engine should start at t=0, got %g", eng.Time())
	}

	if err := eng.Advance(context.Background(), 300); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if eng.Time() != 300 {
		t.Errorf("expected t=300, got %g", eng.Time())
	}

	if err := eng.Advance(context.Background(), 100); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected error stepping backwards, got %v", err)
	}
}

func TestPlumeEngineUnknownField(t *testing.T) {
	eng := NewPlumeEngine()
	if err := eng.Init(testParams()); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := eng.Field("vorticity"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestPlumeEngineStratification(t *testing.T) {
	p := testParams()
	eng := NewPlumeEngine()
	if err := eng.Init(p); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	f, err := eng.Field("T")
	if err != nil {
		t.Fatalf("field failed: %v", err)
	}
	// At t=0 the mixed layer is thin: deep water must be colder than the
	// surface by roughly the imposed gradient.
	deep := f.At(0, 0, 0)
	surf := f.At(0, 0, p.Nz-1)
	if deep >= surf {
		t.Errorf("deep water (%g) should be colder than surface (%g)", deep, surf)
	}
	want := p.TempGrad * p.Lz * (1 - 1.0/float64(p.Nz))
	if diff := surf - deep; math.Abs(diff-want) > want/2 {
		t.Errorf("stratification %g far from expected %g", diff, want)
	}
}

func TestPlumeEngineDeterministic(t *testing.T) {
	p := testParams()
	run := func() []float64 {
		eng := NewPlumeEngine()
		if err := eng.Init(p); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		if err := eng.Advance(context.Background(), 300); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
		f, err := eng.Field("w")
		if err != nil {
			t.Fatalf("field failed: %v", err)
		}
		return f.Values()
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different fields at %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestDriverRun(t *testing.T) {
	p := testParams()
	drv := NewDriver(NewPlumeEngine(), p)

	result, err := drv.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// t = 0, 100, ..., 600
	if len(result.Times) != 7 {
		t.Fatalf("expected 7 snapshots, got %d", len(result.Times))
	}
	if result.Times[0] != 0 || result.Times[6] != 600 {
		t.Errorf("unexpected time range: %v", result.Times)
	}

	for _, group := range [][]string{result.Velocity, result.Tracers} {
		for _, name := range group {
			ser, ok := result.Series[name]
			if !ok {
				t.Fatalf("missing series %q", name)
			}
			if ser.Len() != 7 {
				t.Errorf("series %q has %d snapshots, want 7", name, ser.Len())
			}
			snap := ser.Snapshot(0)
			if snap.Nx != p.Nx || snap.Ny != p.Ny || snap.Nz != p.Nz {
				t.Errorf("series %q extents (%d, %d, %d) differ from params",
					name, snap.Nx, snap.Ny, snap.Nz)
			}
		}
	}
}

func TestDriverInvalidParams(t *testing.T) {
	p := testParams()
	p.StopTime = -1
	drv := NewDriver(NewPlumeEngine(), p)
	if _, err := drv.Run(context.Background()); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestDriverCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	drv := NewDriver(NewPlumeEngine(), testParams())
	if _, err := drv.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type countingMetric struct {
	n int
}

func (m *countingMetric) Name() string                                      { return "snapshots_seen" }
func (m *countingMetric) Observe(t float64, fields map[string]*field.Field3) { m.n++ }
func (m *countingMetric) Value() float64                                    { return float64(m.n) }
func (m *countingMetric) Reset()                                            { m.n = 0 }

func TestDriverMetrics(t *testing.T) {
	drv := NewDriver(NewPlumeEngine(), testParams())
	drv.AddMetric(&countingMetric{})

	result, err := drv.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := result.Diagnostics["snapshots_seen"]; got != 7 {
		t.Errorf("expected metric observed 7 times, got %g", got)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Engine("plume"); err != nil {
		t.Errorf("plume engine should exist: %v", err)
	}
	if _, err := r.Engine("spectral"); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("expected ErrUnknownEngine, got %v", err)
	}
	names := r.List()
	if len(names) != 1 || names[0] != "plume" {
		t.Errorf("unexpected engine list: %v", names)
	}
}
