package ocean

import (
	"context"
	"fmt"

	"github.com/mkarlsen/convect/internal/field"
	"github.com/mkarlsen/convect/internal/series"
)

// RunResult is the recorded output of one simulation run: every named field
// series plus which names belong to the velocity and tracer groups.
type RunResult struct {
	Times       []float64
	Series      map[string]*series.Series
	Velocity    []string
	Tracers     []string
	Diagnostics map[string]float64
}

// Observer is notified after each recorded snapshot interval.
type Observer interface {
	OnSnapshot(t float64, fields map[string]*field.Field3)
}

// SnapshotMetric accumulates a diagnostic over recorded snapshots.
type SnapshotMetric interface {
	Name() string
	Observe(t float64, fields map[string]*field.Field3)
	Value() float64
	Reset()
}

// Driver wires parameters into an engine, requests execution of its
// time-stepping loop, and records snapshot series at a fixed interval.
type Driver struct {
	engine    Engine
	params    Params
	metrics   []SnapshotMetric
	observers []Observer
}

// NewDriver creates a driver for the given engine and configuration.
func NewDriver(engine Engine, p Params) *Driver {
	return &Driver{engine: engine, params: p}
}

func (d *Driver) AddMetric(m SnapshotMetric) { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer)     { d.observers = append(d.observers, o) }

// Run executes the simulation and collects the recorded series. Snapshots
// are taken at t = 0 and then every OutputInterval until StopTime. Engine
// failures abort the run and surface unmodified.
func (d *Driver) Run(ctx context.Context) (*RunResult, error) {
	if err := d.params.Validate(); err != nil {
		return nil, err
	}
	if err := d.engine.Init(d.params); err != nil {
		return nil, err
	}

	names := append(append([]string{}, d.engine.VelocityFields()...), d.engine.TracerFields()...)
	steps := int(d.params.StopTime/d.params.OutputInterval) + 1

	times := make([]float64, 0, steps)
	snapshots := make(map[string][]*field.Field3, len(names))
	for _, n := range names {
		snapshots[n] = make([]*field.Field3, 0, steps)
	}
	for _, m := range d.metrics {
		m.Reset()
	}

	record := func() error {
		t := d.engine.Time()
		frame := make(map[string]*field.Field3, len(names))
		for _, n := range names {
			f, err := d.engine.Field(n)
			if err != nil {
				return err
			}
			frame[n] = f
			snapshots[n] = append(snapshots[n], f)
		}
		times = append(times, t)
		for _, m := range d.metrics {
			m.Observe(t, frame)
		}
		for _, o := range d.observers {
			o.OnSnapshot(t, frame)
		}
		return nil
	}

	if err := record(); err != nil {
		return nil, err
	}

	for t := d.params.OutputInterval; t <= d.params.StopTime+1e-9; t += d.params.OutputInterval {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := d.engine.Advance(ctx, t); err != nil {
			return nil, err
		}
		if err := record(); err != nil {
			return nil, err
		}
	}

	result := &RunResult{
		Times:       times,
		Series:      make(map[string]*series.Series, len(names)),
		Velocity:    d.engine.VelocityFields(),
		Tracers:     d.engine.TracerFields(),
		Diagnostics: make(map[string]float64, len(d.metrics)),
	}
	for _, n := range names {
		s, err := series.New(n, times, snapshots[n])
		if err != nil {
			return nil, fmt.Errorf("assembling series %q: %w", n, err)
		}
		result.Series[n] = s
	}
	for _, m := range d.metrics {
		result.Diagnostics[m.Name()] = m.Value()
	}
	return result, nil
}
