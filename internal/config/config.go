package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkarlsen/convect/internal/ocean"
)

// Defaults for the reference convection run and its rendering.
const (
	DefaultEngine   = "plume"
	DefaultFMin     = 19.6
	DefaultFMax     = 20.0
	DefaultDuration = 10.0
	DefaultFPS      = 15
	DefaultCellSize = 4
)

// Config is the yaml-facing run configuration. Render settings travel with
// the run config so the color range and animation length are explicit
// values, never process-wide globals.
type Config struct {
	Engine string     `yaml:"engine"`
	Grid   GridConfig `yaml:"grid"`

	Kappa       float64 `yaml:"kappa"`
	Nu          float64 `yaml:"nu"`
	SurfaceFlux float64 `yaml:"surface_flux"`
	SurfaceTemp float64 `yaml:"surface_temp"`
	TempGrad    float64 `yaml:"temp_grad"`
	SurfaceSalt float64 `yaml:"surface_salt"`
	NoiseAmp    float64 `yaml:"noise_amp"`
	Seed        int64   `yaml:"seed"`

	Dt             float64 `yaml:"dt"`
	StopTime       float64 `yaml:"stop_time"`
	OutputInterval float64 `yaml:"output_interval"`

	Render RenderConfig `yaml:"render"`
}

type GridConfig struct {
	Nx int     `yaml:"nx"`
	Ny int     `yaml:"ny"`
	Nz int     `yaml:"nz"`
	Lx float64 `yaml:"lx"`
	Ly float64 `yaml:"ly"`
	Lz float64 `yaml:"lz"`
}

// RenderConfig fixes the animation parameters: which field to draw, the
// clamped color range, playback length and frame rate.
type RenderConfig struct {
	Field    string  `yaml:"field"`
	FMin     float64 `yaml:"fmin"`
	FMax     float64 `yaml:"fmax"`
	Duration float64 `yaml:"duration"`
	FPS      int     `yaml:"fps"`
	CellSize int     `yaml:"cell_size"`
	Out      string  `yaml:"out"`
}

// DefaultConfig mirrors the reference run constants.
func DefaultConfig() *Config {
	p := ocean.DefaultParams()
	return &Config{
		Engine: DefaultEngine,
		Grid: GridConfig{
			Nx: p.Nx, Ny: p.Ny, Nz: p.Nz,
			Lx: p.Lx, Ly: p.Ly, Lz: p.Lz,
		},
		Kappa:          p.Kappa,
		Nu:             p.Nu,
		SurfaceFlux:    p.SurfaceFlux,
		SurfaceTemp:    p.SurfaceTemp,
		TempGrad:       p.TempGrad,
		SurfaceSalt:    p.SurfaceSalt,
		NoiseAmp:       p.NoiseAmp,
		Seed:           p.Seed,
		Dt:             p.Dt,
		StopTime:       p.StopTime,
		OutputInterval: p.OutputInterval,
		Render: RenderConfig{
			Field:    "T",
			FMin:     DefaultFMin,
			FMax:     DefaultFMax,
			Duration: DefaultDuration,
			FPS:      DefaultFPS,
			CellSize: DefaultCellSize,
			Out:      "convection.gif",
		},
	}
}

// Load reads a yaml config, filling unset values from DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the config into engine parameters.
func (c *Config) Params() ocean.Params {
	return ocean.Params{
		Nx: c.Grid.Nx, Ny: c.Grid.Ny, Nz: c.Grid.Nz,
		Lx: c.Grid.Lx, Ly: c.Grid.Ly, Lz: c.Grid.Lz,
		Kappa:          c.Kappa,
		Nu:             c.Nu,
		SurfaceFlux:    c.SurfaceFlux,
		SurfaceTemp:    c.SurfaceTemp,
		TempGrad:       c.TempGrad,
		SurfaceSalt:    c.SurfaceSalt,
		NoiseAmp:       c.NoiseAmp,
		Seed:           c.Seed,
		Dt:             c.Dt,
		StopTime:       c.StopTime,
		OutputInterval: c.OutputInterval,
	}
}
