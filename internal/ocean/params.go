package ocean

import "fmt"

// Params holds the full configuration handed to an engine: grid resolution
// and extent, physical coefficients, boundary forcing, initial condition
// shape, and run control. All lengths are meters, times seconds,
// temperatures degrees Celsius.
type Params struct {
	// Grid
	Nx, Ny, Nz int
	Lx, Ly, Lz float64

	// Physics
	Kappa       float64 // tracer diffusivity, m^2/s
	Nu          float64 // viscosity, m^2/s
	SurfaceFlux float64 // surface heat flux, W/m^2 (negative cools)

	// Initial condition
	SurfaceTemp float64 // initial surface temperature
	TempGrad    float64 // initial dT/dz, K/m (positive: warmer at surface)
	SurfaceSalt float64 // uniform initial salinity, psu
	NoiseAmp    float64 // perturbation amplitude seeded into the IC
	Seed        int64

	// Run control
	Dt             float64 // engine timestep, s
	StopTime       float64 // simulation stop time, s
	OutputInterval float64 // snapshot spacing, s
}

// DefaultParams mirrors the reference two-dimensional convection setup:
// a 256x1x32 vertical plane, 2 km wide and 1 km deep, cooled from above.
func DefaultParams() Params {
	return Params{
		Nx: 256, Ny: 1, Nz: 32,
		Lx: 2000, Ly: 1, Lz: 1000,
		Kappa:          1e-4,
		Nu:             1e-4,
		SurfaceFlux:    -200,
		SurfaceTemp:    20.0,
		TempGrad:       0.0005,
		SurfaceSalt:    35.0,
		NoiseAmp:       0.002,
		Seed:           42,
		Dt:             10,
		StopTime:       8 * 3600,
		OutputInterval: 300,
	}
}

// Validate fails fast on configuration outside the valid domain.
func (p Params) Validate() error {
	if p.Nx < 1 || p.Ny < 1 || p.Nz < 1 {
		return fmt.Errorf("%w: resolution (%d, %d, %d)", ErrInvalidParams, p.Nx, p.Ny, p.Nz)
	}
	if p.Lx <= 0 || p.Ly <= 0 || p.Lz <= 0 {
		return fmt.Errorf("%w: domain extent (%g, %g, %g)", ErrInvalidParams, p.Lx, p.Ly, p.Lz)
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt %g", ErrInvalidParams, p.Dt)
	}
	if p.StopTime <= 0 {
		return fmt.Errorf("%w: stop time %g", ErrInvalidParams, p.StopTime)
	}
	if p.OutputInterval <= 0 || p.OutputInterval > p.StopTime {
		return fmt.Errorf("%w: output interval %g for stop time %g",
			ErrInvalidParams, p.OutputInterval, p.StopTime)
	}
	if p.Kappa < 0 || p.Nu < 0 {
		return fmt.Errorf("%w: diffusivities (kappa %g, nu %g)", ErrInvalidParams, p.Kappa, p.Nu)
	}
	return nil
}
