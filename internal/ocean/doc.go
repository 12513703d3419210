// Package ocean configures and drives a single ocean-convection simulation.
//
// The numerical core is deliberately external: an [Engine] supplies grid
// construction, boundary conditions and time stepping behind a small
// contract, and the [Driver] only wires parameters in, requests execution,
// and records named field snapshots at a fixed simulation-time interval:
//
//	eng, _ := ocean.NewRegistry().Engine("plume")
//	drv := ocean.NewDriver(eng, params)
//	run, _ := drv.Run(ctx)
//
// The recorded output is two snapshot series groups, one for velocity
// components and one for tracer fields, each sampled every OutputInterval
// seconds of simulation time.
package ocean
