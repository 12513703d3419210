package config

// Presets are named run configurations. Values not set here inherit from
// DefaultConfig when applied.
var Presets = map[string]*Config{
	"reference": func() *Config {
		return DefaultConfig()
	}(),
	"strong-cooling": func() *Config {
		c := DefaultConfig()
		c.SurfaceFlux = -800
		c.StopTime = 4 * 3600
		c.Render.FMin = 19.2
		return c
	}(),
	"shallow": func() *Config {
		c := DefaultConfig()
		c.Grid.Nz = 16
		c.Grid.Lz = 250
		c.TempGrad = 0.002
		c.StopTime = 2 * 3600
		return c
	}(),
	"quiet": func() *Config {
		c := DefaultConfig()
		c.SurfaceFlux = -50
		c.NoiseAmp = 0.0005
		c.Render.FMin = 19.9
		return c
	}(),
}

// GetPreset returns the named preset, nil if unknown.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns all preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
