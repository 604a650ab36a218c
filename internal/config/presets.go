package config

import "sort"

// Presets cover common single-particle tracking scenarios. Mass only
// matters in underdamped mode; the protein and bead values are typical
// for their size class.
var Presets = map[string]*Config{
	"protein": {
		Mode: "overdamped", Dt: 0.01, Duration: 10.0, Seed: DefaultSeed,
		Particle: ParticleConfig{Mass: 1e-20, Radius: 1e-7},
	},
	"bead": {
		Mode: "overdamped", Dt: 0.001, Duration: 30.0, Seed: DefaultSeed,
		Particle: ParticleConfig{Mass: 5e-16, Radius: 5e-7},
	},
	"virus": {
		Mode: "overdamped", Dt: 0.005, Duration: 20.0, Seed: DefaultSeed,
		Particle: ParticleConfig{Mass: 1e-18, Radius: 5e-8},
	},
	"ballistic": {
		Mode: "underdamped", Dt: 1e-3, Duration: 10.0, Seed: DefaultSeed,
		Particle: ParticleConfig{Mass: 1.9e-10, Radius: 1e-7},
		Fit:      FitConfig{WindowMin: 2e-3, WindowMax: 2.5e-2},
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Mode = p.Mode
	cfg.Dt = p.Dt
	cfg.Duration = p.Duration
	cfg.Seed = p.Seed
	cfg.Particle = p.Particle
	cfg.Fit = p.Fit
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
