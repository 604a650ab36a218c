// Package config collects and validates run parameters.
//
// Parameters come from a YAML file, a named preset, or CLI flags;
// validation happens once at construction, independent of how the
// values were gathered.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/brownlab/internal/langevin"
	"github.com/san-kum/brownlab/internal/physics"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultMass     = 1e-20 // kg
	DefaultRadius   = 1e-7  // m
	DefaultSeed     = 42
)

type Config struct {
	Mode     string         `yaml:"mode"`
	Dt       float64        `yaml:"dt"`
	Duration float64        `yaml:"duration"`
	Seed     int64          `yaml:"seed"`
	Particle ParticleConfig `yaml:"particle"`
	Fluid    FluidConfig    `yaml:"fluid"`
	Origin   OriginConfig   `yaml:"origin"`
	Fit      FitConfig      `yaml:"fit"`
}

type ParticleConfig struct {
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

type FluidConfig struct {
	Temperature float64 `yaml:"temperature"`
	Viscosity   float64 `yaml:"viscosity"`
}

type OriginConfig struct {
	X0 float64 `yaml:"x0"`
	Y0 float64 `yaml:"y0"`
}

// FitConfig bounds the regression window in seconds. Zero values mean
// "derive from the time axis" (first sample time to a tenth of the
// total duration).
type FitConfig struct {
	WindowMin float64 `yaml:"window_min"`
	WindowMax float64 `yaml:"window_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:     string(langevin.Overdamped),
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Seed:     DefaultSeed,
		Particle: ParticleConfig{Mass: DefaultMass, Radius: DefaultRadius},
		Fluid: FluidConfig{
			Temperature: physics.RoomTemperature,
			Viscosity:   physics.WaterViscosity,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every parameter the pipeline depends on.
func (c *Config) Validate() error {
	if _, err := langevin.ParseMode(c.Mode); err != nil {
		return err
	}
	if err := c.GetParticle().Validate(); err != nil {
		return err
	}
	if err := c.GetFluid().Validate(); err != nil {
		return err
	}
	return c.GetSimConfig().Validate()
}

func (c *Config) GetParticle() physics.Particle {
	return physics.Particle{Mass: c.Particle.Mass, Radius: c.Particle.Radius}
}

func (c *Config) GetFluid() physics.Fluid {
	return physics.Fluid{Temperature: c.Fluid.Temperature, Viscosity: c.Fluid.Viscosity}
}

func (c *Config) GetSimConfig() langevin.Config {
	return langevin.Config{
		Dt:       c.Dt,
		Duration: c.Duration,
		X0:       c.Origin.X0,
		Y0:       c.Origin.Y0,
	}
}

// FitWindow resolves the regression window against a time axis.
// Unset bounds default to the first nonzero sample time and a tenth of
// the final time, the usual intermediate window for slope estimation.
func (c *Config) FitWindow(times []float64) (min, max float64) {
	min, max = c.Fit.WindowMin, c.Fit.WindowMax
	if len(times) < 2 {
		return min, max
	}
	if min == 0 {
		min = times[1]
	}
	if max == 0 {
		max = times[len(times)-1] / 10
	}
	return min, max
}
