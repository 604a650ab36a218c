package physics

import (
	"errors"
	"fmt"
	"math"
)

// Boltzmann is the Boltzmann constant in J/K.
const Boltzmann = 1.380649e-23

// Defaults for a protein-scale particle in water at room temperature.
const (
	RoomTemperature = 298.15 // K
	WaterViscosity  = 1e-3   // Pa·s
)

// ErrInvalidParameter indicates a non-positive physical parameter.
var ErrInvalidParameter = errors.New("physics: invalid parameter")

// Particle is a spherical particle described by mass and radius.
type Particle struct {
	Mass   float64 // kg
	Radius float64 // m
}

// Fluid describes the surrounding medium.
type Fluid struct {
	Temperature float64 // K
	Viscosity   float64 // Pa·s
}

// Water returns the default fluid: water at room temperature.
func Water() Fluid {
	return Fluid{Temperature: RoomTemperature, Viscosity: WaterViscosity}
}

// Coefficients holds the derived transport coefficients.
type Coefficients struct {
	Gamma float64 // drag coefficient, kg/s
	D     float64 // diffusion coefficient, m²/s
}

// Validate checks the particle parameters.
func (p Particle) Validate() error {
	if p.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidParameter, p.Mass)
	}
	if p.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidParameter, p.Radius)
	}
	return nil
}

// Validate checks the fluid parameters.
func (f Fluid) Validate() error {
	if f.Temperature <= 0 {
		return fmt.Errorf("%w: temperature must be positive, got %g", ErrInvalidParameter, f.Temperature)
	}
	if f.Viscosity <= 0 {
		return fmt.Errorf("%w: viscosity must be positive, got %g", ErrInvalidParameter, f.Viscosity)
	}
	return nil
}

// Derive computes the drag and diffusion coefficients for a particle
// in a fluid. It is deterministic and has no side effects.
func Derive(p Particle, f Fluid) (Coefficients, error) {
	if err := p.Validate(); err != nil {
		return Coefficients{}, err
	}
	if err := f.Validate(); err != nil {
		return Coefficients{}, err
	}

	gamma := 6 * math.Pi * f.Viscosity * p.Radius
	return Coefficients{
		Gamma: gamma,
		D:     Boltzmann * f.Temperature / gamma,
	}, nil
}

// RelaxationTime returns the momentum relaxation time m/gamma. Explicit
// Euler integration of the underdamped dynamics is only stable for
// timesteps well below this value.
func RelaxationTime(p Particle, c Coefficients) float64 {
	return p.Mass / c.Gamma
}
