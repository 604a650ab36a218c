package langevin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/brownlab/internal/physics"
)

// Domain errors for trajectory generation.
var (
	// ErrInvalidParameter indicates a non-positive simulation parameter.
	ErrInvalidParameter = errors.New("langevin: invalid parameter")

	// ErrUnknownMode indicates an unrecognized dynamics mode.
	ErrUnknownMode = errors.New("langevin: unknown dynamics mode")
)

// Mode selects the stochastic dynamics.
type Mode string

const (
	Overdamped  Mode = "overdamped"
	Underdamped Mode = "underdamped"
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Overdamped, Underdamped:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want overdamped or underdamped)", ErrUnknownMode, s)
	}
}

// Config holds the simulation parameters.
type Config struct {
	Dt       float64 // timestep, s
	Duration float64 // total simulated time, s
	X0       float64 // initial x position, m
	Y0       float64 // initial y position, m
}

// Steps returns the number of samples N = floor(Duration/Dt).
func (c Config) Steps() int {
	return int(c.Duration / c.Dt)
}

// Validate checks the simulation parameters.
func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidParameter, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidParameter, c.Duration)
	}
	if c.Steps() < 2 {
		return fmt.Errorf("%w: duration/dt yields %d samples, need at least 2", ErrInvalidParameter, c.Steps())
	}
	return nil
}

// Simulator generates trajectories for one particle/fluid pairing.
type Simulator struct {
	particle physics.Particle
	fluid    physics.Fluid
	coeff    physics.Coefficients
}

// New derives the transport coefficients and returns a Simulator.
func New(p physics.Particle, f physics.Fluid) (*Simulator, error) {
	c, err := physics.Derive(p, f)
	if err != nil {
		return nil, err
	}
	return &Simulator{particle: p, fluid: f, coeff: c}, nil
}

// Coefficients returns the derived drag and diffusion coefficients.
func (s *Simulator) Coefficients() physics.Coefficients { return s.coeff }

// Run generates a trajectory of N = floor(Duration/Dt) samples on an
// evenly spaced time axis over [0, Duration]. The first sample is the
// origin exactly. The caller owns rng; a fixed seed gives bit-identical
// output across runs.
func (s *Simulator) Run(ctx context.Context, mode Mode, cfg Config, rng *rand.Rand) (*Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}

	n := cfg.Steps()
	traj := &Trajectory{
		Times: make([]float64, n),
		X:     make([]float64, n),
		Y:     make([]float64, n),
	}
	for i := range traj.Times {
		traj.Times[i] = cfg.Duration * float64(i) / float64(n-1)
	}
	traj.X[0] = cfg.X0
	traj.Y[0] = cfg.Y0

	switch mode {
	case Overdamped:
		return traj, s.runOverdamped(ctx, traj, cfg, rng)
	case Underdamped:
		return traj, s.runUnderdamped(ctx, traj, cfg, rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// runOverdamped performs a pure random walk with per-axis step
// variance 2·D·dt (discretized overdamped Langevin equation).
func (s *Simulator) runOverdamped(ctx context.Context, traj *Trajectory, cfg Config, rng *rand.Rand) error {
	step := math.Sqrt(2 * s.coeff.D * cfg.Dt)

	for i := 1; i < traj.Len(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		traj.X[i] = traj.X[i-1] + step*rng.NormFloat64()
		traj.Y[i] = traj.Y[i-1] + step*rng.NormFloat64()
	}
	return nil
}

// runUnderdamped integrates the full inertial Langevin equation by
// explicit Euler. The velocity state stays internal to the loop.
// Stability requires dt well below m/gamma; no guard is applied here.
func (s *Simulator) runUnderdamped(ctx context.Context, traj *Trajectory, cfg Config, rng *rand.Rand) error {
	gamma := s.coeff.Gamma
	mass := s.particle.Mass
	dt := cfg.Dt
	noise := math.Sqrt(2 * gamma * physics.Boltzmann * s.fluid.Temperature / dt)

	var vx, vy float64
	for i := 1; i < traj.Len(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fx := -gamma*vx + noise*rng.NormFloat64()
		fy := -gamma*vy + noise*rng.NormFloat64()
		vx += fx / mass * dt
		vy += fy / mass * dt
		traj.X[i] = traj.X[i-1] + vx*dt
		traj.Y[i] = traj.Y[i-1] + vy*dt
	}
	return nil
}
