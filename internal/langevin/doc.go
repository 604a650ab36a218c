// Package langevin generates discrete-time 2D Brownian trajectories.
//
// Two dynamics are available:
//
//   - [Overdamped]: inertia neglected, the position performs a pure
//     random walk with step variance 2·D·dt per axis. Valid when the
//     momentum relaxation time m/gamma is much smaller than dt.
//   - [Underdamped]: full inertial dynamics with drag and thermal
//     forcing, integrated by explicit Euler. Only conditionally stable;
//     the caller must choose dt well below m/gamma.
//
// The random source is owned by the caller. Simulating twice with the
// same *rand.Rand seed and parameters produces bit-identical trajectories.
//
// # Example
//
//	sim, _ := langevin.New(p, physics.Water())
//	rng := rand.New(rand.NewSource(42))
//	traj, _ := sim.Run(ctx, langevin.Overdamped, cfg, rng)
package langevin
