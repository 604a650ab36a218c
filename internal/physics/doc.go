// Package physics derives the transport coefficients of a spherical
// particle suspended in a viscous fluid.
//
// From Stokes' law and the Einstein relation:
//
//	gamma = 6·pi·eta·r        (drag coefficient)
//	D     = kB·T / gamma      (diffusion coefficient)
//
// Both are pure functions of the particle geometry and fluid properties;
// the package holds no state.
package physics
