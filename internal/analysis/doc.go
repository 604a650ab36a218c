// Package analysis extracts diffusion statistics from trajectories.
//
// The package provides:
//
//   - [FromPositions]: time-lag mean squared displacement (MSD)
//   - [FromVACF]: MSD by double integration of the velocity
//     autocorrelation function, for externally measured data
//   - [FitLogLogSlope]: scaling exponent via least-squares on
//     log10(time) vs log10(MSD)
//   - [VelocityPowerSpectrum]: FFT of the finite-difference velocity
//
// # Regime Classification
//
// The fitted slope classifies the diffusion regime:
//
//	fit, _ := analysis.FitLogLogSlope(times, msd, 0.1, 1.0)
//	// slope ≈ 2 ballistic, ≈ 1 diffusive, < 1 subdiffusive
package analysis
