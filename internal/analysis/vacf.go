package analysis

import (
	"fmt"

	"github.com/san-kum/brownlab/internal/langevin"
)

// Velocity computes the finite-difference time derivative of a
// position sequence: central differences in the interior, one-sided at
// the boundaries. Output has the same length as the input.
func Velocity(r, times []float64) ([]float64, error) {
	n := len(r)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples to differentiate, got %d", ErrInsufficientData, n)
	}
	if len(times) != n {
		return nil, fmt.Errorf("%w: position and time lengths differ (%d vs %d)", ErrInsufficientData, n, len(times))
	}

	v := make([]float64, n)
	v[0] = (r[1] - r[0]) / (times[1] - times[0])
	for i := 1; i < n-1; i++ {
		v[i] = (r[i+1] - r[i-1]) / (times[i+1] - times[i-1])
	}
	v[n-1] = (r[n-1] - r[n-2]) / (times[n-1] - times[n-2])
	return v, nil
}

// VACF computes the velocity autocorrelation function. vacf[lag] is
// the mean of v[i]·v[i+lag] over valid i; lag 0 is the variance around
// zero.
func VACF(v []float64) []float64 {
	n := len(v)
	vacf := make([]float64, n)
	for lag := 0; lag < n; lag++ {
		var sum float64
		for i := 0; i+lag < n; i++ {
			sum += v[i] * v[i+lag]
		}
		vacf[lag] = sum / float64(n-lag)
	}
	return vacf
}

// IntegrateVACF converts a VACF into an MSD by double cumulative
// summation scaled by 2·dt². msd[0] is 0 by definition rather than
// inferred from the nested sums.
func IntegrateVACF(vacf []float64, dt float64) []float64 {
	msd := make([]float64, len(vacf))
	var inner, outer float64
	for k := 1; k < len(vacf); k++ {
		inner += vacf[k-1]
		outer += inner
		msd[k] = 2 * dt * dt * outer
	}
	return msd
}

// FromVACF computes the total 2D MSD of an externally measured
// trajectory through its velocity autocorrelation: differentiate each
// axis, autocorrelate, then double-integrate. dt is taken as the mean
// spacing of the time axis; non-uniform sampling degrades accuracy but
// is not rejected.
func FromVACF(t *langevin.Trajectory) ([]float64, error) {
	dt := t.Dt()
	if dt <= 0 {
		return nil, fmt.Errorf("%w: need at least 2 samples with increasing times", ErrInsufficientData)
	}

	vx, err := Velocity(t.X, t.Times)
	if err != nil {
		return nil, err
	}
	vy, err := Velocity(t.Y, t.Times)
	if err != nil {
		return nil, err
	}

	msd := IntegrateVACF(VACF(vx), dt)
	msdY := IntegrateVACF(VACF(vy), dt)
	for i := range msd {
		msd[i] += msdY[i]
	}
	return msd, nil
}
