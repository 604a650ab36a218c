package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// VelocityPowerSpectrum computes the one-sided magnitude spectrum of
// the finite-difference velocity of a position sequence. It returns
// index-aligned frequency (Hz) and magnitude slices of length N/2.
func VelocityPowerSpectrum(r, times []float64) (freqs, power []float64, err error) {
	v, err := Velocity(r, times)
	if err != nil {
		return nil, nil, err
	}

	n := len(v)
	dt := (times[n-1] - times[0]) / float64(n-1)

	spec := fft.FFTReal(v)
	half := n / 2
	freqs = make([]float64, half)
	power = make([]float64, half)
	for i := 0; i < half; i++ {
		freqs[i] = float64(i) / (float64(n) * dt)
		power[i] = cmplx.Abs(spec[i])
	}
	return freqs, power, nil
}
