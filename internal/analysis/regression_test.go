package analysis_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/brownlab/internal/analysis"
)

// powerLaw builds msd = c·t^alpha on a uniform time grid.
func powerLaw(n int, dt, c, alpha float64) (times, msd []float64) {
	times = make([]float64, n)
	msd = make([]float64, n)
	for i := range times {
		times[i] = float64(i+1) * dt
		msd[i] = c * math.Pow(times[i], alpha)
	}
	return times, msd
}

var _ = Describe("FitLogLogSlope", func() {
	It("recovers the exponent of a pure power law", func() {
		for _, alpha := range []float64{0.5, 1.0, 2.0} {
			times, msd := powerLaw(500, 0.01, 4e-12, alpha)

			fit, err := analysis.FitLogLogSlope(times, msd, 0.1, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(fit.Slope).To(BeNumerically("~", alpha, 1e-9))
			Expect(fit.Intercept).To(BeNumerically("~", math.Log10(4e-12), 1e-6))
		}
	})

	It("filters with strict window bounds", func() {
		times := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
		msd := []float64{1, 2, 3, 4, 5}

		fit, err := analysis.FitLogLogSlope(times, msd, 0.1, 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(fit.Points).To(HaveLen(3))
		Expect(fit.Points[0].LogTime).To(BeNumerically("~", math.Log10(0.2), 1e-12))
	})

	It("fails when fewer than 2 points survive the window", func() {
		times, msd := powerLaw(100, 0.01, 1.0, 1.0)

		_, err := analysis.FitLogLogSlope(times, msd, 0.5, 0.5)
		Expect(err).To(MatchError(analysis.ErrInsufficientData))

		_, err = analysis.FitLogLogSlope(times, msd, 100, 200)
		Expect(err).To(MatchError(analysis.ErrInsufficientData))
	})

	It("fails on non-positive values inside the window", func() {
		times := []float64{0.1, 0.2, 0.3, 0.4}
		msd := []float64{1, 0, 3, 4}

		_, err := analysis.FitLogLogSlope(times, msd, 0.15, 0.45)
		Expect(err).To(MatchError(analysis.ErrInsufficientData))
	})

	It("fails on mismatched input lengths", func() {
		_, err := analysis.FitLogLogSlope([]float64{1, 2}, []float64{1}, 0, 10)
		Expect(err).To(MatchError(analysis.ErrInsufficientData))
	})

	It("does not silently fall back to a default slope", func() {
		fit, err := analysis.FitLogLogSlope(nil, nil, 0, 1)
		Expect(err).To(HaveOccurred())
		Expect(fit.Points).To(BeEmpty())
	})
})
