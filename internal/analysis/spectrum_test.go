package analysis_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/brownlab/internal/analysis"
)

var _ = Describe("VelocityPowerSpectrum", func() {
	It("peaks at the oscillation frequency of a sine trajectory", func() {
		const (
			n    = 1024
			dt   = 0.01
			freq = 5.0 // Hz
		)

		times := make([]float64, n)
		x := make([]float64, n)
		for i := range times {
			times[i] = float64(i) * dt
			x[i] = math.Sin(2 * math.Pi * freq * times[i])
		}

		freqs, power, err := analysis.VelocityPowerSpectrum(x, times)
		Expect(err).NotTo(HaveOccurred())
		Expect(freqs).To(HaveLen(n / 2))
		Expect(power).To(HaveLen(n / 2))

		maxIdx := 0
		for i := 1; i < len(power); i++ {
			if power[i] > power[maxIdx] {
				maxIdx = i
			}
		}
		Expect(freqs[maxIdx]).To(BeNumerically("~", freq, 0.2))
	})

	It("rejects sequences too short to differentiate", func() {
		_, _, err := analysis.VelocityPowerSpectrum([]float64{1}, []float64{0})
		Expect(err).To(MatchError(analysis.ErrInsufficientData))
	})
})
