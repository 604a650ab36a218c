package analysis_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/brownlab/internal/analysis"
	"github.com/san-kum/brownlab/internal/langevin"
	"github.com/san-kum/brownlab/internal/physics"
)

// ballistic builds a constant-velocity trajectory x = v·t, y = 0.
func ballistic(n int, dt, v float64) *langevin.Trajectory {
	t := &langevin.Trajectory{
		Times: make([]float64, n),
		X:     make([]float64, n),
		Y:     make([]float64, n),
	}
	for i := range t.Times {
		t.Times[i] = float64(i) * dt
		t.X[i] = v * t.Times[i]
	}
	return t
}

func simulated(seed int64) *langevin.Trajectory {
	sim, err := langevin.New(physics.Particle{Mass: 1e-20, Radius: 1e-7}, physics.Water())
	Expect(err).NotTo(HaveOccurred())

	traj, err := sim.Run(context.Background(), langevin.Overdamped,
		langevin.Config{Dt: 0.01, Duration: 10.0}, rand.New(rand.NewSource(seed)))
	Expect(err).NotTo(HaveOccurred())
	return traj
}

var _ = Describe("FromPositions", func() {
	It("returns all zeros for a motionless particle", func() {
		r := make([]float64, 200)
		for i := range r {
			r[i] = 3.7
		}

		msd, err := analysis.FromPositions(r)
		Expect(err).NotTo(HaveOccurred())
		Expect(msd).To(HaveLen(200))
		for _, m := range msd {
			Expect(m).To(BeZero())
		}
	})

	It("defines zero displacement at zero lag", func() {
		msd, err := analysis.FromPositions([]float64{0, 1, 3, 6})
		Expect(err).NotTo(HaveOccurred())
		Expect(msd[0]).To(BeZero())
	})

	It("grows linearly in lag for a unit random walk", func() {
		rng := rand.New(rand.NewSource(11))
		r := make([]float64, 4000)
		for i := 1; i < len(r); i++ {
			r[i] = r[i-1] + rng.NormFloat64()
		}

		msd, err := analysis.FromPositions(r)
		Expect(err).NotTo(HaveOccurred())

		// E[msd[L]] = L for step variance 1.
		for _, lag := range []int{1, 2, 5, 10, 20} {
			Expect(msd[lag] / float64(lag)).To(BeNumerically("~", 1.0, 0.3),
				"lag %d", lag)
		}
	})

	It("matches a serial rescan on small input", func() {
		r := []float64{0, 1, -1, 2, 4, 3.5, 0.25}
		msd, err := analysis.FromPositions(r)
		Expect(err).NotTo(HaveOccurred())

		n := len(r)
		for lag := 1; lag < n; lag++ {
			var sum float64
			for i := 0; i+lag < n; i++ {
				d := r[i+lag] - r[i]
				sum += d * d
			}
			Expect(msd[lag]).To(BeNumerically("~", sum/float64(n-lag), 1e-12))
		}
	})

	It("rejects sequences shorter than 2 samples", func() {
		_, err := analysis.FromPositions([]float64{1.0})
		Expect(err).To(MatchError(analysis.ErrInsufficientData))
	})
})

var _ = Describe("Total", func() {
	It("adds the per-axis MSDs index by index", func() {
		x := []float64{0, 1, 2, 3}
		y := []float64{0, -1, -2, -3}

		total, err := analysis.Total(x, y)
		Expect(err).NotTo(HaveOccurred())

		mx, _ := analysis.FromPositions(x)
		my, _ := analysis.FromPositions(y)
		for i := range total {
			Expect(total[i]).To(BeNumerically("~", mx[i]+my[i], 1e-12))
		}
	})

	It("rejects mismatched axis lengths", func() {
		_, err := analysis.Total([]float64{1, 2, 3}, []float64{1, 2})
		Expect(err).To(MatchError(analysis.ErrInsufficientData))
	})
})

var _ = Describe("FromVACF", func() {
	It("agrees with direct lag averaging on ballistic motion", func() {
		traj := ballistic(200, 0.1, 2.0)

		direct, err := analysis.FromTrajectory(traj)
		Expect(err).NotTo(HaveOccurred())
		viaVACF, err := analysis.FromVACF(traj)
		Expect(err).NotTo(HaveOccurred())

		// The nested-sum form gives v²·dt²·k(k+1) against the exact
		// v²·dt²·k², so agreement tightens as the lag grows.
		for lag := 20; lag < 150; lag += 10 {
			Expect(viaVACF[lag] / direct[lag]).To(BeNumerically("~", 1.0, 0.06),
				"lag %d", lag)
		}
	})

	It("is non-decreasing and non-negative for a simulated walk", func() {
		traj := simulated(5)

		msd, err := analysis.FromVACF(traj)
		Expect(err).NotTo(HaveOccurred())
		Expect(msd[0]).To(BeZero())

		// Large lags average over few pairs and get noisy, so the
		// strict checks cover the well-sampled range.
		for i := 1; i <= len(msd)/20; i++ {
			Expect(msd[i]).To(BeNumerically(">=", msd[i-1]), "lag %d", i)
		}
		for i := 0; i < len(msd)/2; i++ {
			Expect(msd[i]).To(BeNumerically(">=", 0), "lag %d", i)
		}
	})

	It("is bit-identical across reruns on identical input", func() {
		traj := simulated(9)

		a, err := analysis.FromVACF(traj)
		Expect(err).NotTo(HaveOccurred())
		b, err := analysis.FromVACF(traj)
		Expect(err).NotTo(HaveOccurred())

		Expect(a).To(Equal(b))
	})

	It("rejects trajectories shorter than 2 samples", func() {
		traj := &langevin.Trajectory{Times: []float64{0}, X: []float64{0}, Y: []float64{0}}
		_, err := analysis.FromVACF(traj)
		Expect(err).To(MatchError(analysis.ErrInsufficientData))
	})
})

var _ = Describe("Velocity", func() {
	It("recovers a constant velocity exactly", func() {
		traj := ballistic(50, 0.05, -1.5)

		v, err := analysis.Velocity(traj.X, traj.Times)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(HaveLen(50))
		for i, vi := range v {
			Expect(vi).To(BeNumerically("~", -1.5, 1e-9), "index %d", i)
		}
	})
})
