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

// ensembleMSD averages the total MSD over an ensemble of independent
// runs, shrinking the single-trajectory estimator noise.
func ensembleMSD(sim *langevin.Simulator, mode langevin.Mode, cfg langevin.Config, runs int, seedStart int64) []float64 {
	trajs, err := langevin.NewEnsemble(sim, runs, seedStart).Run(context.Background(), mode, cfg)
	Expect(err).NotTo(HaveOccurred())

	mean, err := analysis.FromTrajectory(trajs[0])
	Expect(err).NotTo(HaveOccurred())
	for _, traj := range trajs[1:] {
		msd, err := analysis.FromTrajectory(traj)
		Expect(err).NotTo(HaveOccurred())
		for i := range mean {
			mean[i] += msd[i]
		}
	}
	for i := range mean {
		mean[i] /= float64(runs)
	}
	return mean
}

var _ = Describe("simulation to slope pipeline", func() {
	Describe("overdamped dynamics", func() {
		var sim *langevin.Simulator
		cfg := langevin.Config{Dt: 0.01, Duration: 10.0}

		BeforeEach(func() {
			var err error
			sim, err = langevin.New(physics.Particle{Mass: 1e-20, Radius: 1e-7}, physics.Water())
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces 1000 samples from the origin under the reference parameters", func() {
			traj, err := sim.Run(context.Background(), langevin.Overdamped, cfg, rand.New(rand.NewSource(42)))
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Len()).To(Equal(1000))
			Expect(traj.X[0]).To(BeZero())
			Expect(traj.Y[0]).To(BeZero())
		})

		It("scales diffusively over an intermediate window", func() {
			// A single trajectory estimates the slope with sd ≈ 0.12
			// over this window; averaging 8 runs brings it near 0.05.
			msd := ensembleMSD(sim, langevin.Overdamped, cfg, 8, 42)

			traj, err := sim.Run(context.Background(), langevin.Overdamped, cfg, rand.New(rand.NewSource(42)))
			Expect(err).NotTo(HaveOccurred())

			fit, err := analysis.FitLogLogSlope(traj.Times, msd, 0.1, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(fit.Slope).To(BeNumerically("~", 1.0, 0.15))
		})

		It("stays in a diffusive range for one fixed seed", func() {
			traj, err := sim.Run(context.Background(), langevin.Overdamped, cfg, rand.New(rand.NewSource(42)))
			Expect(err).NotTo(HaveOccurred())

			msd, err := analysis.FromTrajectory(traj)
			Expect(err).NotTo(HaveOccurred())

			fit, err := analysis.FitLogLogSlope(traj.Times, msd, 0.1, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(fit.Slope).To(BeNumerically(">", 0.6))
			Expect(fit.Slope).To(BeNumerically("<", 1.4))
		})
	})

	Describe("underdamped dynamics", func() {
		It("is ballistic at short lags and diffusive at long lags", func() {
			// Momentum relaxation time m/gamma ≈ 0.1 s, dt = 1 ms.
			p := physics.Particle{Mass: 1.9e-10, Radius: 1e-7}
			sim, err := langevin.New(p, physics.Water())
			Expect(err).NotTo(HaveOccurred())

			tau := physics.RelaxationTime(p, sim.Coefficients())
			Expect(tau).To(BeNumerically("~", 0.1, 0.02))

			cfg := langevin.Config{Dt: 1e-3, Duration: 10.0}
			msd := ensembleMSD(sim, langevin.Underdamped, cfg, 6, 7)

			times := make([]float64, cfg.Steps())
			for i := range times {
				times[i] = cfg.Duration * float64(i) / float64(len(times)-1)
			}

			short, err := analysis.FitLogLogSlope(times, msd, 2e-3, 2.5e-2)
			Expect(err).NotTo(HaveOccurred())
			long, err := analysis.FitLogLogSlope(times, msd, 0.5, 3.0)
			Expect(err).NotTo(HaveOccurred())

			Expect(short.Slope).To(BeNumerically("~", 1.97, 0.12))
			Expect(long.Slope).To(BeNumerically(">", 0.7))
			Expect(long.Slope).To(BeNumerically("<", 1.4))
			Expect(short.Slope).To(BeNumerically(">", long.Slope+0.3))
		})
	})
})
