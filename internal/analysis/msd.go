package analysis

import (
	"errors"
	"fmt"

	"github.com/san-kum/brownlab/internal/langevin"
)

// ErrInsufficientData indicates too few samples for a computation.
var ErrInsufficientData = errors.New("analysis: insufficient data")

// minParallelLags is the lag count below which MSD falls back to a
// single goroutine.
const minParallelLags = 128

// FromPositions computes the time-lag mean squared displacement of a
// 1D position sequence. msd[L] is the mean of (r[i+L]−r[i])² over all
// valid i, with equal weight per pair; msd[0] is 0 by definition.
//
// Lags are independent, so the O(N²) scan is split across CPUs. The
// averaging semantics are identical to the serial form.
func FromPositions(r []float64) ([]float64, error) {
	n := len(r)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientData, n)
	}

	msd := make([]float64, n)
	ParallelFor(n-1, minParallelLags, func(start, end int) {
		for k := start; k < end; k++ {
			lag := k + 1
			var sum float64
			for i := 0; i+lag < n; i++ {
				d := r[i+lag] - r[i]
				sum += d * d
			}
			msd[lag] = sum / float64(n-lag)
		}
	})

	return msd, nil
}

// Total computes the 2D MSD as the index-aligned sum of the per-axis
// MSDs.
func Total(x, y []float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: axis lengths differ (%d vs %d)", ErrInsufficientData, len(x), len(y))
	}

	msdX, err := FromPositions(x)
	if err != nil {
		return nil, err
	}
	msdY, err := FromPositions(y)
	if err != nil {
		return nil, err
	}

	for i := range msdX {
		msdX[i] += msdY[i]
	}
	return msdX, nil
}

// FromTrajectory computes the total 2D MSD of a trajectory.
func FromTrajectory(t *langevin.Trajectory) ([]float64, error) {
	return Total(t.X, t.Y)
}
