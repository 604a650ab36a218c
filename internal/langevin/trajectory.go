package langevin

// Trajectory is a 2D position sequence sampled on a uniform time axis.
// Index-aligned: Times, X and Y all have the same length. Trajectories
// are value objects, produced once and never mutated.
type Trajectory struct {
	Times []float64
	X     []float64
	Y     []float64
}

// Len returns the number of samples.
func (t *Trajectory) Len() int { return len(t.Times) }

// Dt returns the mean sample spacing, or 0 for fewer than 2 samples.
func (t *Trajectory) Dt() float64 {
	n := len(t.Times)
	if n < 2 {
		return 0
	}
	return (t.Times[n-1] - t.Times[0]) / float64(n-1)
}

// Clone returns a deep copy.
func (t *Trajectory) Clone() *Trajectory {
	c := &Trajectory{
		Times: make([]float64, len(t.Times)),
		X:     make([]float64, len(t.X)),
		Y:     make([]float64, len(t.Y)),
	}
	copy(c.Times, t.Times)
	copy(c.X, t.X)
	copy(c.Y, t.Y)
	return c
}
