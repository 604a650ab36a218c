// Package viz renders trajectories and MSD curves in the terminal.
package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/brownlab/internal/analysis"
)

// LogLogMSD plots log10(MSD) against log10(time) with the fitted
// regression line overlaid as a second series.
func LogLogMSD(times, msd []float64, fit analysis.Fit) string {
	logMSD := make([]float64, 0, len(msd))
	fitLine := make([]float64, 0, len(msd))

	for i := range msd {
		if times[i] <= 0 || msd[i] <= 0 {
			continue
		}
		lt := math.Log10(times[i])
		logMSD = append(logMSD, math.Log10(msd[i]))
		fitLine = append(fitLine, fit.Slope*lt+fit.Intercept)
	}

	if len(logMSD) < 2 {
		return "not enough positive samples to plot"
	}

	graph := asciigraph.PlotMany(
		[][]float64{logMSD, fitLine},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("log10(MSD) vs log10(time), fit slope = %.4f", fit.Slope)),
	)
	return graph
}

// TrajectoryPlot renders the x and y coordinates against sample index.
func TrajectoryPlot(x, y []float64) string {
	return asciigraph.PlotMany(
		[][]float64{x, y},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("x and y vs sample"),
	)
}

// MSDPlot renders the raw MSD curve against lag time.
func MSDPlot(msd []float64) string {
	return asciigraph.Plot(msd,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("MSD vs lag"),
	)
}
