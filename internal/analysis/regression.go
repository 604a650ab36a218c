package analysis

import (
	"fmt"
	"math"
)

// Point is one (log10 time, log10 MSD) sample used in a fit.
type Point struct {
	LogTime float64
	LogMSD  float64
}

// Fit is the result of a log-log regression. Points holds the filtered
// samples the line was fitted through, for plotting and inspection.
type Fit struct {
	Slope     float64
	Intercept float64
	Points    []Point
}

// FitLogLogSlope fits log10(msd) against log10(time) by ordinary least
// squares over the samples with windowMin < time < windowMax (strict
// bounds). The slope is the diffusive scaling exponent.
//
// Fails with ErrInsufficientData when fewer than 2 samples survive the
// window, or when any surviving time or MSD value is non-positive.
func FitLogLogSlope(times, msd []float64, windowMin, windowMax float64) (Fit, error) {
	if len(times) != len(msd) {
		return Fit{}, fmt.Errorf("%w: time and msd lengths differ (%d vs %d)", ErrInsufficientData, len(times), len(msd))
	}

	points := make([]Point, 0)
	for i := range times {
		if times[i] <= windowMin || times[i] >= windowMax {
			continue
		}
		if times[i] <= 0 || msd[i] <= 0 {
			return Fit{}, fmt.Errorf("%w: non-positive value in fit window at index %d (t=%g, msd=%g)",
				ErrInsufficientData, i, times[i], msd[i])
		}
		points = append(points, Point{
			LogTime: math.Log10(times[i]),
			LogMSD:  math.Log10(msd[i]),
		})
	}

	if len(points) < 2 {
		return Fit{}, fmt.Errorf("%w: %d points in window (%g, %g), need at least 2",
			ErrInsufficientData, len(points), windowMin, windowMax)
	}

	var sx, sy, sxx, sxy float64
	for _, p := range points {
		sx += p.LogTime
		sy += p.LogMSD
		sxx += p.LogTime * p.LogTime
		sxy += p.LogTime * p.LogMSD
	}

	n := float64(len(points))
	denom := n*sxx - sx*sx
	if denom == 0 {
		return Fit{}, fmt.Errorf("%w: degenerate fit window (all times equal)", ErrInsufficientData)
	}

	slope := (n*sxy - sx*sy) / denom
	return Fit{
		Slope:     slope,
		Intercept: (sy - slope*sx) / n,
		Points:    points,
	}, nil
}
