// Package export renders trajectories to standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/brownlab/internal/langevin"
)

// TrajectorySVG draws the particle path as a polyline scaled to the
// trajectory's bounding box. Start and end points are marked.
func TrajectorySVG(traj *langevin.Trajectory, width, height float64) string {
	if traj == nil || traj.Len() < 2 {
		return ""
	}

	xMin, xMax := bounds(traj.X)
	yMin, yMax := bounds(traj.Y)

	const margin = 10.0
	sx := (width - 2*margin) / (xMax - xMin)
	sy := (height - 2*margin) / (yMax - yMin)

	px := func(x float64) float64 { return margin + (x-xMin)*sx }
	py := func(y float64) float64 { return height - margin - (y-yMin)*sy }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<polyline fill="none" stroke="#00ff88" stroke-width="0.6" points="`,
		width, height, width, height))

	for i := 0; i < traj.Len(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", px(traj.X[i]), py(traj.Y[i])))
	}

	sb.WriteString("\"/>\n")
	sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="3" fill="#00ffff"/>`+"\n",
		px(traj.X[0]), py(traj.Y[0])))
	sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="3" fill="#ff00ff"/>`+"\n",
		px(traj.X[traj.Len()-1]), py(traj.Y[traj.Len()-1])))
	sb.WriteString("</svg>\n")

	return sb.String()
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}
