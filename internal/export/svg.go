// Package export renders finished trajectories as standalone SVG charts.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/popsim/internal/popdyn"
)

var seriesColors = []string{"#00ff88", "#ff5577", "#55aaff", "#ffcc44"}

// TimeSeriesSVG draws every state variable against time as one polyline
// per variable, with a legend row at the top.
func TimeSeriesSVG(traj popdyn.Trajectory, labels []string, width, height int) string {
	if len(traj) < 2 {
		return ""
	}
	dim := len(traj[0].X)
	times := traj.Times()

	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, s := range traj {
		for _, v := range s.X {
			if !isFinite(v) {
				continue
			}
			if v < ymin {
				ymin = v
			}
			if v > ymax {
				ymax = v
			}
		}
	}
	if ymin > ymax {
		ymin, ymax = 0, 1
	}

	var sb strings.Builder
	writeHeader(&sb, width, height)
	for i := 0; i < dim; i++ {
		color := seriesColors[i%len(seriesColors)]
		writePolyline(&sb, times, traj.Column(i), ymin, ymax, width, height, color)
		label := fmt.Sprintf("x[%d]", i)
		if i < len(labels) {
			label = labels[i]
		}
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="16" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 10+i*90, color, label))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// PhaseSVG draws variable j against variable i as a single curve.
func PhaseSVG(traj popdyn.Trajectory, i, j, width, height int) string {
	if len(traj) < 2 {
		return ""
	}
	dim := len(traj[0].X)
	if i < 0 || i >= dim || j < 0 || j >= dim {
		return ""
	}
	xs := traj.Column(i)
	ys := traj.Column(j)
	ymin, ymax := finiteBounds(ys)

	var sb strings.Builder
	writeHeader(&sb, width, height)
	writePolyline(&sb, xs, ys, ymin, ymax, width, height, seriesColors[0])
	sb.WriteString("</svg>")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

// writePolyline scales the points into the viewport and emits one path.
// Non-finite samples break the curve into separate subpaths rather than
// producing unparseable coordinates.
func writePolyline(sb *strings.Builder, xs, ys []float64, ymin, ymax float64, width, height int, color string) {
	xmin, xmax := finiteBounds(xs)
	rangeX := xmax - xmin
	rangeY := ymax - ymin
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	// 5% margin on each side
	padX := rangeX * 0.05
	padY := rangeY * 0.05
	xmin -= padX
	rangeX += 2 * padX
	ymin -= padY
	rangeY += 2 * padY

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, color))
	first := true
	pen := false
	for i := range xs {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			pen = false
			continue
		}
		x := (xs[i] - xmin) / rangeX * float64(width)
		y := float64(height) - (ys[i]-ymin)/rangeY*float64(height)
		cmd := " L"
		if !pen {
			cmd = " M"
			if first {
				cmd = "M"
			}
		}
		sb.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, x, y))
		first = false
		pen = true
	}
	sb.WriteString("\"/>\n")
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteBounds(data []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range data {
		if !isFinite(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}
