package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/popsim/internal/popdyn"
)

var (
	chartTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	chartStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(0, 1)
	captionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// TimeSeriesChart renders one chart per state variable over the trajectory.
func TimeSeriesChart(traj popdyn.Trajectory, labels []string, width, height int) string {
	if len(traj) == 0 {
		return "(no samples)"
	}
	var b strings.Builder
	dim := len(traj[0].X)
	for i := 0; i < dim; i++ {
		label := fmt.Sprintf("x[%d]", i)
		if i < len(labels) {
			label = labels[i]
		}
		data := traj.Column(i)
		chart := asciigraph.Plot(data,
			asciigraph.Width(width),
			asciigraph.Height(height),
			asciigraph.Caption(fmt.Sprintf("t = %.2f .. %.2f", traj[0].T, traj.Last().T)),
		)
		b.WriteString(chartTitleStyle.Render(label) + "\n")
		b.WriteString(chartStyle.Render(chart) + "\n\n")
	}
	return b.String()
}

// CombinedChart overlays all variables in a single plot.
func CombinedChart(traj popdyn.Trajectory, labels []string, width, height int) string {
	if len(traj) == 0 {
		return "(no samples)"
	}
	dim := len(traj[0].X)
	series := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		series[i] = traj.Column(i)
	}
	chart := asciigraph.PlotMany(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red, asciigraph.Blue, asciigraph.Yellow),
	)
	legend := make([]string, 0, dim)
	for i := 0; i < dim; i++ {
		if i < len(labels) {
			legend = append(legend, labels[i])
		} else {
			legend = append(legend, fmt.Sprintf("x[%d]", i))
		}
	}
	return chartStyle.Render(chart) + "\n" + captionStyle.Render(strings.Join(legend, "  "))
}

// PhaseChart plots variable j against variable i on a braille canvas.
func PhaseChart(traj popdyn.Trajectory, i, j, width, height int, xLabel, yLabel string) string {
	if len(traj) == 0 {
		return "(no samples)"
	}
	dim := len(traj[0].X)
	if i < 0 || i >= dim || j < 0 || j >= dim {
		return fmt.Sprintf("(variable index out of range for dimension %d)", dim)
	}
	c := NewCanvas(width, height)
	c.PlotXY(traj.Column(i), traj.Column(j))
	caption := captionStyle.Render(fmt.Sprintf("horizontal: %s   vertical: %s", xLabel, yLabel))
	return chartStyle.Render(c.String()) + "\n" + caption
}
