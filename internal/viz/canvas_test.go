package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndRender(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2", len(lines))
	}
	first := []rune(lines[0])
	if len(first) != 4 {
		t.Fatalf("got %d cols, want 4", len(first))
	}
	if first[0] == 0x2800 {
		t.Fatal("dot not set")
	}
	if first[1] != 0x2800 {
		t.Fatal("unexpected dot")
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(4, 2)
	// out-of-range coordinates must be ignored, not panic
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("out-of-range set modified the grid")
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("clear left dots behind")
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)
	if c.Grid[0][0] == 0x2800 {
		t.Fatal("start point not drawn")
	}
	if c.Grid[9][9] == 0x2800 {
		t.Fatal("end point not drawn")
	}
}

func TestPlotXYFillsCanvas(t *testing.T) {
	c := NewCanvas(20, 10)
	xs := make([]float64, 100)
	ys := make([]float64, 100)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = float64(i % 10)
	}
	c.PlotXY(xs, ys)

	dots := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				dots++
			}
		}
	}
	if dots == 0 {
		t.Fatal("no dots plotted")
	}
}

func TestPlotXYDegenerateInputs(t *testing.T) {
	c := NewCanvas(10, 5)
	c.PlotXY(nil, nil)
	c.PlotXY([]float64{1, 2}, []float64{1})
	// constant series must not divide by a zero range
	c.PlotXY([]float64{3, 3, 3}, []float64{7, 7, 7})
}
