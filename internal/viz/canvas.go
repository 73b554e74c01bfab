package viz

import (
	"math"
	"strings"
)

// Braille cells pack 2x4 dots per character, unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set marks a dot at (x, y) in sub-pixel coordinates. The canvas spans
// (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// PlotXY draws a connected curve of (xs, ys) pairs, autoscaled to fill the
// canvas with a small margin. Non-finite points break the curve.
func (c *Canvas) PlotXY(xs, ys []float64) {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return
	}
	xmin, xmax := finiteRange(xs)
	ymin, ymax := finiteRange(ys)
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}
	cw := float64(c.Width*2 - 4)
	ch := float64(c.Height*4 - 4)

	prevOK := false
	var px, py int
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			prevOK = false
			continue
		}
		x := 2 + int((xs[i]-xmin)/(xmax-xmin)*cw)
		y := 2 + int((ymax-ys[i])/(ymax-ymin)*ch)
		if prevOK {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py = x, y
		prevOK = true
	}
}

func finiteRange(data []float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min > max {
		return 0, 1
	}
	return min, max
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
