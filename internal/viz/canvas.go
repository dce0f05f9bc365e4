package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

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
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// PixelSize is the canvas size in sub-pixels: (Width*2) x (Height*4).
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
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

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
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

// Block fills a (2r+1)-pixel square centred on (x, y).
func (c *Canvas) Block(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

// Cross draws the two diagonals of a (2r+1)-pixel square centred on (x, y).
func (c *Canvas) Cross(x, y, r int) {
	for d := -r; d <= r; d++ {
		c.Set(x+d, y+d)
		c.Set(x+d, y-d)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps a rectangle of sample space onto a canvas.
type Viewport struct {
	MinX, MaxX, MinY, MaxY float64
}

// FitViewport returns the bounding box of xs and ys grown by pad on every
// side as a fraction of its extent. Degenerate extents become unit-sized.
func FitViewport(xs, ys []float64, pad float64) Viewport {
	v := Viewport{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		v.MinX = math.Min(v.MinX, xs[i])
		v.MaxX = math.Max(v.MaxX, xs[i])
		v.MinY = math.Min(v.MinY, ys[i])
		v.MaxY = math.Max(v.MaxY, ys[i])
	}
	if math.IsInf(v.MinX, 1) {
		return Viewport{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	}

	rx, ry := v.MaxX-v.MinX, v.MaxY-v.MinY
	if rx == 0 {
		rx = 1
		v.MinX -= 0.5
		v.MaxX += 0.5
	}
	if ry == 0 {
		ry = 1
		v.MinY -= 0.5
		v.MaxY += 0.5
	}
	v.MinX -= rx * pad
	v.MaxX += rx * pad
	v.MinY -= ry * pad
	v.MaxY += ry * pad
	return v
}

// Pixel maps (x, y) to sub-pixel coordinates of c, y growing upwards.
func (v Viewport) Pixel(c *Canvas, x, y float64) (int, int) {
	pw, ph := c.PixelSize()
	px := (x - v.MinX) / (v.MaxX - v.MinX) * float64(pw-1)
	py := (v.MaxY - y) / (v.MaxY - v.MinY) * float64(ph-1)
	return int(math.Round(px)), int(math.Round(py))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
