package analysis

import (
	"strings"

	"github.com/san-kum/walnuts/internal/vec"
)

// Scatter2D holds a 2-D projection of a chain.
type Scatter2D struct {
	XIndex, YIndex int
	Points         []struct{ X, Y float64 }
}

// Project records coordinates xIdx and yIdx of every position in chain.
func Project(chain []vec.Vector, xIdx, yIdx int) *Scatter2D {
	if len(chain) == 0 || xIdx >= len(chain[0]) || yIdx >= len(chain[0]) {
		return nil
	}

	sc := &Scatter2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]struct{ X, Y float64 }, 0, len(chain)),
	}
	for _, q := range chain {
		sc.Points = append(sc.Points, struct{ X, Y float64 }{X: q[xIdx], Y: q[yIdx]})
	}
	return sc
}

// ScatterToASCII renders the projection with axes through the origin.
func ScatterToASCII(sc *Scatter2D, width, height int) string {
	if sc == nil || len(sc.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := sc.Points[0].X, sc.Points[0].X
	minY, maxY := sc.Points[0].Y, sc.Points[0].Y

	for _, p := range sc.Points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// density: · for one draw, • for a few, ● for many
	counts := make([][]int, height)
	for i := range counts {
		counts[i] = make([]int, width)
	}
	for _, p := range sc.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			counts[row][col]++
		}
	}
	for row := range counts {
		for col, c := range counts[row] {
			switch {
			case c >= 5:
				canvas[row][col] = '●'
			case c >= 2:
				canvas[row][col] = '•'
			case c == 1:
				canvas[row][col] = '·'
			}
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
