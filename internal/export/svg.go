package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/walnuts/internal/analysis"
	"github.com/san-kum/walnuts/internal/viz"
)

const background = "#0a0a0a"

// CanvasToSVG converts a braille canvas to SVG, one dot per set pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	width := float64(pw) * scale
	height := float64(ph) * scale

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", color)

	r := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ScatterToSVG draws the chain's path in a faint stroke and every draw as a
// dot on top.
func ScatterToSVG(sc *analysis.Scatter2D, width, height int, color string) string {
	if sc == nil || len(sc.Points) == 0 {
		return ""
	}

	xs := make([]float64, len(sc.Points))
	ys := make([]float64, len(sc.Points))
	for i, p := range sc.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	bx := newAxis(xs, float64(width), false)
	by := newAxis(ys, float64(height), true)

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-opacity=\"0.25\" stroke-width=\"0.75\" d=\"", color)
	for i := range xs {
		cmd := " L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, bx.at(xs[i]), by.at(ys[i]))
	}
	sb.WriteString("\"/>\n")

	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", color)
	for i := range xs {
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"1.5\"/>\n", bx.at(xs[i]), by.at(ys[i]))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TraceToSVG draws xs against its index as a polyline.
func TraceToSVG(xs []float64, width, height int, color string) string {
	if len(xs) < 2 {
		return ""
	}

	idx := make([]float64, len(xs))
	for i := range idx {
		idx[i] = float64(i)
	}
	bx := newAxis(idx, float64(width), false)
	by := newAxis(xs, float64(height), true)

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", color)
	for i, x := range xs {
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", bx.at(idx[i]), by.at(x))
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// axis maps data values onto [0, size] with 10% padding.
type axis struct {
	min, span, size float64
	flip            bool
}

func newAxis(vals []float64, size float64, flip bool) axis {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2
	return axis{min: lo, span: span, size: size, flip: flip}
}

func (a axis) at(v float64) float64 {
	f := (v - a.min) / a.span * a.size
	if a.flip {
		return a.size - f
	}
	return f
}
