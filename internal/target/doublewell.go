package target

import (
	"math"

	"github.com/san-kum/walnuts/internal/vec"
)

// DoubleWell puts a bistable quartic potential A*(q0^2 - B)^2 on the first
// coordinate; the remaining coordinates are standard normal.
type DoubleWell struct {
	N    int
	A, B float64
}

func NewDoubleWell(n int) *DoubleWell {
	return &DoubleWell{N: n, A: 1.0, B: 1.0}
}

func (d *DoubleWell) Dim() int { return d.N }

func (d *DoubleWell) LogDensity(q vec.Vector) float64 {
	w := q[0]*q[0] - d.B
	lp := -d.A * w * w
	for _, x := range q[1:] {
		lp -= 0.5 * x * x
	}
	return lp
}

func (d *DoubleWell) GradLogDensity(q vec.Vector) vec.Vector {
	g := q.Scale(-1)
	g[0] = -4 * d.A * q[0] * (q[0]*q[0] - d.B)
	return g
}

func (d *DoubleWell) Params() map[string]float64 {
	return map[string]float64{"a": d.A, "b": d.B}
}

// Broken has a finite standard-normal log-density but a NaN gradient
// everywhere, so every trajectory is rejected.
type Broken struct {
	N int
}

func (b *Broken) Dim() int { return b.N }

func (b *Broken) LogDensity(q vec.Vector) float64 {
	return -0.5 * q.Norm2()
}

func (b *Broken) GradLogDensity(q vec.Vector) vec.Vector {
	g := make(vec.Vector, len(q))
	for i := range g {
		g[i] = math.NaN()
	}
	return g
}
