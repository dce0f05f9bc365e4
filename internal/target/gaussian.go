package target

import (
	"math"

	"github.com/san-kum/walnuts/internal/vec"
)

// Gaussian is an isotropic normal centred at the origin.
type Gaussian struct {
	N     int
	Sigma float64
}

func NewGaussian(n int, sigma float64) *Gaussian {
	return &Gaussian{N: n, Sigma: sigma}
}

func (g *Gaussian) Dim() int { return g.N }

func (g *Gaussian) LogDensity(q vec.Vector) float64 {
	return -0.5 * q.Norm2() / (g.Sigma * g.Sigma)
}

func (g *Gaussian) GradLogDensity(q vec.Vector) vec.Vector {
	return q.Scale(-1 / (g.Sigma * g.Sigma))
}

func (g *Gaussian) Params() map[string]float64 {
	return map[string]float64{"sigma": g.Sigma}
}

// Correlated is a 2-D standard normal with correlation Rho between the axes.
type Correlated struct {
	Rho float64
}

func NewCorrelated(rho float64) *Correlated {
	return &Correlated{Rho: rho}
}

func (c *Correlated) Dim() int { return 2 }

func (c *Correlated) precision(q vec.Vector) vec.Vector {
	k := 1 / (1 - c.Rho*c.Rho)
	return vec.Vector{
		k * (q[0] - c.Rho*q[1]),
		k * (q[1] - c.Rho*q[0]),
	}
}

func (c *Correlated) LogDensity(q vec.Vector) float64 {
	return -0.5 * q.Dot(c.precision(q))
}

func (c *Correlated) GradLogDensity(q vec.Vector) vec.Vector {
	return c.precision(q).Scale(-1)
}

func (c *Correlated) Params() map[string]float64 {
	return map[string]float64{"rho": c.Rho}
}

// Banana is a twisted Gaussian: q0 is standard normal and q1 is normal around
// B*(q0^2 - 1). Coordinates past the second are standard normal.
type Banana struct {
	N int
	B float64
}

func NewBanana(n int, b float64) *Banana {
	return &Banana{N: n, B: b}
}

func (b *Banana) Dim() int { return b.N }

func (b *Banana) twist(q vec.Vector) float64 {
	return q[1] - b.B*(q[0]*q[0]-1)
}

func (b *Banana) LogDensity(q vec.Vector) float64 {
	u := b.twist(q)
	lp := -0.5*q[0]*q[0] - 0.5*u*u
	for _, x := range q[2:] {
		lp -= 0.5 * x * x
	}
	return lp
}

func (b *Banana) GradLogDensity(q vec.Vector) vec.Vector {
	u := b.twist(q)
	g := q.Scale(-1)
	g[0] = -q[0] + 2*b.B*q[0]*u
	g[1] = -u
	return g
}

func (b *Banana) Params() map[string]float64 {
	return map[string]float64{"b": b.B}
}

// Funnel is Neal's funnel: v = q0 ~ N(0, Scale^2) and every other coordinate
// is N(0, exp(v)).
type Funnel struct {
	N     int
	Scale float64
}

func NewFunnel(n int, scale float64) *Funnel {
	return &Funnel{N: n, Scale: scale}
}

func (f *Funnel) Dim() int { return f.N }

func (f *Funnel) LogDensity(q vec.Vector) float64 {
	v := q[0]
	ev := math.Exp(-v)
	lp := -0.5 * v * v / (f.Scale * f.Scale)
	for _, x := range q[1:] {
		lp -= 0.5 * x * x * ev
	}
	return lp - 0.5*float64(len(q)-1)*v
}

func (f *Funnel) GradLogDensity(q vec.Vector) vec.Vector {
	v := q[0]
	ev := math.Exp(-v)
	g := make(vec.Vector, len(q))
	g[0] = -v/(f.Scale*f.Scale) - 0.5*float64(len(q)-1)
	for i := 1; i < len(q); i++ {
		g[0] += 0.5 * q[i] * q[i] * ev
		g[i] = -q[i] * ev
	}
	return g
}

func (f *Funnel) Params() map[string]float64 {
	return map[string]float64{"scale": f.Scale}
}
