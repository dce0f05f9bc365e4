package target

import "github.com/san-kum/walnuts/internal/vec"

type Target interface {
	Dim() int
	LogDensity(q vec.Vector) float64
	GradLogDensity(q vec.Vector) vec.Vector
}

// Parameterized is implemented by targets with named shape parameters.
type Parameterized interface {
	Params() map[string]float64
}

// Func adapts a pair of functions to a Target.
type Func struct {
	N    int
	LogP func(q vec.Vector) float64
	Grad func(q vec.Vector) vec.Vector
}

func (f Func) Dim() int                               { return f.N }
func (f Func) LogDensity(q vec.Vector) float64        { return f.LogP(q) }
func (f Func) GradLogDensity(q vec.Vector) vec.Vector { return f.Grad(q) }
