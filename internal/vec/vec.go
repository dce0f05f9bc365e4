// Package vec provides the position, momentum and gradient vectors the sampler
// integrates over.
//
// Vectors are plain float64 slices. Methods that return a Vector allocate a
// new one; Increment is the only in-place operation.
package vec

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Vector []float64

// Zeros returns a zero vector of length n.
func Zeros(n int) Vector {
	return make(Vector, n)
}

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// Increment adds scale*other to v in place and returns v.
func (v Vector) Increment(other Vector, scale float64) Vector {
	floats.AddScaled(v, scale, other)
	return v
}

func (v Vector) Scale(factor float64) Vector {
	return floats.ScaleTo(make(Vector, len(v)), factor, v)
}

func (v Vector) Sub(other Vector) Vector {
	return floats.SubTo(make(Vector, len(v)), v, other)
}

func (v Vector) Dot(other Vector) float64 {
	return floats.Dot(v, other)
}

// Norm2 returns the squared Euclidean norm.
func (v Vector) Norm2() float64 {
	return floats.Dot(v, v)
}

func (v Vector) Norm() float64 {
	return floats.Norm(v, 2)
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Equal(other Vector) bool {
	return floats.Equal(v, other)
}
