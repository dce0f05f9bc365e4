package walnuts

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/walnuts/internal/vec"
)

// MomentumSource draws the momentum that starts a transition. Draws must be
// independent of the chain history.
type MomentumSource interface {
	Draw(dim int) vec.Vector
}

// StandardNormal draws each coordinate from N(0, 1).
type StandardNormal struct {
	dist distuv.Normal
}

// NewStandardNormal draws from src. A nil src uses the global generator.
func NewStandardNormal(src rand.Source) *StandardNormal {
	return &StandardNormal{dist: distuv.Normal{Mu: 0, Sigma: 1, Src: src}}
}

func (n *StandardNormal) Draw(dim int) vec.Vector {
	v := make(vec.Vector, dim)
	for i := range v {
		v[i] = n.dist.Rand()
	}
	return v
}
