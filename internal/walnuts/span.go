package walnuts

import "github.com/san-kum/walnuts/internal/vec"

// Direction is the side of the trajectory a macro step extends.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// point is one phase-space state with its Hamiltonian log-density
// logp = logDensity(q) - |p|^2/2.
type point struct {
	q, p, grad vec.Vector
	logp       float64
}

func (pt point) clone() point {
	return point{q: pt.q.Clone(), p: pt.p.Clone(), grad: pt.grad.Clone(), logp: pt.logp}
}

// span is a contiguous piece of trajectory: its two endpoints and the
// position selected from it so far, with the span's log weight.
type span struct {
	bk, fw   point
	selected vec.Vector
	logp     float64
}

func leafSpan(pt point) *span {
	return &span{
		bk:       pt.clone(),
		fw:       pt.clone(),
		selected: pt.q.Clone(),
		logp:     pt.logp,
	}
}

func combinedSpan(bk, fw *span, selected vec.Vector, logp float64) *span {
	return &span{
		bk:       bk.bk.clone(),
		fw:       fw.fw.clone(),
		selected: selected.Clone(),
		logp:     logp,
	}
}

// end returns the endpoint facing dir.
func (s *span) end(dir Direction) point {
	if dir == Forward {
		return s.fw
	}
	return s.bk
}

// order returns (earlier, later) for two spans where b extends a in dir.
func order(a, b *span, dir Direction) (*span, *span) {
	if dir == Forward {
		return a, b
	}
	return b, a
}
