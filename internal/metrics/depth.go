package metrics

import "github.com/san-kum/walnuts/internal/walnuts"

// TreeDepth is the mean number of doublings per transition.
type TreeDepth struct {
	name    string
	sum     int
	max     int
	samples int
}

func NewTreeDepth() *TreeDepth {
	return &TreeDepth{name: "tree_depth"}
}

func (d *TreeDepth) Name() string { return d.name }

func (d *TreeDepth) OnEvent(ev walnuts.Event) {
	if ev.Kind != walnuts.KindProposal {
		return
	}
	d.sum += ev.Stats.Depth
	d.max = max(d.max, ev.Stats.Depth)
	d.samples++
}

func (d *TreeDepth) Max() int { return d.max }

func (d *TreeDepth) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.sum) / float64(d.samples)
}

func (d *TreeDepth) Reset() {
	d.sum = 0
	d.max = 0
	d.samples = 0
}

// MoveRate is the fraction of transitions whose draw left the previous tip.
type MoveRate struct {
	name    string
	moved   int
	samples int
}

func NewMoveRate() *MoveRate {
	return &MoveRate{name: "move_rate"}
}

func (m *MoveRate) Name() string { return m.name }

func (m *MoveRate) OnEvent(ev walnuts.Event) {
	if ev.Kind != walnuts.KindProposal {
		return
	}
	if ev.Stats.Moved {
		m.moved++
	}
	m.samples++
}

func (m *MoveRate) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.moved) / float64(m.samples)
}

func (m *MoveRate) Reset() {
	m.moved = 0
	m.samples = 0
}
