package walnuts

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/san-kum/walnuts/internal/target"
	"github.com/san-kum/walnuts/internal/vec"
)

// harmonicSpan is the exact 1-D oscillator trajectory between times t0 and t1.
func harmonicSpan(t0, t1 float64) *span {
	at := func(tm float64) point {
		return point{q: vec.Vector{math.Sin(tm)}, p: vec.Vector{math.Cos(tm)}}
	}
	return &span{bk: at(t0), fw: at(t1), selected: vec.Vector{math.Sin(t0)}}
}

func TestUTurn(t *testing.T) {
	tests := []struct {
		name string
		a, b *span
		dir  Direction
		want bool
	}{
		{"straight forward", harmonicSpan(0, 0.5), harmonicSpan(0.5, 1.0), Forward, false},
		{"past the turning point", harmonicSpan(0, 1.0), harmonicSpan(1.0, 2.0), Forward, true},
		{"straight backward", harmonicSpan(-0.5, 0), harmonicSpan(-1.0, -0.5), Backward, false},
		{"backward past the turning point", harmonicSpan(-1.0, 0), harmonicSpan(-2.0, -1.0), Backward, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uturn(tt.a, tt.b, tt.dir); got != tt.want {
				t.Errorf("uturn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUTurnPersistsUnderExtension(t *testing.T) {
	base := harmonicSpan(0, 0.1)
	turned := false
	for tm := 0.2; tm < 2*math.Pi-0.05; tm += 0.05 {
		got := uturn(base, harmonicSpan(0.1, tm), Forward)
		if turned && !got {
			t.Fatalf("U-turn detected earlier but not at t=%.2f", tm)
		}
		turned = turned || got
	}
	if !turned {
		t.Error("no U-turn detected over a full period")
	}
}

func TestLogSumExp(t *testing.T) {
	tests := []struct {
		x, y, want float64
	}{
		{0, 0, math.Log(2)},
		{math.Log(3), math.Log(5), math.Log(8)},
		{-1000, -1000, -1000 + math.Log(2)},
		{math.Inf(-1), 2.5, 2.5},
		{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}

	for _, tt := range tests {
		got := logSumExp(tt.x, tt.y)
		if math.IsInf(tt.want, -1) {
			if !math.IsInf(got, -1) {
				t.Errorf("logSumExp(%g, %g) = %g, want -Inf", tt.x, tt.y, got)
			}
			continue
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("logSumExp(%g, %g) = %g, want %g", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCombine(t *testing.T) {
	old := &span{bk: point{q: vec.Vector{0}}, fw: point{q: vec.Vector{1}}, selected: vec.Vector{0.5}, logp: 0}
	heavy := &span{bk: point{q: vec.Vector{2}}, fw: point{q: vec.Vector{3}}, selected: vec.Vector{2.5}, logp: 1}
	empty := &span{bk: point{q: vec.Vector{2}}, fw: point{q: vec.Vector{3}}, selected: vec.Vector{2.5}, logp: math.Inf(-1)}

	tr := &trajectory{rng: rand.New(rand.NewPCG(1, 2))}
	for i := 0; i < 100; i++ {
		got := tr.combine(old, heavy, false, Forward)
		if got.selected[0] != 2.5 {
			t.Fatal("Metropolis selection must always take a heavier extension")
		}
		if got.bk.q[0] != 0 || got.fw.q[0] != 3 {
			t.Fatalf("combined endpoints = (%g, %g), want (0, 3)", got.bk.q[0], got.fw.q[0])
		}
		if want := logSumExp(0, 1); math.Abs(got.logp-want) > 1e-12 {
			t.Fatalf("combined weight = %g, want %g", got.logp, want)
		}

		if got := tr.combine(old, empty, true, Forward); got.selected[0] != 0.5 {
			t.Fatal("a zero-weight extension must never be selected")
		}
	}

	got := tr.combine(heavy, old, true, Backward)
	if got.bk.q[0] != 0 || got.fw.q[0] != 3 {
		t.Errorf("backward endpoints = (%g, %g), want (0, 3)", got.bk.q[0], got.fw.q[0])
	}
}

func TestCombineBarkerFrequency(t *testing.T) {
	old := &span{selected: vec.Vector{0}, logp: math.Log(1)}
	next := &span{selected: vec.Vector{1}, logp: math.Log(3)}
	tr := &trajectory{rng: rand.New(rand.NewPCG(3, 4))}

	n := 20000
	hits := 0
	for i := 0; i < n; i++ {
		if tr.combine(old, next, true, Forward).selected[0] == 1 {
			hits++
		}
	}
	if frac := float64(hits) / float64(n); math.Abs(frac-0.75) > 0.02 {
		t.Errorf("Barker selection frequency = %.3f, want 0.75", frac)
	}
}

func TestBuild(t *testing.T) {
	tgt := target.NewGaussian(2, 1.0)
	stats := &TransitionStats{}
	tr := &trajectory{
		integ: &integrator{target: tgt, cfg: DefaultConfig(), stats: stats},
		rng:   rand.New(rand.NewPCG(5, 6)),
		stats: stats,
	}
	root := leafSpan(startPoint(tgt, vec.Vector{-1, -1}, vec.Vector{0.3, 0.3}))

	leaf := tr.build(root, Forward, 0)
	if leaf == nil {
		t.Fatal("single macro step failed")
	}
	if !leaf.bk.q.Equal(leaf.fw.q) || !leaf.selected.Equal(leaf.fw.q) {
		t.Error("a leaf span must have identical endpoints and selection")
	}

	stats.MacroSteps = 0
	sub := tr.build(root, Forward, 2)
	if sub == nil {
		t.Fatal("depth-2 sub-tree failed")
	}
	if stats.MacroSteps != 4 {
		t.Errorf("depth-2 sub-tree took %d macro steps, want 4", stats.MacroSteps)
	}
	if sub.bk.q.Equal(root.fw.q) {
		t.Error("sub-tree must start one macro step past the root")
	}
}
