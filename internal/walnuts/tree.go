package walnuts

import (
	"math"
	"math/rand/v2"
)

// trajectory holds what one transition's tree building shares: the
// integrator and the generator for the selection coin flips.
type trajectory struct {
	integ *integrator
	rng   *rand.Rand
	stats *TransitionStats
}

// uturn reports whether the combined extent of a and b, where b extends a in
// dir, has started to fold back on itself.
func uturn(a, b *span, dir Direction) bool {
	bk, fw := order(a, b, dir)
	diff := fw.fw.q.Sub(bk.bk.q)
	return fw.fw.p.Dot(diff) < 0 || bk.bk.p.Dot(diff) < 0
}

func logSumExp(x, y float64) float64 {
	m := math.Max(x, y)
	if math.IsInf(m, -1) {
		return m
	}
	return m + math.Log(math.Exp(x-m)+math.Exp(y-m))
}

// combine joins next onto old in dir. next's selection replaces old's with
// probability exp(next.logp - denom), where denom is the combined weight for
// Barker selection and old's weight for Metropolis selection.
func (tr *trajectory) combine(old, next *span, barker bool, dir Direction) *span {
	total := logSumExp(old.logp, next.logp)
	denom := old.logp
	if barker {
		denom = total
	}

	selected := old.selected
	if math.Log(tr.rng.Float64()) < next.logp-denom {
		selected = next.selected
	}

	bk, fw := order(old, next, dir)
	return combinedSpan(bk, fw, selected, total)
}

// build extends s by 2^depth macro steps in dir. It returns nil when a macro
// step fails or any sub-tree makes a U-turn.
func (tr *trajectory) build(s *span, dir Direction, depth int) *span {
	if depth == 0 {
		next, ok := tr.integ.macroStep(s.end(dir), dir)
		if !ok {
			return nil
		}
		return leafSpan(next)
	}

	left := tr.build(s, dir, depth-1)
	if left == nil {
		return nil
	}
	right := tr.build(left, dir, depth-1)
	if right == nil {
		return nil
	}
	if uturn(left, right, dir) {
		tr.stats.SubtreeUTurns++
		return nil
	}
	return tr.combine(left, right, true, dir)
}
