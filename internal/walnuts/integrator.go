package walnuts

import (
	"math"

	"github.com/san-kum/walnuts/internal/target"
	"github.com/san-kum/walnuts/internal/vec"
)

// integrator performs macro steps for one transition.
type integrator struct {
	target target.Target
	cfg    Config
	rec    *recorder
	stats  *TransitionStats
}

// leapfrog integrates n sub-steps of size step from start without touching
// start. The second result is false once the oracle returns a non-finite
// gradient or log-density; such a state is unusable at every resolution.
// When trace is non-nil it receives one leapfrog record per sub-step.
func (in *integrator) leapfrog(start point, step float64, n int, trace func(Event)) (point, bool) {
	q := start.q.Clone()
	p := start.p.Clone()
	grad := start.grad
	half := 0.5 * step

	for i := 0; i < n; i++ {
		var from vec.Vector
		if trace != nil {
			from = q.Clone()
		}
		p.Increment(grad, half)
		q.Increment(p, step)
		grad = in.target.GradLogDensity(q)
		in.stats.LeapfrogSteps++
		if !grad.IsValid() {
			return point{}, false
		}
		p.Increment(grad, half)
		if trace != nil {
			trace(Event{
				Kind:     KindLeapfrog,
				From:     from,
				To:       q.Clone(),
				StepSize: math.Abs(step),
				SubStep:  i,
			})
		}
	}

	logp := in.target.LogDensity(q) - 0.5*p.Norm2()
	if math.IsNaN(logp) || math.IsInf(logp, 0) {
		return point{}, false
	}
	return point{q: q, p: p, grad: grad, logp: logp}, true
}

func (in *integrator) withinTolerance(logp0, logp1 float64) bool {
	return math.Abs(logp1-logp0) <= in.cfg.MaxError
}

// macroStep advances start by dir*Dt, halving the sub-step size until the
// energy error is within tolerance. The first resolution that meets the
// tolerance is kept only if it passes the reversibility check.
func (in *integrator) macroStep(start point, dir Direction) (point, bool) {
	in.stats.MacroSteps++

	step := float64(dir) * in.cfg.Dt
	numSteps := 1
	for halvings := 0; halvings < in.cfg.MaxHalvings; halvings++ {
		var records []Event
		var trace func(Event)
		if in.rec.active() {
			trace = func(ev Event) {
				ev.Halvings = halvings
				records = append(records, ev)
			}
		}

		next, ok := in.leapfrog(start, step, numSteps, trace)
		if !ok {
			in.reject(start, start, halvings, RejectNonFinite)
			return point{}, false
		}

		if in.withinTolerance(start.logp, next.logp) {
			for _, ev := range records {
				in.rec.step(ev)
			}
			if in.reversible(step, numSteps, next) {
				in.rec.step(Event{Kind: KindAccept, From: start.q.Clone(), To: next.q.Clone(), Halvings: halvings})
				return next, true
			}
			if !in.cfg.RefineIrreversible {
				in.reject(start, next, halvings, RejectReversibility)
				return point{}, false
			}
			in.rec.step(Event{Kind: KindReject, From: start.q.Clone(), To: next.q.Clone(), Halvings: halvings, Reason: RejectReversibility})
		}

		numSteps *= 2
		step *= 0.5
	}

	in.reject(start, start, in.cfg.MaxHalvings, RejectEnergy)
	return point{}, false
}

func (in *integrator) reject(from, to point, halvings int, reason RejectReason) {
	in.stats.RejectedMacroSteps++
	if in.rec.active() {
		in.rec.step(Event{Kind: KindReject, From: from.q.Clone(), To: to.q.Clone(), Halvings: halvings, Reason: reason})
	}
}

// reversible reports whether the reversed trajectory from the candidate
// would choose the same resolution: with momentum negated, no coarser
// resolution may already meet the energy tolerance. A single step has no
// coarser level.
func (in *integrator) reversible(step float64, numSteps int, candidate point) bool {
	if numSteps == 1 {
		return true
	}
	reversed := point{
		q:    candidate.q,
		p:    candidate.p.Scale(-1),
		grad: candidate.grad,
		logp: candidate.logp,
	}
	for numSteps >= 2 {
		numSteps /= 2
		step *= 2
		back, ok := in.leapfrog(reversed, step, numSteps, nil)
		if ok && in.withinTolerance(candidate.logp, back.logp) {
			return false
		}
	}
	return true
}
