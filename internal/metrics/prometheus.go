package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/walnuts/internal/walnuts"
)

const namespace = "walnuts"

// Prometheus exports the sampler's event stream as Prometheus metrics.
//
// Macro steps are counted by result: "accepted" or a rejection reason. With
// refinement after irreversible resolutions enabled, one macro step may add
// several "reversibility" results before it is accepted.
type Prometheus struct {
	transitions *prometheus.CounterVec
	macroSteps  *prometheus.CounterVec
	leapfrog    *prometheus.CounterVec
	depth       *prometheus.HistogramVec
	halvings    *prometheus.HistogramVec
	stops       *prometheus.CounterVec
	target      string
}

// NewPrometheus registers the sampler metrics on reg, labelled with the
// target name. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer, target string) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &Prometheus{
		target: target,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Completed sampler transitions",
		}, []string{"target"}),
		macroSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "macro_steps_total",
			Help:      "Macro steps by result",
		}, []string{"target", "result"}),
		leapfrog: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leapfrog_steps_total",
			Help:      "Gradient evaluations, including reversibility checks",
		}, []string{"target"}),
		depth: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tree_depth",
			Help:      "Trajectory doublings per transition",
			Buckets:   prometheus.LinearBuckets(0, 1, walnuts.DefaultMaxDepth+1),
		}, []string{"target"}),
		halvings: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "macro_step_halvings",
			Help:      "Step size halvings of accepted macro steps",
			Buckets:   prometheus.LinearBuckets(0, 1, walnuts.DefaultMaxHalvings),
		}, []string{"target"}),
		stops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stops_total",
			Help:      "Transitions by stop reason",
		}, []string{"target", "reason"}),
	}

	for _, c := range []prometheus.Collector{p.transitions, p.macroSteps, p.leapfrog, p.depth, p.halvings, p.stops} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register sampler metrics: %w", err)
		}
	}
	return p, nil
}

func (p *Prometheus) OnEvent(ev walnuts.Event) {
	switch ev.Kind {
	case walnuts.KindAccept:
		p.macroSteps.WithLabelValues(p.target, "accepted").Inc()
		p.halvings.WithLabelValues(p.target).Observe(float64(ev.Halvings))
	case walnuts.KindReject:
		p.macroSteps.WithLabelValues(p.target, string(ev.Reason)).Inc()
	case walnuts.KindProposal:
		p.transitions.WithLabelValues(p.target).Inc()
		p.leapfrog.WithLabelValues(p.target).Add(float64(ev.Stats.LeapfrogSteps))
		p.depth.WithLabelValues(p.target).Observe(float64(ev.Stats.Depth))
		p.stops.WithLabelValues(p.target, string(ev.Stats.Stop)).Inc()
	}
}
