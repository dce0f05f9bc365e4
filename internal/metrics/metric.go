package metrics

import "github.com/san-kum/walnuts/internal/walnuts"

// Metric is a scalar summary of a run, fed from the sampler's event stream.
type Metric interface {
	walnuts.Observer
	Name() string
	Value() float64
	Reset()
}

// Set fans events out to several metrics.
type Set []Metric

func (s Set) OnEvent(ev walnuts.Event) {
	for _, m := range s {
		m.OnEvent(ev)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Values returns each metric's current value keyed by name.
func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}
