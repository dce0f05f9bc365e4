package walnuts

import "github.com/san-kum/walnuts/internal/vec"

// Kind identifies the type of an Event.
type Kind int

const (
	// KindLeapfrog is one leapfrog sub-step of an accepted resolution.
	KindLeapfrog Kind = iota
	// KindAccept closes a successful macro step.
	KindAccept
	// KindReject closes a failed macro step.
	KindReject
	// KindDirection marks the start of a doubling.
	KindDirection
	// KindProposal carries the whole transition: trajectory, momentum, stats.
	KindProposal
	// KindDraw is the position appended to the chain.
	KindDraw
)

func (k Kind) String() string {
	switch k {
	case KindLeapfrog:
		return "leapfrog"
	case KindAccept:
		return "accept"
	case KindReject:
		return "reject"
	case KindDirection:
		return "direction"
	case KindProposal:
		return "proposal"
	case KindDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// RejectReason says why a macro step was rejected.
type RejectReason string

const (
	RejectEnergy        RejectReason = "energy"
	RejectReversibility RejectReason = "reversibility"
	RejectNonFinite     RejectReason = "nonfinite"
)

// Event is one record of the step stream. Which fields are set depends on
// Kind: leapfrog records carry From, To, StepSize and SubStep; accept and
// reject records carry From, To and Reason; all macro-step records carry
// Halvings. Proposal records carry Position, Momentum, Trajectory and Stats,
// draw records carry Position.
type Event struct {
	Kind       Kind
	From, To   vec.Vector
	StepSize   float64
	SubStep    int
	Halvings   int
	Reason     RejectReason
	Direction  Direction
	Position   vec.Vector
	Momentum   vec.Vector
	Trajectory []Event
	Stats      TransitionStats
}

// Observer receives events in the order they occur. Observers must not
// modify the vectors they are handed.
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(ev Event)

func (f ObserverFunc) OnEvent(ev Event) { f(ev) }

// recorder fans events out to observers and keeps the step records of the
// current transition. A nil recorder drops everything.
type recorder struct {
	observers  []Observer
	trajectory []Event
}

func newRecorder(observers []Observer) *recorder {
	if len(observers) == 0 {
		return nil
	}
	return &recorder{observers: observers}
}

func (r *recorder) active() bool { return r != nil }

func (r *recorder) step(ev Event) {
	if r == nil {
		return
	}
	r.trajectory = append(r.trajectory, ev)
	r.publish(ev)
}

func (r *recorder) publish(ev Event) {
	if r == nil {
		return
	}
	for _, o := range r.observers {
		o.OnEvent(ev)
	}
}
