package metrics

import "github.com/san-kum/walnuts/internal/walnuts"

// Acceptance counts macro-step outcomes. Value is the fraction of macro
// steps accepted.
type Acceptance struct {
	name     string
	accepted int
	rejected map[walnuts.RejectReason]int
}

func NewAcceptance() *Acceptance {
	return &Acceptance{
		name:     "macro_step_acceptance",
		rejected: make(map[walnuts.RejectReason]int),
	}
}

func (a *Acceptance) Name() string { return a.name }

func (a *Acceptance) OnEvent(ev walnuts.Event) {
	switch ev.Kind {
	case walnuts.KindAccept:
		a.accepted++
	case walnuts.KindReject:
		a.rejected[ev.Reason]++
	}
}

func (a *Acceptance) Accepted() int { return a.accepted }

// Rejected returns the rejection count for reason.
func (a *Acceptance) Rejected(reason walnuts.RejectReason) int {
	return a.rejected[reason]
}

func (a *Acceptance) TotalRejected() int {
	n := 0
	for _, c := range a.rejected {
		n += c
	}
	return n
}

func (a *Acceptance) Value() float64 {
	total := a.accepted + a.TotalRejected()
	if total == 0 {
		return 1.0
	}
	return float64(a.accepted) / float64(total)
}

func (a *Acceptance) Reset() {
	a.accepted = 0
	a.rejected = make(map[walnuts.RejectReason]int)
}
