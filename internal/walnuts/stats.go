package walnuts

type StopReason string

const (
	StopRejected StopReason = "subtree-rejected"
	StopUTurn    StopReason = "uturn"
	StopMaxDepth StopReason = "max-depth"
)

// TransitionStats describes one transition.
type TransitionStats struct {
	// Depth is the number of doublings merged into the trajectory.
	Depth              int
	Stop               StopReason
	MacroSteps         int
	RejectedMacroSteps int
	// LeapfrogSteps counts every gradient evaluation, including the ones
	// spent on reversibility checks.
	LeapfrogSteps int
	SubtreeUTurns int
	// Moved is false when the draw equals the previous tip.
	Moved bool
}

// Stats accumulates TransitionStats over a run.
type Stats struct {
	Transitions        int
	Moved              int
	MacroSteps         int
	RejectedMacroSteps int
	LeapfrogSteps      int
	SubtreeUTurns      int
	DepthSum           int
	Stops              map[StopReason]int
}

func (s *Stats) add(t TransitionStats) {
	if s.Stops == nil {
		s.Stops = make(map[StopReason]int)
	}
	s.Transitions++
	if t.Moved {
		s.Moved++
	}
	s.MacroSteps += t.MacroSteps
	s.RejectedMacroSteps += t.RejectedMacroSteps
	s.LeapfrogSteps += t.LeapfrogSteps
	s.SubtreeUTurns += t.SubtreeUTurns
	s.DepthSum += t.Depth
	s.Stops[t.Stop]++
}

// MoveRate is the fraction of transitions whose draw differs from the tip.
func (s Stats) MoveRate() float64 {
	if s.Transitions == 0 {
		return 0
	}
	return float64(s.Moved) / float64(s.Transitions)
}

func (s Stats) MeanDepth() float64 {
	if s.Transitions == 0 {
		return 0
	}
	return float64(s.DepthSum) / float64(s.Transitions)
}

// MacroStepRejectRate is the fraction of macro steps that failed.
func (s Stats) MacroStepRejectRate() float64 {
	if s.MacroSteps == 0 {
		return 0
	}
	return float64(s.RejectedMacroSteps) / float64(s.MacroSteps)
}
