// Package walnuts implements an adaptive-step-size No-U-Turn Sampler.
//
// A transition builds a trajectory by repeated doubling in a random
// direction, as in NUTS. Each unit of the trajectory is a macro step: one
// interval of length [Config.Dt] integrated with 1, 2, 4, ... leapfrog
// sub-steps until the change in the Hamiltonian stays within
// [Config.MaxError]. A resolution is only used if the time-reversed
// trajectory would pick the same one, which keeps the chain reversible even
// though the step size depends on the state.
//
//   - [Sampler]: drives transitions and owns the chain
//   - [Config]: step size, error tolerance and depth limits
//   - [Observer]: receives the step records of every transition
//   - [MomentumSource]: draws the momentum at the start of a transition
//
// # Example
//
//	tgt := target.NewGaussian(2, 1.0)
//	s, err := walnuts.New(tgt, walnuts.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := s.Run(ctx, 1000); err != nil {
//	    return err
//	}
//	chain := s.Chain()
//
// # Rejections
//
// Nothing inside a transition is an error. A macro step that fails every
// resolution, a non-finite oracle value, a U-turn and the depth limit all end
// the transition early, and the current selection (possibly the unchanged
// tip) is appended to the chain.
//
// # Thread Safety
//
// Sampler instances are NOT thread-safe. Transitions are strictly
// sequential because each one starts from the previous chain tip.
package walnuts
