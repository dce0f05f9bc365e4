// Package target provides the log-density oracles the sampler draws from.
//
// Each target implements [Target]: a log-density and its gradient over a
// fixed dimension. Both must be pure and deterministic. The sampler does not
// guard against non-finite results; it treats them as an energy failure of
// the macro step that produced them.
//
//   - [Gaussian]: isotropic normal with scale sigma
//   - [Correlated]: 2-D normal with correlation rho
//   - [Banana]: twisted Gaussian
//   - [Funnel]: Neal's funnel, where the local scale varies by orders of magnitude
//   - [DoubleWell]: bimodal quartic well
//   - [Func]: adapter for a caller-supplied pair of functions
//
// Targets are looked up by name through a [Registry]:
//
//	reg := target.NewRegistry()
//	tgt, err := reg.Get("funnel", 5, map[string]float64{"scale": 3})
package target
