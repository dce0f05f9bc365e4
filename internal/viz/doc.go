// Package viz provides the terminal live view of a running sampler.
//
//   - [Model]: Bubble Tea model running one transition per tick
//   - [Picker]: target and settings menu that opens the live view
//   - [Canvas]: Braille-based pixel canvas with a [Viewport] onto sample space
//
// The canvas shows the first two coordinates: recent draws as dots, the last
// trajectory's leapfrog sub-steps as lines, accepted macro steps as points,
// rejected ones as crosses and the chain tip as a block.
//
// # Key Bindings
//
//	Space - Pause/Resume sampling
//	+/-   - Scale dt up/down
//	[ ]   - Halve/double the energy error tolerance
//	R     - Restart the chain on the next seed
//	T     - Cycle color themes
//	Q     - Quit
//
// Tolerance and step size changes go through [walnuts.Sampler.SetConfig]
// and take effect at the next transition.
package viz
