// Package analysis provides diagnostics for sampled chains.
//
//   - [Summarize]: mean, variance and quantiles of one coordinate
//   - [Autocorrelation]: normalised autocorrelation via FFT
//   - [ESS]: effective sample size from Geyer's initial positive sequence
//   - [Trace]: extract one coordinate of a chain
//   - [ScatterToASCII]: 2-D projection of a chain as text
//
// # Mixing
//
// ESS close to the number of draws means nearly independent draws:
//
//	xs, _ := analysis.Trace(chain, 0)
//	if analysis.ESS(xs) < 0.1*float64(len(xs)) {
//	    // chain is mixing slowly
//	}
package analysis
