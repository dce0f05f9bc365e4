package analysis

import "math"

// ESS estimates the effective sample size of xs with Geyer's initial
// monotone positive sequence: autocorrelations are summed in adjacent pairs
// until a pair turns negative, and each pair is capped by its predecessor.
func ESS(xs []float64) float64 {
	n := len(xs)
	if n < 4 {
		return float64(n)
	}

	rho := Autocorrelation(xs, n-1)

	tau := -1.0
	prev := math.Inf(1)
	for k := 0; k+1 < len(rho); k += 2 {
		pair := rho[k] + rho[k+1]
		if pair <= 0 {
			break
		}
		pair = math.Min(pair, prev)
		prev = pair
		tau += 2 * pair
	}

	if tau <= 0 {
		return float64(n)
	}
	return float64(n) / tau
}
