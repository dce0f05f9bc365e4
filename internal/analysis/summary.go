package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/walnuts/internal/vec"
)

var (
	ErrEmptyChain = errors.New("analysis: empty chain")
	ErrCoordinate = errors.New("analysis: coordinate out of range")
)

// Summary describes the marginal distribution of one coordinate.
type Summary struct {
	Coord    int     `json:"coord"`
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Std      float64 `json:"std"`
	Q05      float64 `json:"q05"`
	Q50      float64 `json:"q50"`
	Q95      float64 `json:"q95"`
	ESS      float64 `json:"ess"`
}

// Trace extracts coordinate coord of every position in chain.
func Trace(chain []vec.Vector, coord int) ([]float64, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	xs := make([]float64, len(chain))
	for i, q := range chain {
		if coord < 0 || coord >= len(q) {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrCoordinate, coord, len(q))
		}
		xs[i] = q[coord]
	}
	return xs, nil
}

// Summarize computes the marginal summary of coordinate coord.
func Summarize(chain []vec.Vector, coord int) (Summary, error) {
	xs, err := Trace(chain, coord)
	if err != nil {
		return Summary{}, err
	}

	mean, variance := stat.MeanVariance(xs, nil)
	if len(xs) < 2 {
		variance = 0
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	return Summary{
		Coord:    coord,
		N:        len(xs),
		Mean:     mean,
		Variance: variance,
		Std:      math.Sqrt(variance),
		Q05:      stat.Quantile(0.05, stat.Empirical, sorted, nil),
		Q50:      stat.Quantile(0.50, stat.Empirical, sorted, nil),
		Q95:      stat.Quantile(0.95, stat.Empirical, sorted, nil),
		ESS:      ESS(xs),
	}, nil
}

// SummarizeAll summarizes every coordinate of chain.
func SummarizeAll(chain []vec.Vector) ([]Summary, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	out := make([]Summary, len(chain[0]))
	for i := range out {
		s, err := Summarize(chain, i)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
