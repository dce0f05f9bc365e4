// Package sweep evaluates sampler settings over a parameter grid.
//
// Every grid point is an independent run from the same seed, so the points
// differ only in the swept settings. Runs execute concurrently.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/walnuts/internal/analysis"
	"github.com/san-kum/walnuts/internal/config"
	"github.com/san-kum/walnuts/internal/logging"
	"github.com/san-kum/walnuts/internal/target"
	"github.com/san-kum/walnuts/internal/walnuts"
)

// Params the grid may vary.
const (
	ParamDt          = "dt"
	ParamMaxError    = "max_error"
	ParamMaxDepth    = "max_depth"
	ParamMaxHalvings = "max_halvings"
)

// Result is the outcome of one run.
type Result struct {
	Stats walnuts.Stats
	// MinESS is the smallest effective sample size over all coordinates.
	MinESS float64
	// ESSPerGrad is MinESS per gradient evaluation.
	ESSPerGrad float64
}

type Point struct {
	Params map[string]float64
	Result Result
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, workers: runtime.GOMAXPROCS(0)}
}

// SetWorkers bounds the number of concurrent runs. n < 1 means one.
func (g *GridSearch) SetWorkers(n int) {
	g.workers = max(n, 1)
}

// Grid enumerates every combination; the last parameter varies fastest.
func (g *GridSearch) Grid() []map[string]float64 {
	var out []map[string]float64
	g.gridRecursive(0, map[string]float64{}, &out)
	return out
}

func (g *GridSearch) gridRecursive(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[g.paramNames[depth]] = val
		g.gridRecursive(depth+1, next, out)
	}
}

// Search runs every grid point and returns the points in grid order with
// the index of the one with the highest ESSPerGrad, or -1 when none
// succeeded. A failing point is recorded in its Err and does not stop the
// search; a cancelled context does.
func (g *GridSearch) Search(
	ctx context.Context,
	run func(ctx context.Context, params map[string]float64) (Result, error),
) ([]Point, int, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, -1, fmt.Errorf("sweep: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	grid := g.Grid()
	points := make([]Point, len(grid))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, params := range grid {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := run(egCtx, params)
			points[i] = Point{Params: params, Result: res, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, -1, err
	}
	if err := ctx.Err(); err != nil {
		return nil, -1, err
	}

	best := -1
	for i, p := range points {
		if p.Err != nil {
			continue
		}
		if best < 0 || p.Result.ESSPerGrad > points[best].Result.ESSPerGrad {
			best = i
		}
	}
	return points, best, nil
}

// Apply returns a copy of base with params set.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range params {
		switch name {
		case ParamDt:
			cfg.Dt = v
		case ParamMaxError:
			cfg.MaxError = v
		case ParamMaxDepth:
			cfg.MaxDepth = int(v)
		case ParamMaxHalvings:
			cfg.MaxHalvings = int(v)
		default:
			return nil, fmt.Errorf("sweep: unknown parameter %q", name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run samples cfg.Transitions transitions and measures the chain.
func Run(ctx context.Context, reg *target.Registry, cfg *config.Config) (Result, error) {
	tgt, err := reg.Get(cfg.Target, cfg.Dim, cfg.TargetParams)
	if err != nil {
		return Result{}, err
	}

	opts := []walnuts.Option{walnuts.WithLogger(logging.Discard())}
	if q0 := cfg.InitialPosition(); q0 != nil {
		opts = append(opts, walnuts.WithInitial(q0))
	}
	s, err := walnuts.New(tgt, cfg.SamplerConfig(), opts...)
	if err != nil {
		return Result{}, err
	}
	if err := s.Run(ctx, cfg.Transitions); err != nil {
		return Result{}, err
	}

	summaries, err := analysis.SummarizeAll(s.Chain())
	if err != nil {
		return Result{}, err
	}
	res := Result{Stats: s.Stats(), MinESS: math.Inf(1)}
	for _, sm := range summaries {
		res.MinESS = min(res.MinESS, sm.ESS)
	}
	if res.Stats.LeapfrogSteps > 0 {
		res.ESSPerGrad = res.MinESS / float64(res.Stats.LeapfrogSteps)
	}
	return res, nil
}

// Ranked returns the successful points ordered by descending ESSPerGrad.
func Ranked(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Err == nil {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.ESSPerGrad > out[j].Result.ESSPerGrad
	})
	return out
}
