package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/walnuts/internal/analysis"
	"github.com/san-kum/walnuts/internal/config"
	"github.com/san-kum/walnuts/internal/logging"
	"github.com/san-kum/walnuts/internal/metrics"
	"github.com/san-kum/walnuts/internal/storage"
	"github.com/san-kum/walnuts/internal/target"
	"github.com/san-kum/walnuts/internal/walnuts"
)

// Scenario is a scripted sequence of sampling runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Zero fields keep the value of the preset, or of
// the default configuration when no preset is named.
type ScenarioStep struct {
	Name         string             `yaml:"name"`
	Target       string             `yaml:"target"`
	Preset       string             `yaml:"preset"`
	Dim          int                `yaml:"dim"`
	Dt           float64            `yaml:"dt"`
	MaxError     float64            `yaml:"max_error"`
	MaxHalvings  int                `yaml:"max_halvings"`
	MaxDepth     int                `yaml:"max_depth"`
	Transitions  int                `yaml:"transitions"`
	Seed         int64              `yaml:"seed"`
	TargetParams map[string]float64 `yaml:"target_params"`
	// Replicates repeats the step with seeds Seed, Seed+1, ...
	Replicates int  `yaml:"replicates"`
	Save       bool `yaml:"save"`
}

// StepResult is the outcome of one run of a step.
type StepResult struct {
	Step      string
	Replicate int
	Config    *config.Config
	Stats     walnuts.Stats
	Summaries []analysis.Summary
	Elapsed   time.Duration
	RunID     string
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Config resolves the step's run configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Target != "" {
		cfg.Target = s.Target
	}
	if s.Preset != "" {
		p := config.GetPreset(cfg.Target, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s/%s", cfg.Target, s.Preset)
		}
		cfg = p
	}

	if s.Dim != 0 {
		cfg.Dim = s.Dim
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.MaxError != 0 {
		cfg.MaxError = s.MaxError
	}
	if s.MaxHalvings != 0 {
		cfg.MaxHalvings = s.MaxHalvings
	}
	if s.MaxDepth != 0 {
		cfg.MaxDepth = s.MaxDepth
	}
	if s.Transitions != 0 {
		cfg.Transitions = s.Transitions
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.TargetParams {
		if cfg.TargetParams == nil {
			cfg.TargetParams = make(map[string]float64)
		}
		cfg.TargetParams[k] = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes every step in order. Steps marked Save are written
// to store when it is non-nil. On error the results so far are returned.
func RunScenario(ctx context.Context, scenario *Scenario, reg *target.Registry, store *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}

		for r := 0; r < max(step.Replicates, 1); r++ {
			runCfg := cfg.Clone()
			runCfg.Seed += int64(r)

			logger.Info("running step", "scenario", scenario.Name, "step", name, "replicate", r, "target", runCfg.Target)

			res, err := runStep(ctx, reg, runCfg)
			if err != nil {
				return results, fmt.Errorf("%s: %w", name, err)
			}
			res.Step = name
			res.Replicate = r

			if step.Save && store != nil {
				res.RunID, err = store.Save(&storage.RunMetadata{
					Target:         runCfg.Target,
					ElapsedSeconds: res.Elapsed.Seconds(),
					Config:         runCfg,
					Stats:          res.Stats,
					Summaries:      res.Summaries,
					Metrics:        res.metrics,
				})
				if err != nil {
					return results, fmt.Errorf("%s: save: %w", name, err)
				}
			}
			results = append(results, res.StepResult)
		}
	}

	return results, nil
}

type stepRun struct {
	StepResult
	metrics map[string]float64
}

func runStep(ctx context.Context, reg *target.Registry, cfg *config.Config) (stepRun, error) {
	tgt, err := reg.Get(cfg.Target, cfg.Dim, cfg.TargetParams)
	if err != nil {
		return stepRun{}, err
	}

	set := metrics.Set{metrics.NewAcceptance(), metrics.NewTreeDepth(), metrics.NewMoveRate()}
	opts := []walnuts.Option{walnuts.WithObserver(set)}
	if q0 := cfg.InitialPosition(); q0 != nil {
		opts = append(opts, walnuts.WithInitial(q0))
	}
	s, err := walnuts.New(tgt, cfg.SamplerConfig(), opts...)
	if err != nil {
		return stepRun{}, err
	}

	start := time.Now()
	if err := s.Run(ctx, cfg.Transitions); err != nil {
		return stepRun{}, err
	}
	elapsed := time.Since(start)

	summaries, err := analysis.SummarizeAll(s.Chain())
	if err != nil {
		return stepRun{}, err
	}

	return stepRun{
		StepResult: StepResult{
			Config:    cfg,
			Stats:     s.Stats(),
			Summaries: summaries,
			Elapsed:   elapsed,
		},
		metrics: set.Values(),
	}, nil
}

// ReplicateSpread returns, per coordinate, the standard deviation of the
// replicate means of the named step. Fewer than two replicates give nil.
func ReplicateSpread(results []StepResult, step string) []float64 {
	var means [][]float64
	for _, r := range results {
		if r.Step != step {
			continue
		}
		m := make([]float64, len(r.Summaries))
		for i, s := range r.Summaries {
			m[i] = s.Mean
		}
		means = append(means, m)
	}
	if len(means) < 2 {
		return nil
	}

	spread := make([]float64, len(means[0]))
	col := make([]float64, len(means))
	for c := range spread {
		for i, m := range means {
			col[i] = m[c]
		}
		spread[c] = stat.StdDev(col, nil)
	}
	return spread
}
