package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/walnuts/internal/vec"
	"github.com/san-kum/walnuts/internal/walnuts"
)

const (
	DefaultTarget      = "gaussian"
	DefaultDim         = 2
	DefaultTransitions = 1000
)

type Config struct {
	Target             string             `yaml:"target" json:"target"`
	Dim                int                `yaml:"dim" json:"dim"`
	Dt                 float64            `yaml:"dt" json:"dt"`
	MaxError           float64            `yaml:"max_error" json:"max_error"`
	MaxHalvings        int                `yaml:"max_halvings" json:"max_halvings"`
	MaxDepth           int                `yaml:"max_depth" json:"max_depth"`
	RefineIrreversible bool               `yaml:"refine_irreversible" json:"refine_irreversible"`
	Transitions        int                `yaml:"transitions" json:"transitions"`
	Seed               int64              `yaml:"seed" json:"seed"`
	Init               []float64          `yaml:"init,omitempty" json:"init,omitempty"`
	TargetParams       map[string]float64 `yaml:"target_params,omitempty" json:"target_params,omitempty"`
}

// ValidationError names the offending field of an invalid Config.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

func DefaultConfig() *Config {
	return &Config{
		Target:      DefaultTarget,
		Dim:         DefaultDim,
		Dt:          walnuts.DefaultDt,
		MaxError:    walnuts.DefaultMaxError,
		MaxHalvings: walnuts.DefaultMaxHalvings,
		MaxDepth:    walnuts.DefaultMaxDepth,
		Transitions: DefaultTransitions,
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Init != nil {
		out.Init = append([]float64(nil), c.Init...)
	}
	if c.TargetParams != nil {
		out.TargetParams = make(map[string]float64, len(c.TargetParams))
		for k, v := range c.TargetParams {
			out.TargetParams[k] = v
		}
	}
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Target == "":
		return &ValidationError{Field: "target", Reason: "must not be empty"}
	case c.Dim < 1:
		return &ValidationError{Field: "dim", Reason: fmt.Sprintf("must be at least 1, got %d", c.Dim)}
	case !(c.Dt > 0) || math.IsInf(c.Dt, 1):
		return &ValidationError{Field: "dt", Reason: fmt.Sprintf("must be positive and finite, got %g", c.Dt)}
	case !(c.MaxError > 0):
		return &ValidationError{Field: "max_error", Reason: fmt.Sprintf("must be positive, got %g", c.MaxError)}
	case c.MaxHalvings < 1 || c.MaxHalvings > 30:
		return &ValidationError{Field: "max_halvings", Reason: fmt.Sprintf("must be in [1, 30], got %d", c.MaxHalvings)}
	case c.MaxDepth < 1 || c.MaxDepth > 30:
		return &ValidationError{Field: "max_depth", Reason: fmt.Sprintf("must be in [1, 30], got %d", c.MaxDepth)}
	case c.Transitions < 0:
		return &ValidationError{Field: "transitions", Reason: fmt.Sprintf("must not be negative, got %d", c.Transitions)}
	}

	if c.Init != nil {
		if len(c.Init) != c.Dim {
			return &ValidationError{Field: "init", Reason: fmt.Sprintf("has %d entries, dim is %d", len(c.Init), c.Dim)}
		}
		if !vec.Vector(c.Init).IsValid() {
			return &ValidationError{Field: "init", Reason: "contains NaN or Inf"}
		}
	}
	return nil
}

// SamplerConfig returns the sampler tunables of c.
func (c *Config) SamplerConfig() walnuts.Config {
	return walnuts.Config{
		Dt:                 c.Dt,
		MaxError:           c.MaxError,
		MaxHalvings:        c.MaxHalvings,
		MaxDepth:           c.MaxDepth,
		RefineIrreversible: c.RefineIrreversible,
		Seed:               c.Seed,
	}
}

// InitialPosition returns the configured starting point, or nil when the
// chain should start from a standard normal draw.
func (c *Config) InitialPosition() vec.Vector {
	if c.Init == nil {
		return nil
	}
	return vec.Vector(c.Init).Clone()
}
