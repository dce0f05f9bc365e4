package walnuts

import (
	"fmt"
	"math"
)

const (
	DefaultDt          = 0.4
	DefaultMaxError    = 0.1
	DefaultMaxHalvings = 10
	DefaultMaxDepth    = 12
)

// Config holds the sampler tunables. It may be replaced between transitions
// with [Sampler.SetConfig].
type Config struct {
	// Dt is the nominal length of one macro step.
	Dt float64
	// MaxError bounds |logp' - logp| across a macro step.
	MaxError float64
	// MaxHalvings is the number of resolutions tried per macro step; the
	// finest uses 2^(MaxHalvings-1) sub-steps.
	MaxHalvings int
	// MaxDepth caps the number of trajectory doublings per transition.
	MaxDepth int
	// RefineIrreversible keeps halving after a resolution meets the energy
	// criterion but fails the reversibility check. When false, such a macro
	// step is rejected.
	RefineIrreversible bool
	// Seed initialises the random generator. Only read by New and Reset.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Dt:          DefaultDt,
		MaxError:    DefaultMaxError,
		MaxHalvings: DefaultMaxHalvings,
		MaxDepth:    DefaultMaxDepth,
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 1) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	}
	if !(c.MaxError > 0) {
		return fmt.Errorf("%w: max error must be positive, got %f", ErrInvalidConfig, c.MaxError)
	}
	if c.MaxHalvings < 1 || c.MaxHalvings > 30 {
		return fmt.Errorf("%w: max halvings must be in [1, 30], got %d", ErrInvalidConfig, c.MaxHalvings)
	}
	if c.MaxDepth < 1 || c.MaxDepth > 30 {
		return fmt.Errorf("%w: max depth must be in [1, 30], got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}
