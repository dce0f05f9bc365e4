package target

import (
	"fmt"
	"sort"
)

// Factory builds a target of the given dimension from named parameters.
// Missing parameters take the target's defaults.
type Factory func(dim int, params map[string]float64) (Target, error)

type Registry struct {
	targets map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{targets: make(map[string]Factory)}

	r.targets["gaussian"] = func(dim int, params map[string]float64) (Target, error) {
		sigma := param(params, "sigma", 1.0)
		if sigma <= 0 {
			return nil, fmt.Errorf("gaussian: sigma must be positive, got %f", sigma)
		}
		return NewGaussian(dim, sigma), nil
	}
	r.targets["correlated"] = func(dim int, params map[string]float64) (Target, error) {
		if dim != 2 {
			return nil, fmt.Errorf("correlated: dimension must be 2, got %d", dim)
		}
		rho := param(params, "rho", 0.9)
		if rho <= -1 || rho >= 1 {
			return nil, fmt.Errorf("correlated: rho must be in (-1, 1), got %f", rho)
		}
		return NewCorrelated(rho), nil
	}
	r.targets["banana"] = func(dim int, params map[string]float64) (Target, error) {
		if dim < 2 {
			return nil, fmt.Errorf("banana: dimension must be at least 2, got %d", dim)
		}
		return NewBanana(dim, param(params, "b", 1.0)), nil
	}
	r.targets["funnel"] = func(dim int, params map[string]float64) (Target, error) {
		if dim < 2 {
			return nil, fmt.Errorf("funnel: dimension must be at least 2, got %d", dim)
		}
		scale := param(params, "scale", 3.0)
		if scale <= 0 {
			return nil, fmt.Errorf("funnel: scale must be positive, got %f", scale)
		}
		return NewFunnel(dim, scale), nil
	}
	r.targets["doublewell"] = func(dim int, params map[string]float64) (Target, error) {
		d := NewDoubleWell(dim)
		d.A = param(params, "a", d.A)
		d.B = param(params, "b", d.B)
		return d, nil
	}
	r.targets["nan"] = func(dim int, params map[string]float64) (Target, error) {
		return &Broken{N: dim}, nil
	}

	return r
}

// Register adds or replaces a named target.
func (r *Registry) Register(name string, f Factory) {
	r.targets[name] = f
}

func (r *Registry) Get(name string, dim int, params map[string]float64) (Target, error) {
	fn, ok := r.targets[name]
	if !ok {
		return nil, fmt.Errorf("unknown target: %s", name)
	}
	if dim < 1 {
		return nil, fmt.Errorf("%s: dimension must be positive, got %d", name, dim)
	}
	return fn(dim, params)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func param(params map[string]float64, name string, def float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return def
}
