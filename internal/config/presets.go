package config

import "sort"

var Presets = map[string]map[string]*Config{
	"gaussian": {
		"default": {
			Target: "gaussian", Dim: 2, Dt: 0.4, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Transitions: 1000,
			TargetParams: map[string]float64{"sigma": 1},
		},
		"wide": {
			Target: "gaussian", Dim: 10, Dt: 0.8, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Transitions: 2000,
			TargetParams: map[string]float64{"sigma": 3},
		},
		"tight": {
			Target: "gaussian", Dim: 2, Dt: 0.4, MaxError: 0.01, MaxHalvings: 12, MaxDepth: 12, Transitions: 1000,
			TargetParams: map[string]float64{"sigma": 1},
		},
	},
	"correlated": {
		"strong": {
			Target: "correlated", Dim: 2, Dt: 0.3, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Transitions: 2000,
			TargetParams: map[string]float64{"rho": 0.95},
		},
		"mild": {
			Target: "correlated", Dim: 2, Dt: 0.4, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Transitions: 1000,
			TargetParams: map[string]float64{"rho": 0.5},
		},
	},
	"banana": {
		"default": {
			Target: "banana", Dim: 2, Dt: 0.3, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Transitions: 2000,
			TargetParams: map[string]float64{"b": 1},
		},
		"twisted": {
			Target: "banana", Dim: 2, Dt: 0.3, MaxError: 0.05, MaxHalvings: 12, MaxDepth: 12, Transitions: 4000,
			TargetParams: map[string]float64{"b": 3},
		},
	},
	"funnel": {
		"default": {
			Target: "funnel", Dim: 5, Dt: 0.4, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Transitions: 2000,
			TargetParams: map[string]float64{"scale": 3},
		},
		"tight": {
			Target: "funnel", Dim: 5, Dt: 0.4, MaxError: 0.02, MaxHalvings: 14, MaxDepth: 12, Transitions: 2000,
			TargetParams: map[string]float64{"scale": 3},
		},
	},
	"doublewell": {
		"default": {
			Target: "doublewell", Dim: 1, Dt: 0.4, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Transitions: 2000,
			TargetParams: map[string]float64{"a": 1, "b": 4},
		},
		"coarse": {
			Target: "doublewell", Dim: 2, Dt: 1.0, MaxError: 0.2, MaxHalvings: 10, MaxDepth: 10, Transitions: 2000,
			TargetParams: map[string]float64{"a": 1, "b": 4},
		},
	},
	"nan": {
		"default": {
			Target: "nan", Dim: 2, Dt: 0.4, MaxError: 0.1, MaxHalvings: 10, MaxDepth: 12, Transitions: 10,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(target, preset string) *Config {
	targetPresets, ok := Presets[target]
	if !ok {
		return nil
	}
	cfg, ok := targetPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(target string) []string {
	targetPresets, ok := Presets[target]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(targetPresets))
	for name := range targetPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
