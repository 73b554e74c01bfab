package config

import "sort"

// Presets are named ready-to-run configurations per model. Values omitted
// here fall back to the model defaults through Normalize.
var Presets = map[string]map[string]*Config{
	"logistic": {
		"slow": {
			Model: "logistic", Dt: 0.05, Duration: 60.0,
			Params: map[string]float64{"r": 0.2, "K": 100},
		},
		"explosive": {
			Model: "logistic", Dt: 0.02, Duration: 15.0,
			Params: map[string]float64{"r": 1.5, "K": 100},
		},
		"overshoot": {
			Model: "logistic", Dt: 0.05, Duration: 30.0,
			Initial: map[string]float64{"x0": 150},
		},
	},
	"lotka_volterra": {
		"cycles": {
			Model: "lotka_volterra", Dt: 0.01, Duration: 40.0,
		},
		"boom_bust": {
			Model: "lotka_volterra", Dt: 0.01, Duration: 40.0,
			Params:  map[string]float64{"a": 2.0, "b": 0.8, "c": 0.4, "d": 0.5},
			Initial: map[string]float64{"x0": 30, "y0": 3},
		},
	},
	"competition": {
		"coexist": {
			Model: "competition", Dt: 0.05, Duration: 60.0,
		},
		"exclusion": {
			Model: "competition", Dt: 0.05, Duration: 80.0,
			Params: map[string]float64{"alpha": 1.5, "beta": 1.2},
		},
	},
	"sir": {
		"outbreak": {
			Model: "sir", Dt: 0.1, Duration: 120.0,
		},
		"contained": {
			Model: "sir", Dt: 0.1, Duration: 120.0,
			Params: map[string]float64{"beta": 0.08, "gamma": 0.1},
		},
	},
	"metapopulation": {
		"rescue": {
			Model: "metapopulation", Dt: 0.05, Duration: 60.0,
			Params:  map[string]float64{"r2": 0.1, "m": 0.3},
			Initial: map[string]float64{"x0": 80, "y0": 2},
		},
		"isolated": {
			Model: "metapopulation", Dt: 0.05, Duration: 60.0,
			Params: map[string]float64{"m": 0.01},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
