package config

import "github.com/meenmo/bondlib/solver"

// Config holds numerical parameters used across pricing.
type Config struct {
	Solver SolverConfig `yaml:"solver"`
}

// SolverConfig parameterizes the yield solver.
type SolverConfig struct {
	// Accuracy is the price residual, relative to the target price, below
	// which a yield is accepted.
	Accuracy float64 `yaml:"accuracy"`

	// XAccuracy is the yield step below which the search stops.
	XAccuracy float64 `yaml:"x_accuracy"`

	// MaxEvaluations caps price evaluations, bracketing included.
	MaxEvaluations int `yaml:"max_evaluations"`

	// Step is the initial bracketing step around the guess.
	Step float64 `yaml:"step"`

	// LowerBound and UpperBound confine the yield search.
	LowerBound float64 `yaml:"lower_bound"`
	UpperBound float64 `yaml:"upper_bound"`
}

// DefaultConfig returns the production defaults. Each call returns a fresh
// value, so callers may modify their copy.
func DefaultConfig() Config {
	return Config{
		Solver: SolverConfig{
			Accuracy:       1e-8,
			XAccuracy:      1e-12,
			MaxEvaluations: 100,
			Step:           0.01,
			LowerBound:     -1,
			UpperBound:     10,
		},
	}
}

// Options converts c into solver options with both bounds enforced.
func (c SolverConfig) Options() solver.Options {
	return solver.Options{
		Accuracy:       c.Accuracy,
		XAccuracy:      c.XAccuracy,
		MaxEvaluations: c.MaxEvaluations,
		LowerBound:     c.LowerBound,
		UpperBound:     c.UpperBound,
		EnforceLower:   true,
		EnforceUpper:   true,
	}
}
