// Package solver finds roots of one-dimensional functions.
//
// Every solver first brackets the root by geometric expansion around a
// guess, then refines inside the bracket. Failures are reported as
// *RootNotFoundError carrying the last estimate.
package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/meenmo/bondlib/logger"
)

const growthFactor = 1.6

var (
	// ErrNotBracketed is returned when no sign change is found.
	ErrNotBracketed = errors.New("root not bracketed")
	// ErrMaxEvaluations is returned when the evaluation budget runs out.
	ErrMaxEvaluations = errors.New("maximum evaluations exceeded")
	// ErrInvalidOptions is returned for non-positive accuracies or budgets,
	// and for brackets that are empty or violate the enforced bounds.
	ErrInvalidOptions = errors.New("invalid solver options")
)

// Func is a real function that may fail, e.g. on a non-finite discount factor.
type Func func(x float64) (float64, error)

// Problem is the function to solve and, optionally, its derivative. Without
// a derivative, Newton steps use a central difference.
type Problem struct {
	F          Func
	Derivative Func
}

// Options bound the search.
type Options struct {
	// Accuracy is the residual tolerance: |f(x)| < Accuracy is a root.
	Accuracy float64
	// XAccuracy is the step tolerance in x.
	XAccuracy float64
	// MaxEvaluations caps calls to F, bracketing included.
	MaxEvaluations int

	LowerBound   float64
	UpperBound   float64
	EnforceLower bool
	EnforceUpper bool
}

// DefaultOptions returns Accuracy 1e-8, XAccuracy 1e-12 and 100 evaluations, unbounded.
func DefaultOptions() Options {
	return Options{Accuracy: 1e-8, XAccuracy: 1e-12, MaxEvaluations: 100}
}

func (o Options) validate() error {
	if !(o.Accuracy > 0) || !(o.XAccuracy > 0) {
		return fmt.Errorf("accuracy %g / x-accuracy %g must be positive: %w", o.Accuracy, o.XAccuracy, ErrInvalidOptions)
	}
	if o.MaxEvaluations < 3 {
		return fmt.Errorf("max evaluations %d below 3: %w", o.MaxEvaluations, ErrInvalidOptions)
	}
	if o.EnforceLower && o.EnforceUpper && o.LowerBound >= o.UpperBound {
		return fmt.Errorf("bounds [%g, %g] are empty: %w", o.LowerBound, o.UpperBound, ErrInvalidOptions)
	}
	return nil
}

func (o Options) enforce(x float64) float64 {
	if o.EnforceLower && x < o.LowerBound {
		return o.LowerBound
	}
	if o.EnforceUpper && x > o.UpperBound {
		return o.UpperBound
	}
	return x
}

// RootNotFoundError reports a failed search.
type RootNotFoundError struct {
	Solver       string
	LastEstimate float64
	LastResidual float64
	Evaluations  int
	Err          error
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("%s: root not found after %d evaluations (last estimate %g, residual %g): %v",
		e.Solver, e.Evaluations, e.LastEstimate, e.LastResidual, e.Err)
}

func (e *RootNotFoundError) Unwrap() error { return e.Err }

// Solver is a one-dimensional root finder.
type Solver interface {
	Name() string
	// Solve brackets the root starting from guess with the initial step, then refines.
	Solve(p Problem, guess, step float64) (float64, error)
	// SolveBracketed refines inside [xMin, xMax], which must bracket the root
	// and contain guess.
	SolveBracketed(p Problem, guess, xMin, xMax float64) (float64, error)
}

// state is the search bracket and evaluation bookkeeping shared by the methods.
type state struct {
	name         string
	opts         Options
	p            Problem
	root         float64
	xMin, xMax   float64
	fxMin, fxMax float64
	evaluations  int
	lastX        float64
	lastFx       float64
}

func (s *state) f(x float64) (float64, error) {
	s.evaluations++
	fx, err := s.p.F(x)
	if err != nil {
		return 0, fmt.Errorf("%s: f(%g): %w", s.name, x, err)
	}
	s.lastX, s.lastFx = x, fx
	if math.IsNaN(fx) {
		return 0, s.fail(fmt.Errorf("f(%g) is NaN: %w", x, ErrNotBracketed))
	}
	return fx, nil
}

// df returns the derivative at x; derivative calls do not count as evaluations.
func (s *state) df(x float64) (float64, error) {
	if s.p.Derivative != nil {
		return s.p.Derivative(x)
	}
	h := 1e-6 * math.Max(1, math.Abs(x))
	up, err := s.p.F(x + h)
	if err != nil {
		return 0, fmt.Errorf("%s: f(%g): %w", s.name, x+h, err)
	}
	down, err := s.p.F(x - h)
	if err != nil {
		return 0, fmt.Errorf("%s: f(%g): %w", s.name, x-h, err)
	}
	return (up - down) / (2 * h), nil
}

func (s *state) zero(fx float64) bool { return math.Abs(fx) < s.opts.Accuracy }

func (s *state) fail(err error) error {
	return &RootNotFoundError{
		Solver:       s.name,
		LastEstimate: s.lastX,
		LastResidual: s.lastFx,
		Evaluations:  s.evaluations,
		Err:          err,
	}
}

func (s *state) converged(x float64) (float64, error) {
	logger.L().Debug("solver.converged", "solver", s.name, "root", x, "residual", s.lastFx, "evaluations", s.evaluations)
	return x, nil
}

// refine runs a method inside an established bracket [xMin, xMax].
type refine func(s *state) (float64, error)

func solve(name string, opts Options, m refine, p Problem, guess, step float64) (float64, error) {
	if err := opts.validate(); err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if p.F == nil {
		return 0, fmt.Errorf("%s: nil function: %w", name, ErrInvalidOptions)
	}
	s := &state{name: name, opts: opts, p: p}

	var err error
	s.root = opts.enforce(guess)
	if s.fxMax, err = s.f(s.root); err != nil {
		return 0, err
	}
	if s.zero(s.fxMax) {
		return s.converged(s.root)
	}
	if s.fxMax > 0 {
		s.xMin = opts.enforce(s.root - step)
		if s.fxMin, err = s.f(s.xMin); err != nil {
			return 0, err
		}
		s.xMax = s.root
	} else {
		s.xMin = s.root
		s.fxMin = s.fxMax
		s.xMax = opts.enforce(s.root + step)
		if s.fxMax, err = s.f(s.xMax); err != nil {
			return 0, err
		}
	}

	flipFlop := -1
	for s.evaluations < opts.MaxEvaluations {
		if s.fxMin*s.fxMax <= 0 {
			if s.zero(s.fxMin) {
				return s.converged(s.xMin)
			}
			if s.zero(s.fxMax) {
				return s.converged(s.xMax)
			}
			if s.xMin > s.xMax {
				s.xMin, s.xMax = s.xMax, s.xMin
				s.fxMin, s.fxMax = s.fxMax, s.fxMin
			}
			logger.L().Debug("solver.bracketed", "solver", name, "x_min", s.xMin, "x_max", s.xMax, "evaluations", s.evaluations)
			s.root = (s.xMin + s.xMax) / 2
			return m(s)
		}
		// expand on the side closer to zero; alternate when both are equal
		lower := math.Abs(s.fxMin) < math.Abs(s.fxMax)
		if math.Abs(s.fxMin) == math.Abs(s.fxMax) {
			lower = flipFlop == -1
			flipFlop = -flipFlop
		}
		if lower {
			s.xMin = opts.enforce(s.xMin + growthFactor*(s.xMin-s.xMax))
			if s.fxMin, err = s.f(s.xMin); err != nil {
				return 0, err
			}
		} else {
			s.xMax = opts.enforce(s.xMax + growthFactor*(s.xMax-s.xMin))
			if s.fxMax, err = s.f(s.xMax); err != nil {
				return 0, err
			}
		}
	}
	logger.L().Debug("solver.bracket_failed", "solver", name, "x_min", s.xMin, "x_max", s.xMax, "fx_min", s.fxMin, "fx_max", s.fxMax)
	return 0, s.fail(fmt.Errorf("f[%g, %g] -> [%g, %g]: %w", s.xMin, s.xMax, s.fxMin, s.fxMax, ErrNotBracketed))
}

func solveBracketed(name string, opts Options, m refine, p Problem, guess, xMin, xMax float64) (float64, error) {
	if err := opts.validate(); err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if p.F == nil {
		return 0, fmt.Errorf("%s: nil function: %w", name, ErrInvalidOptions)
	}
	switch {
	case !(xMin < xMax):
		return 0, fmt.Errorf("%s: range [%g, %g] is empty: %w", name, xMin, xMax, ErrInvalidOptions)
	case opts.EnforceLower && xMin < opts.LowerBound:
		return 0, fmt.Errorf("%s: x-min %g below lower bound %g: %w", name, xMin, opts.LowerBound, ErrInvalidOptions)
	case opts.EnforceUpper && xMax > opts.UpperBound:
		return 0, fmt.Errorf("%s: x-max %g above upper bound %g: %w", name, xMax, opts.UpperBound, ErrInvalidOptions)
	case guess < xMin || guess > xMax:
		return 0, fmt.Errorf("%s: guess %g outside [%g, %g]: %w", name, guess, xMin, xMax, ErrInvalidOptions)
	}
	s := &state{name: name, opts: opts, p: p, xMin: xMin, xMax: xMax}

	var err error
	if s.fxMin, err = s.f(xMin); err != nil {
		return 0, err
	}
	if s.zero(s.fxMin) {
		return s.converged(xMin)
	}
	if s.fxMax, err = s.f(xMax); err != nil {
		return 0, err
	}
	if s.zero(s.fxMax) {
		return s.converged(xMax)
	}
	if s.fxMin*s.fxMax > 0 {
		return 0, s.fail(fmt.Errorf("f[%g, %g] -> [%g, %g]: %w", xMin, xMax, s.fxMin, s.fxMax, ErrNotBracketed))
	}
	s.root = guess
	return m(s)
}
