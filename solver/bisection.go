package solver

import (
	"fmt"
	"math"
)

// Bisection halves the bracket until the step or the residual is within tolerance.
type Bisection struct {
	Options Options
}

func NewBisection(opts Options) Bisection { return Bisection{Options: opts} }

func (Bisection) Name() string { return "Bisection" }

func (b Bisection) Solve(p Problem, guess, step float64) (float64, error) {
	return solve(b.Name(), b.Options, bisection, p, guess, step)
}

func (b Bisection) SolveBracketed(p Problem, guess, xMin, xMax float64) (float64, error) {
	return solveBracketed(b.Name(), b.Options, bisection, p, guess, xMin, xMax)
}

func bisection(s *state) (float64, error) {
	// walk from the endpoint where f < 0
	root, dx := s.xMin, s.xMax-s.xMin
	if s.fxMin >= 0 {
		root, dx = s.xMax, s.xMin-s.xMax
	}
	for s.evaluations < s.opts.MaxEvaluations {
		dx /= 2
		mid := root + dx
		fMid, err := s.f(mid)
		if err != nil {
			return 0, err
		}
		if s.zero(fMid) {
			return s.converged(mid)
		}
		if fMid < 0 {
			root = mid
		}
		if math.Abs(dx) < s.opts.XAccuracy {
			return s.converged(root)
		}
	}
	return 0, s.fail(fmt.Errorf("%d evaluations: %w", s.opts.MaxEvaluations, ErrMaxEvaluations))
}
