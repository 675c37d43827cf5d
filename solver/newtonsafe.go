package solver

import (
	"fmt"
	"math"
)

// NewtonSafe is Newton-Raphson safeguarded by bisection: a step that leaves
// the bracket or does not halve the residual fast enough is replaced by a
// bisection step.
type NewtonSafe struct {
	Options Options
}

// NewNewtonSafe returns a NewtonSafe solver with opts.
func NewNewtonSafe(opts Options) NewtonSafe { return NewtonSafe{Options: opts} }

func (NewtonSafe) Name() string { return "NewtonSafe" }

func (n NewtonSafe) Solve(p Problem, guess, step float64) (float64, error) {
	return solve(n.Name(), n.Options, newtonSafe, p, guess, step)
}

func (n NewtonSafe) SolveBracketed(p Problem, guess, xMin, xMax float64) (float64, error) {
	return solveBracketed(n.Name(), n.Options, newtonSafe, p, guess, xMin, xMax)
}

func newtonSafe(s *state) (float64, error) {
	// orient the search so that f(xl) < 0
	xl, xh := s.xMin, s.xMax
	if s.fxMin >= 0 {
		xl, xh = s.xMax, s.xMin
	}
	dxOld := s.xMax - s.xMin
	dx := dxOld

	froot, err := s.f(s.root)
	if err != nil {
		return 0, err
	}
	if s.zero(froot) {
		return s.converged(s.root)
	}
	dfroot, err := s.df(s.root)
	if err != nil {
		return 0, err
	}

	for s.evaluations < s.opts.MaxEvaluations {
		outOfRange := ((s.root-xh)*dfroot-froot)*((s.root-xl)*dfroot-froot) > 0
		slow := math.Abs(2*froot) > math.Abs(dxOld*dfroot)
		dxOld = dx
		if outOfRange || slow || dfroot == 0 {
			dx = (xh - xl) / 2
			s.root = xl + dx
		} else {
			dx = froot / dfroot
			s.root -= dx
		}

		if froot, err = s.f(s.root); err != nil {
			return 0, err
		}
		if s.zero(froot) || math.Abs(dx) < s.opts.XAccuracy {
			return s.converged(s.root)
		}
		if dfroot, err = s.df(s.root); err != nil {
			return 0, err
		}
		if froot < 0 {
			xl = s.root
		} else {
			xh = s.root
		}
	}
	return 0, s.fail(fmt.Errorf("%d evaluations: %w", s.opts.MaxEvaluations, ErrMaxEvaluations))
}
