package solver

import (
	"fmt"
	"math"
)

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

// Brent combines bisection, secant and inverse quadratic interpolation.
type Brent struct {
	Options Options
}

func NewBrent(opts Options) Brent { return Brent{Options: opts} }

func (Brent) Name() string { return "Brent" }

func (b Brent) Solve(p Problem, guess, step float64) (float64, error) {
	return solve(b.Name(), b.Options, brent, p, guess, step)
}

func (b Brent) SolveBracketed(p Problem, guess, xMin, xMax float64) (float64, error) {
	return solveBracketed(b.Name(), b.Options, brent, p, guess, xMin, xMax)
}

func brent(s *state) (float64, error) {
	var d, e float64
	s.root = s.xMax
	froot := s.fxMax

	for s.evaluations < s.opts.MaxEvaluations {
		if (froot > 0 && s.fxMax > 0) || (froot < 0 && s.fxMax < 0) {
			// rename so that xMax is on the other side of the root
			s.xMax, s.fxMax = s.xMin, s.fxMin
			d = s.root - s.xMin
			e = d
		}
		if math.Abs(s.fxMax) < math.Abs(froot) {
			s.xMin, s.root, s.xMax = s.root, s.xMax, s.root
			s.fxMin, froot, s.fxMax = froot, s.fxMax, froot
		}
		tol := 2*epsilon*math.Abs(s.root) + 0.5*s.opts.XAccuracy
		xMid := (s.xMax - s.root) / 2
		if math.Abs(xMid) <= tol || s.zero(froot) {
			return s.converged(s.root)
		}
		if math.Abs(e) >= tol && math.Abs(s.fxMin) > math.Abs(froot) {
			var p, q float64
			sr := froot / s.fxMin
			if s.xMin == s.xMax {
				p = 2 * xMid * sr
				q = 1 - sr
			} else {
				qq := s.fxMin / s.fxMax
				r := froot / s.fxMax
				p = sr * (2*xMid*qq*(qq-r) - (s.root-s.xMin)*(r-1))
				q = (qq - 1) * (r - 1) * (sr - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xMid*q - math.Abs(tol*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xMid
				e = d
			}
		} else {
			d = xMid
			e = d
		}
		s.xMin, s.fxMin = s.root, froot
		if math.Abs(d) > tol {
			s.root += d
		} else {
			s.root += math.Copysign(tol, xMid)
		}
		var err error
		if froot, err = s.f(s.root); err != nil {
			return 0, err
		}
	}
	return 0, s.fail(fmt.Errorf("%d evaluations: %w", s.opts.MaxEvaluations, ErrMaxEvaluations))
}
