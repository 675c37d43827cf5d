package solver_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/bondlib/solver"
)

func solvers(opts solver.Options) []solver.Solver {
	return []solver.Solver{
		solver.NewNewtonSafe(opts),
		solver.NewBrent(opts),
		solver.NewBisection(opts),
	}
}

func square(x float64) (float64, error) { return x*x - 1, nil }

func TestSolveFindsRoot(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		guess float64
		step  float64
		want  float64
	}{
		{"guess below root", 0.5, 0.1, 1},
		{"guess above root", 1.5, 0.1, 1},
		{"large step", 3, 2, 1},
		{"negative root", -3, 0.5, -1},
	}
	for _, s := range solvers(solver.DefaultOptions()) {
		for _, tc := range cases {
			got, err := s.Solve(solver.Problem{F: square}, tc.guess, tc.step)
			if err != nil {
				t.Fatalf("%s %s: %v", s.Name(), tc.name, err)
			}
			if math.Abs(got-tc.want) > 1e-7 {
				t.Fatalf("%s %s: root %.12f, want %v", s.Name(), tc.name, got, tc.want)
			}
		}
	}
}

func TestSolveBracketed(t *testing.T) {
	t.Parallel()

	cube := func(x float64) (float64, error) { return x*x*x - 2, nil }
	want := math.Cbrt(2)
	for _, s := range solvers(solver.DefaultOptions()) {
		got, err := s.SolveBracketed(solver.Problem{F: cube}, 1, 0, 3)
		if err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}
		if math.Abs(got-want) > 1e-8 {
			t.Fatalf("%s: root %.12f, want %.12f", s.Name(), got, want)
		}
	}
}

func TestNewtonSafeAnalyticDerivative(t *testing.T) {
	t.Parallel()

	calls := 0
	p := solver.Problem{
		F: func(x float64) (float64, error) { return math.Exp(x) - 2, nil },
		Derivative: func(x float64) (float64, error) {
			calls++
			return math.Exp(x), nil
		},
	}
	got, err := solver.NewNewtonSafe(solver.DefaultOptions()).Solve(p, 0, 0.1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if math.Abs(got-math.Ln2) > 1e-8 {
		t.Fatalf("root %.12f, want ln 2", got)
	}
	if calls == 0 {
		t.Fatalf("analytic derivative was not used")
	}
}

func TestSolveNotBracketed(t *testing.T) {
	t.Parallel()

	opts := solver.DefaultOptions()
	positive := func(x float64) (float64, error) { return x*x + 1, nil }
	for _, s := range solvers(opts) {
		_, err := s.Solve(solver.Problem{F: positive}, 0.5, 0.1)
		var rnf *solver.RootNotFoundError
		if !errors.As(err, &rnf) {
			t.Fatalf("%s: expected RootNotFoundError, got %v", s.Name(), err)
		}
		if !errors.Is(err, solver.ErrNotBracketed) {
			t.Fatalf("%s: expected ErrNotBracketed, got %v", s.Name(), err)
		}
		if rnf.Evaluations != opts.MaxEvaluations {
			t.Fatalf("%s: evaluations %d, want %d", s.Name(), rnf.Evaluations, opts.MaxEvaluations)
		}
		if rnf.LastResidual < 1 {
			t.Fatalf("%s: last residual %g should be at least 1", s.Name(), rnf.LastResidual)
		}
	}

	_, err := solver.NewBrent(opts).SolveBracketed(solver.Problem{F: positive}, 0.5, 0, 1)
	if !errors.Is(err, solver.ErrNotBracketed) {
		t.Fatalf("SolveBracketed: expected ErrNotBracketed, got %v", err)
	}
}

func TestSolveMaxEvaluations(t *testing.T) {
	t.Parallel()

	opts := solver.DefaultOptions()
	opts.MaxEvaluations = 5
	cube := func(x float64) (float64, error) { return x*x*x - 2, nil }
	_, err := solver.NewBisection(opts).SolveBracketed(solver.Problem{F: cube}, 5, 0, 10)
	var rnf *solver.RootNotFoundError
	if !errors.As(err, &rnf) || !errors.Is(err, solver.ErrMaxEvaluations) {
		t.Fatalf("expected RootNotFoundError wrapping ErrMaxEvaluations, got %v", err)
	}
	if rnf.LastEstimate != 1.25 {
		t.Fatalf("last estimate %g, want 1.25", rnf.LastEstimate)
	}
}

func TestSolveEnforcesBounds(t *testing.T) {
	t.Parallel()

	opts := solver.DefaultOptions()
	opts.LowerBound, opts.EnforceLower = 0, true
	var seen []float64
	f := func(x float64) (float64, error) {
		seen = append(seen, x)
		return x - 0.001, nil
	}
	got, err := solver.NewBrent(opts).Solve(solver.Problem{F: f}, 0.5, 1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if math.Abs(got-0.001) > 2e-8 {
		t.Fatalf("root %g, want 0.001", got)
	}
	for _, x := range seen {
		if x < 0 {
			t.Fatalf("evaluated below the enforced lower bound: %g", x)
		}
	}
}

func TestSolvePropagatesFunctionErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	f := func(x float64) (float64, error) {
		if x > 1 {
			return 0, boom
		}
		return x - 2, nil
	}
	for _, s := range solvers(solver.DefaultOptions()) {
		if _, err := s.Solve(solver.Problem{F: f}, 0.5, 0.4); !errors.Is(err, boom) {
			t.Fatalf("%s: expected wrapped function error, got %v", s.Name(), err)
		}
	}
}

func TestInvalidOptions(t *testing.T) {
	t.Parallel()

	s := solver.NewNewtonSafe(solver.DefaultOptions())
	if _, err := s.SolveBracketed(solver.Problem{F: square}, 5, 0, 2); !errors.Is(err, solver.ErrInvalidOptions) {
		t.Fatalf("guess outside bracket: expected ErrInvalidOptions, got %v", err)
	}
	if _, err := s.SolveBracketed(solver.Problem{F: square}, 1, 2, 0); !errors.Is(err, solver.ErrInvalidOptions) {
		t.Fatalf("inverted bracket: expected ErrInvalidOptions, got %v", err)
	}
	if _, err := s.Solve(solver.Problem{}, 1, 0.1); !errors.Is(err, solver.ErrInvalidOptions) {
		t.Fatalf("nil function: expected ErrInvalidOptions, got %v", err)
	}
	bad := solver.NewBrent(solver.Options{Accuracy: 0, XAccuracy: 1e-12, MaxEvaluations: 100})
	if _, err := bad.Solve(solver.Problem{F: square}, 1, 0.1); !errors.Is(err, solver.ErrInvalidOptions) {
		t.Fatalf("zero accuracy: expected ErrInvalidOptions, got %v", err)
	}
}
