package newton

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odekit/internal/ode"
)

func TestFixedPointContraction(t *testing.T) {
	// x = cos(x) has its fixed point near 0.739085.
	psi := func(x ode.State) ode.State { return ode.State{math.Cos(x[0])} }

	fp, err := NewFixedPoint(Config{Tolerance: 1e-10, MaxIterations: 200})
	if err != nil {
		t.Fatal(err)
	}
	x, err := fp.Solve(psi, ode.State{0})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if math.Abs(x[0]-0.7390851332151607) > 1e-8 {
		t.Errorf("fixed point = %v", x[0])
	}
}

func TestFixedPointNonConvergence(t *testing.T) {
	// x ↦ 2x expands; iterates never settle.
	psi := func(x ode.State) ode.State { return ode.State{2 * x[0]} }

	fp, _ := NewFixedPoint(Config{Tolerance: 1e-10, MaxIterations: 20})
	_, err := fp.Solve(psi, ode.State{1})
	if !errors.Is(err, ode.ErrNonConvergence) {
		t.Fatalf("expected non-convergence, got %v", err)
	}

	var nc *NonConvergenceError
	if !errors.As(err, &nc) || nc.Iterations != 20 {
		t.Errorf("diagnostics missing: %v", err)
	}
}

func TestFixedPointInvalidIterate(t *testing.T) {
	psi := func(x ode.State) ode.State { return ode.State{math.Inf(1)} }

	fp, _ := NewFixedPoint(DefaultConfig())
	if _, err := fp.Solve(psi, ode.State{1}); !errors.Is(err, ode.ErrNumericFailure) {
		t.Errorf("expected numeric failure, got %v", err)
	}
}
