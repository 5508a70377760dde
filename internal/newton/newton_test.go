package newton

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/ode"
)

func TestNewtonConfigValidation(t *testing.T) {
	if _, err := New(Config{Tolerance: 0, MaxIterations: 10}); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("zero tolerance: got %v", err)
	}
	if _, err := New(Config{Tolerance: 1e-10, MaxIterations: 0}); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("zero iterations: got %v", err)
	}
	if _, err := New(DefaultConfig()); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func TestNewtonScalarRoot(t *testing.T) {
	// x² − 2 = 0
	g := func(x ode.State) ode.State { return ode.State{x[0]*x[0] - 2} }
	jac := func(x ode.State) *mat.Dense {
		return mat.NewDense(1, 1, []float64{2 * x[0]})
	}

	n, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	root, err := n.Solve(g, jac, ode.State{1})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if math.Abs(root[0]-math.Sqrt2) > 1e-9 {
		t.Errorf("root = %v, want sqrt(2)", root[0])
	}
}

func TestNewtonFiniteDifferenceJacobian(t *testing.T) {
	g := func(x ode.State) ode.State { return ode.State{x[0]*x[0] - 2} }

	n, _ := New(DefaultConfig())
	root, err := n.Solve(g, nil, ode.State{1})
	if err != nil {
		t.Fatalf("solve with approximate jacobian: %v", err)
	}
	if math.Abs(root[0]-math.Sqrt2) > 1e-8 {
		t.Errorf("root = %v, want sqrt(2)", root[0])
	}
}

func TestNewtonSystem(t *testing.T) {
	// x² + y² = 1, y = x  =>  x = y = 1/sqrt(2)
	g := func(x ode.State) ode.State {
		return ode.State{
			x[0]*x[0] + x[1]*x[1] - 1,
			x[1] - x[0],
		}
	}

	n, _ := New(DefaultConfig())
	root, err := n.Solve(g, nil, ode.State{1, 0.5})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	want := 1 / math.Sqrt2
	if math.Abs(root[0]-want) > 1e-8 || math.Abs(root[1]-want) > 1e-8 {
		t.Errorf("root = %v, want (%v, %v)", root, want, want)
	}
}

func TestNewtonNonConvergence(t *testing.T) {
	// A single iteration cannot solve a genuinely nonlinear equation.
	g := func(x ode.State) ode.State { return ode.State{math.Cos(x[0]) - x[0]*x[0]*x[0]} }

	n, _ := New(Config{Tolerance: 1e-14, MaxIterations: 1})
	_, err := n.Solve(g, nil, ode.State{10})
	if !errors.Is(err, ode.ErrNonConvergence) {
		t.Fatalf("expected non-convergence, got %v", err)
	}

	var nc *NonConvergenceError
	if !errors.As(err, &nc) {
		t.Fatalf("error does not carry diagnostics: %v", err)
	}
	if nc.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", nc.Iterations)
	}
	if nc.Last == nil || nc.Residual <= 0 {
		t.Errorf("missing last iterate or residual: %+v", nc)
	}
}

func TestNewtonInvalidResidual(t *testing.T) {
	g := func(x ode.State) ode.State { return ode.State{math.NaN()} }

	n, _ := New(DefaultConfig())
	if _, err := n.Solve(g, nil, ode.State{1}); !errors.Is(err, ode.ErrNumericFailure) {
		t.Errorf("expected numeric failure, got %v", err)
	}
}

func TestApproxJacobian(t *testing.T) {
	g := func(x ode.State) ode.State {
		return ode.State{x[0] * x[1], x[0] + 3*x[1]}
	}
	jac := Approx(g, ode.State{2, 5})

	want := [][2]float64{{5, 2}, {1, 3}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got := jac.At(i, j); math.Abs(got-want[i][j]) > 1e-6 {
				t.Errorf("jac[%d][%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}

func TestSystemJacobianPrefersExact(t *testing.T) {
	sys, err := ode.NewFuncSystem(1,
		func(t float64, u ode.State) ode.State { return ode.State{-u[0]} },
		ode.WithJacobian(func(t float64, u ode.State) *mat.Dense {
			return mat.NewDense(1, 1, []float64{-1})
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	jac := SystemJacobian(sys, 0, ode.State{1})
	if got := jac.At(0, 0); got != -1 {
		t.Errorf("jacobian = %v, want -1 exactly", got)
	}
}

func TestSystemJacobianFallsBack(t *testing.T) {
	sys, _ := ode.NewFuncSystem(1, func(t float64, u ode.State) ode.State {
		return ode.State{u[0] * u[0]}
	})
	jac := SystemJacobian(sys, 0, ode.State{3})
	if got := jac.At(0, 0); math.Abs(got-6) > 1e-6 {
		t.Errorf("fd jacobian = %v, want 6", got)
	}
}
