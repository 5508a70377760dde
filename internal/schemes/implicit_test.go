package schemes

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odekit/internal/newton"
	"github.com/san-kum/odekit/internal/ode"
	"github.com/san-kum/odekit/internal/systems"
)

// Backward Euler on u' = -λu has the closed recursion u_{n+1} = u_n/(1+λh).
func TestBackwardEulerDecayRecursion(t *testing.T) {
	sys := systems.NewDecay()
	h := 0.1
	s, err := NewBackwardEuler(h, newton.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	const n = 20
	_, u := stepN(t, s, sys, ode.State{1}, 0, h, n)

	want := math.Pow(1/(1+h), n)
	if math.Abs(u[0]-want) > 1e-8 {
		t.Errorf("u = %v, want %v", u[0], want)
	}
}

// Stiff decay with λh = 100: forward Euler explodes, backward Euler stays
// bounded and monotonically decaying.
func TestBackwardEulerStiffStability(t *testing.T) {
	sys := &systems.Decay{Lambda: 1000}
	h := 0.1
	s, _ := NewBackwardEuler(h, newton.DefaultConfig())

	_, u := stepN(t, s, sys, ode.State{1}, 0, h, 10)
	if math.Abs(u[0]) > 1 {
		t.Errorf("implicit solution grew: %v", u[0])
	}
}

func TestBackwardEulerFixedPoint(t *testing.T) {
	// h·L = 0.01, comfortably a contraction.
	sys := systems.NewDecay()
	h := 0.01
	s, err := NewBackwardEuler(h, newton.DefaultConfig(), WithFixedPointIteration())
	if err != nil {
		t.Fatal(err)
	}

	_, u := stepN(t, s, sys, ode.State{1}, 0, h, 10)
	want := math.Pow(1/(1+h), 10)
	if math.Abs(u[0]-want) > 1e-7 {
		t.Errorf("u = %v, want %v", u[0], want)
	}
}

func TestBackwardEulerPredictor(t *testing.T) {
	sys := systems.NewDecay()
	h := 0.1
	pred, _ := NewEuler(h)
	s, err := NewBackwardEuler(h, newton.DefaultConfig(), WithPredictor(pred))
	if err != nil {
		t.Fatal(err)
	}

	res, err := s.Step(sys, 0, ode.State{1}, h)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Next[0]-1/(1+h)) > 1e-9 {
		t.Errorf("predicted-corrected step = %v", res.Next[0])
	}
}

// A starved iteration budget on a nonlinear problem surfaces as
// non-convergence without being masked.
func TestBackwardEulerNonConvergence(t *testing.T) {
	sys := systems.NewLogistic()
	s, err := NewBackwardEuler(0.01, newton.Config{Tolerance: 1e-14, MaxIterations: 1})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Step(sys, 0, ode.State{0.3}, 0.01)
	if !errors.Is(err, ode.ErrNonConvergence) {
		t.Fatalf("expected non-convergence, got %v", err)
	}
	var nc *newton.NonConvergenceError
	if !errors.As(err, &nc) {
		t.Errorf("diagnostics lost: %v", err)
	}
}

// The mass-matrix form m·v' = −k·x must yield the same dynamics as the
// explicitly divided system.
func TestBackwardEulerMassMatrix(t *testing.T) {
	sys := systems.NewSpringMass()
	sys.M = 2.0
	u0 := ode.State{1, 0}
	h := 0.01

	s, _ := NewBackwardEuler(h, newton.DefaultConfig())
	tEnd, u := stepN(t, s, sys, u0.Clone(), 0, h, 100)

	exact := sys.Exact(tEnd, u0)
	if e := u.Sub(exact).Norm(); e > 0.02 {
		t.Errorf("mass-matrix solution error %v at t=%v", e, tEnd)
	}
}

func TestTrapezoidalSecondOrder(t *testing.T) {
	sys := systems.NewHarmonic()
	u0 := ode.State{1, 0}

	run := func(h float64) float64 {
		s, err := NewTrapezoidal(h, newton.DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		n := int(math.Round(1.0 / h))
		tEnd, u := stepN(t, s, sys, u0.Clone(), 0, h, n)
		return u.Sub(sys.Exact(tEnd, u0)).Norm()
	}

	ratio := run(0.02) / run(0.01)
	if ratio < 2.8 || ratio > 5.6 {
		t.Errorf("error ratio %v, want about 4", ratio)
	}
}

func TestImplicitValidation(t *testing.T) {
	if _, err := NewBackwardEuler(0, newton.DefaultConfig()); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("zero step: got %v", err)
	}
	if _, err := NewBackwardEuler(0.1, newton.Config{}); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("bad solver config: got %v", err)
	}
	if _, err := NewTrapezoidal(-1, newton.DefaultConfig()); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("negative step: got %v", err)
	}
}
