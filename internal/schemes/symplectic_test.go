package schemes

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odekit/internal/ode"
	"github.com/san-kum/odekit/internal/systems"
)

func TestSymplecticEulerNeedsPartitions(t *testing.T) {
	sys := systems.NewDecay()
	s, err := NewSymplecticEuler(0.1, "position", "velocity")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Step(sys, 0, ode.State{1}, 0.1); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("unpartitioned system: got %v", err)
	}
}

func TestSymplecticEulerUnknownPartition(t *testing.T) {
	sys := systems.NewSpringMass()
	s, _ := NewSymplecticEuler(0.1, "q", "p")
	if _, err := s.Step(sys, 0, ode.State{1, 0}, 0.1); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("wrong partition names: got %v", err)
	}
}

// Over many periods the symplectic update keeps the oscillator energy within
// a bounded band instead of drifting the way forward Euler does.
func TestSymplecticEulerEnergyBounded(t *testing.T) {
	sys := systems.NewSpringMass() // undamped, m = k = 1
	u0 := ode.State{1, 0}
	h := 0.05
	e0 := sys.Energy(u0)

	s, err := NewSymplecticEuler(h, "position", "velocity")
	if err != nil {
		t.Fatal(err)
	}

	u := u0.Clone()
	tc := 0.0
	maxDrift := 0.0
	for i := 0; i < 2000; i++ { // t = 100, about 16 periods
		res, err := s.Step(sys, tc, u, h)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		u = res.Next
		tc += h
		if d := math.Abs(sys.Energy(u)-e0) / e0; d > maxDrift {
			maxDrift = d
		}
	}

	if maxDrift > 0.1 {
		t.Errorf("relative energy drift %v over %v time units", maxDrift, tc)
	}

	// Forward Euler gains energy without bound on the same problem.
	eu, _ := NewEuler(h)
	u = u0.Clone()
	tc = 0
	for i := 0; i < 2000; i++ {
		res, err := eu.Step(sys, tc, u, h)
		if err != nil {
			t.Fatalf("euler step %d: %v", i, err)
		}
		u = res.Next
		tc += h
	}
	if sys.Energy(u) < 2*e0 {
		t.Errorf("expected forward euler energy blow-up, got %v", sys.Energy(u))
	}
}

func TestSymplecticEulerValidation(t *testing.T) {
	if _, err := NewSymplecticEuler(0, "position", "velocity"); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("zero step: got %v", err)
	}
	if _, err := NewSymplecticEuler(0.1, "", "velocity"); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("empty name: got %v", err)
	}
}
