package schemes

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odekit/internal/ode"
	"github.com/san-kum/odekit/internal/systems"
)

func TestAB2EqualSpacingMatchesClassicFormula(t *testing.T) {
	sys := systems.NewDecay()
	h := 0.1
	s, err := NewAB2(h, nil)
	if err != nil {
		t.Fatal(err)
	}

	u0, u1 := ode.State{1}, ode.State{0.9}
	hist := []ode.Point{{T: 0, U: u0}, {T: h, U: u1}}

	res, err := s.StepHistory(sys, hist, h)
	if err != nil {
		t.Fatal(err)
	}

	// u_2 = u_1 + h·(3/2·f_1 − 1/2·f_0) for equal spacing
	f0, f1 := -u0[0], -u1[0]
	want := u1[0] + h*(1.5*f1-0.5*f0)
	if math.Abs(res.Next[0]-want) > 1e-14 {
		t.Errorf("next = %v, want %v", res.Next[0], want)
	}
}

func TestAB2VariableSpacing(t *testing.T) {
	sys := systems.NewDecay()
	s, _ := NewAB2(0.1, nil)

	// Δ = 0.05, stepping h = 0.1: coefficients become 2 and −1.
	u0, u1 := ode.State{1}, ode.State{0.95}
	hist := []ode.Point{{T: 0, U: u0}, {T: 0.05, U: u1}}

	res, err := s.StepHistory(sys, hist, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	want := u1[0] + 0.1*(2*(-u1[0])-1*(-u0[0]))
	if math.Abs(res.Next[0]-want) > 1e-14 {
		t.Errorf("next = %v, want %v", res.Next[0], want)
	}
}

func TestAB2BootstrapDelegates(t *testing.T) {
	sys := systems.NewDecay()
	h := 0.1
	s, _ := NewAB2(h, nil)
	mp, _ := NewMidpoint(h)

	got, err := s.Step(sys, 0, ode.State{1}, h)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := mp.Step(sys, 0, ode.State{1}, h)
	if got.Next[0] != want.Next[0] {
		t.Errorf("bootstrap = %v, want midpoint result %v", got.Next[0], want.Next[0])
	}
}

func TestAB2HistoryValidation(t *testing.T) {
	sys := systems.NewDecay()
	s, _ := NewAB2(0.1, nil)

	if _, err := s.StepHistory(sys, []ode.Point{{T: 0, U: ode.State{1}}}, 0.1); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("single point: got %v", err)
	}
	hist := []ode.Point{{T: 1, U: ode.State{1}}, {T: 1, U: ode.State{1}}}
	if _, err := s.StepHistory(sys, hist, 0.1); !errors.Is(err, ode.ErrInvalidConfig) {
		t.Errorf("coincident times: got %v", err)
	}
}

func TestAB2StepsRequired(t *testing.T) {
	s, _ := NewAB2(0.1, nil)
	if s.StepsRequired() != 2 {
		t.Errorf("steps required = %d", s.StepsRequired())
	}
}
