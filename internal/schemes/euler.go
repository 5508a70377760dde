package schemes

import (
	"fmt"

	"github.com/san-kum/odekit/internal/ode"
)

// Euler is the forward Euler method: u_{n+1} = u_n + h·f(t_n, u_n).
// First order, fixed step.
type Euler struct {
	h float64
}

func NewEuler(h float64) (*Euler, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: step size %g", ode.ErrInvalidConfig, h)
	}
	return &Euler{h: h}, nil
}

func (e *Euler) InitialStep() float64 { return e.h }

func (e *Euler) Step(sys ode.System, t float64, u ode.State, h float64) (ode.StepResult, error) {
	next := u.AddScaled(h, ode.DeriveExplicit(sys, t, u))
	if !next.IsValid() {
		return ode.StepResult{}, ode.ErrNumericFailure
	}
	return ode.StepResult{Next: next, HUsed: h, HNext: e.h}, nil
}

// Midpoint is the explicit midpoint rule, second order, fixed step.
type Midpoint struct {
	h       float64
	scratch ode.State
}

func NewMidpoint(h float64) (*Midpoint, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: step size %g", ode.ErrInvalidConfig, h)
	}
	return &Midpoint{h: h}, nil
}

func (m *Midpoint) InitialStep() float64 { return m.h }

func (m *Midpoint) Step(sys ode.System, t float64, u ode.State, h float64) (ode.StepResult, error) {
	n := len(u)
	if len(m.scratch) != n {
		m.scratch = make(ode.State, n)
	}
	k1 := ode.DeriveExplicit(sys, t, u)
	for i := 0; i < n; i++ {
		m.scratch[i] = u[i] + 0.5*h*k1[i]
	}
	k2 := ode.DeriveExplicit(sys, t+0.5*h, m.scratch)
	next := u.AddScaled(h, k2)
	if !next.IsValid() {
		return ode.StepResult{}, ode.ErrNumericFailure
	}
	return ode.StepResult{Next: next, HUsed: h, HNext: m.h}, nil
}
