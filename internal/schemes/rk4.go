package schemes

import (
	"fmt"

	"github.com/san-kum/odekit/internal/ode"
)

// RK4 is the classical fourth-order Runge–Kutta method, fixed step.
type RK4 struct {
	h              float64
	k1, k2, k3, k4 ode.State
	scratch        ode.State
}

func NewRK4(h float64) (*RK4, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: step size %g", ode.ErrInvalidConfig, h)
	}
	return &RK4{h: h}, nil
}

func (r *RK4) InitialStep() float64 { return r.h }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(ode.State, n)
		r.k2 = make(ode.State, n)
		r.k3 = make(ode.State, n)
		r.k4 = make(ode.State, n)
		r.scratch = make(ode.State, n)
	}
}

func (r *RK4) Step(sys ode.System, t float64, u ode.State, h float64) (ode.StepResult, error) {
	n := len(u)
	r.ensureScratch(n)

	copy(r.k1, ode.DeriveExplicit(sys, t, u))

	for i := 0; i < n; i++ {
		r.scratch[i] = u[i] + 0.5*h*r.k1[i]
	}
	copy(r.k2, ode.DeriveExplicit(sys, t+0.5*h, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = u[i] + 0.5*h*r.k2[i]
	}
	copy(r.k3, ode.DeriveExplicit(sys, t+0.5*h, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = u[i] + h*r.k3[i]
	}
	copy(r.k4, ode.DeriveExplicit(sys, t+h, r.scratch))

	next := make(ode.State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		next[i] = u[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	if !next.IsValid() {
		return ode.StepResult{}, ode.ErrNumericFailure
	}
	return ode.StepResult{Next: next, HUsed: h, HNext: r.h}, nil
}
