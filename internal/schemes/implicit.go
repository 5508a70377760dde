package schemes

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/newton"
	"github.com/san-kum/odekit/internal/ode"
)

// BackwardEuler is the first-order implicit Euler method. Each step solves
//
//	G(x) = M(t₁,x)·(x − u_n) − h·f(t₁, x) = 0,  t₁ = t_n + h
//
// with a bounded Newton iteration; M defaults to identity for plain ODE
// systems. Non-convergence propagates unresolved.
type BackwardEuler struct {
	h         float64
	root      *newton.Newton
	fp        *newton.FixedPoint
	predictor ode.Scheme
}

type ImplicitOption func(*BackwardEuler)

// WithPredictor supplies an explicit predictor whose result seeds the
// iteration instead of the default guess u_n.
func WithPredictor(p ode.Scheme) ImplicitOption {
	return func(s *BackwardEuler) { s.predictor = p }
}

// WithFixedPointIteration replaces the Newton solve by direct iteration of
// x = u_n + h·u'(t₁, x). Only valid when the iteration map is a
// contraction, which typically requires h·L < 1 for Lipschitz constant L.
func WithFixedPointIteration() ImplicitOption {
	return func(s *BackwardEuler) {
		s.fp, _ = newton.NewFixedPoint(s.root.Config())
	}
}

func NewBackwardEuler(h float64, cfg newton.Config, opts ...ImplicitOption) (*BackwardEuler, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: step size %g", ode.ErrInvalidConfig, h)
	}
	root, err := newton.New(cfg)
	if err != nil {
		return nil, err
	}
	s := &BackwardEuler{h: h, root: root}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *BackwardEuler) InitialStep() float64 { return s.h }

func (s *BackwardEuler) Step(sys ode.System, t float64, u ode.State, h float64) (ode.StepResult, error) {
	t1 := t + h
	guess := u
	if s.predictor != nil {
		if p, err := s.predictor.Step(sys, t, u, h); err == nil {
			guess = p.Next
		}
	}

	var x ode.State
	var err error
	if s.fp != nil {
		psi := func(v ode.State) ode.State {
			return u.AddScaled(h, ode.DeriveExplicit(sys, t1, v))
		}
		x, err = s.fp.Solve(psi, guess)
	} else {
		g := func(v ode.State) ode.State {
			return implicitResidual(sys, t1, u, v, h, sys.Derive(t1, v), 1)
		}
		x, err = s.root.Solve(g, implicitJacobian(sys, t1, h, 1), guess)
	}
	if err != nil {
		return ode.StepResult{}, err
	}
	return ode.StepResult{Next: x, HUsed: h, HNext: s.h}, nil
}

// Trapezoidal is the second-order implicit trapezoidal rule:
//
//	G(x) = M·(x − u_n) − (h/2)·(f(t_n, u_n) + f(t₁, x)) = 0
type Trapezoidal struct {
	h    float64
	root *newton.Newton
}

func NewTrapezoidal(h float64, cfg newton.Config) (*Trapezoidal, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: step size %g", ode.ErrInvalidConfig, h)
	}
	root, err := newton.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Trapezoidal{h: h, root: root}, nil
}

func (s *Trapezoidal) InitialStep() float64 { return s.h }

func (s *Trapezoidal) Step(sys ode.System, t float64, u ode.State, h float64) (ode.StepResult, error) {
	t1 := t + h
	f0 := sys.Derive(t, u)
	g := func(x ode.State) ode.State {
		fx := sys.Derive(t1, x)
		blend := make(ode.State, len(x))
		for i := range blend {
			blend[i] = f0[i] + fx[i]
		}
		return implicitResidual(sys, t1, u, x, h, blend, 0.5)
	}
	x, err := s.root.Solve(g, implicitJacobian(sys, t1, h, 0.5), u)
	if err != nil {
		return ode.StepResult{}, err
	}
	return ode.StepResult{Next: x, HUsed: h, HNext: s.h}, nil
}

// implicitResidual computes M(t1,x)·(x−u) − weight·h·fx, with identity mass
// when the system has none.
func implicitResidual(sys ode.System, t1 float64, u, x ode.State, h float64, fx ode.State, weight float64) ode.State {
	n := len(x)
	r := make(ode.State, n)
	if m := ode.MassOf(sys, t1, x); m != nil {
		d := mat.NewVecDense(n, x.Sub(u))
		md := mat.NewVecDense(n, nil)
		md.MulVec(m, d)
		for i := 0; i < n; i++ {
			r[i] = md.AtVec(i) - weight*h*fx[i]
		}
		return r
	}
	for i := 0; i < n; i++ {
		r[i] = x[i] - u[i] - weight*h*fx[i]
	}
	return r
}

// implicitJacobian builds dG/dx = M − weight·h·df/du when the system exposes
// an exact jacobian, and nil otherwise so the Newton solver falls back to
// finite differences on G itself.
func implicitJacobian(sys ode.System, t1, h, weight float64) newton.JacFunc {
	j, ok := sys.(ode.Jacobian)
	if !ok {
		return nil
	}
	return func(x ode.State) *mat.Dense {
		jf := j.Jacobian(t1, x)
		if jf == nil {
			return nil
		}
		n := len(x)
		jg := mat.NewDense(n, n, nil)
		jg.Scale(-weight*h, jf)
		if m := ode.MassOf(sys, t1, x); m != nil {
			jg.Add(jg, m)
		} else {
			for i := 0; i < n; i++ {
				jg.Set(i, i, jg.At(i, i)+1)
			}
		}
		return jg
	}
}
