package systems

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/ode"
)

// SpringMass is a mass on a linear spring in mass-matrix form
//
//	M·du/dt = f(t, u),  u = [x, v],  M = diag(1, m)
//
// so that the second row reads m·v' = −k·x − c·v. The state carries named
// position/velocity partitions for splitting schemes.
type SpringMass struct {
	M         float64
	Stiffness float64
	Damping   float64
}

func NewSpringMass() *SpringMass {
	return &SpringMass{M: 1.0, Stiffness: 1.0}
}

func (s *SpringMass) Dim() int { return 2 }

// Derive returns the explicit-form derivative; the engine combines it with
// Mass for schemes that honor the mass-matrix form.
func (s *SpringMass) Derive(t float64, u ode.State) ode.State {
	x, v := u[0], u[1]
	return ode.State{v, -s.Stiffness*x - s.Damping*v}
}

func (s *SpringMass) Mass(t float64, u ode.State) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 0,
		0, s.M,
	})
}

func (s *SpringMass) Jacobian(t float64, u ode.State) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		0, 1,
		-s.Stiffness, -s.Damping,
	})
}

func (s *SpringMass) Partitions() []ode.Partition {
	return []ode.Partition{
		{Name: "position", Offset: 0, Size: 1},
		{Name: "velocity", Offset: 1, Size: 1},
	}
}

func (s *SpringMass) DerivePartition(name string, t float64, u ode.State) (ode.State, error) {
	du := s.Derive(t, u)
	switch name {
	case "position":
		return ode.State{du[0]}, nil
	case "velocity":
		return ode.State{du[1] / s.M}, nil
	}
	return nil, ode.ErrInvalidConfig
}

func (s *SpringMass) Energy(u ode.State) float64 {
	x, v := u[0], u[1]
	return 0.5*s.M*v*v + 0.5*s.Stiffness*x*x
}

// Exact is the undamped closed-form solution; only valid when Damping is 0.
func (s *SpringMass) Exact(t float64, u0 ode.State) ode.State {
	w := math.Sqrt(s.Stiffness / s.M)
	c, sn := math.Cos(w*t), math.Sin(w*t)
	return ode.State{
		u0[0]*c + u0[1]/w*sn,
		-u0[0]*w*sn + u0[1]*c,
	}
}
