package systems

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/ode"
)

// Harmonic is the undamped oscillator x'' = -ω²x written as the first-order
// pair [x, v].
type Harmonic struct {
	Omega float64
}

func NewHarmonic() *Harmonic {
	return &Harmonic{Omega: 1.0}
}

func (h *Harmonic) Dim() int { return 2 }

func (h *Harmonic) Derive(t float64, u ode.State) ode.State {
	return ode.State{u[1], -h.Omega * h.Omega * u[0]}
}

func (h *Harmonic) Jacobian(t float64, u ode.State) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		0, 1,
		-h.Omega * h.Omega, 0,
	})
}

func (h *Harmonic) Energy(u ode.State) float64 {
	return 0.5 * (u[1]*u[1] + h.Omega*h.Omega*u[0]*u[0])
}

func (h *Harmonic) Exact(t float64, u0 ode.State) ode.State {
	w := h.Omega
	c, s := math.Cos(w*t), math.Sin(w*t)
	return ode.State{
		u0[0]*c + u0[1]/w*s,
		-u0[0]*w*s + u0[1]*c,
	}
}

// VanDerPol is the Van der Pol oscillator
//
//	x' = y
//	y' = μ(1 − x²)y − x
//
// Stiff for large μ, a standard implicit-scheme test problem.
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{Mu: 1.0}
}

func (v *VanDerPol) Dim() int { return 2 }

func (v *VanDerPol) Derive(t float64, u ode.State) ode.State {
	x, y := u[0], u[1]
	return ode.State{y, v.Mu*(1-x*x)*y - x}
}

func (v *VanDerPol) Jacobian(t float64, u ode.State) *mat.Dense {
	x, y := u[0], u[1]
	return mat.NewDense(2, 2, []float64{
		0, 1,
		-2*v.Mu*x*y - 1, v.Mu * (1 - x*x),
	})
}
