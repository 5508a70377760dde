package systems

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/ode"
)

// Decay is the scalar test equation u' = -λ·u. Large λ makes it stiff.
type Decay struct {
	Lambda float64
}

func NewDecay() *Decay {
	return &Decay{Lambda: 1.0}
}

func (d *Decay) Dim() int { return 1 }

func (d *Decay) Derive(t float64, u ode.State) ode.State {
	return ode.State{-d.Lambda * u[0]}
}

func (d *Decay) Jacobian(t float64, u ode.State) *mat.Dense {
	return mat.NewDense(1, 1, []float64{-d.Lambda})
}

func (d *Decay) Exact(t float64, u0 ode.State) ode.State {
	return ode.State{u0[0] * math.Exp(-d.Lambda*t)}
}

// Logistic is u' = r·u·(1−u). With large r the solution has a sharp
// transition near u = 1/2, which forces adaptive schemes to reject steps.
type Logistic struct {
	Rate float64
}

func NewLogistic() *Logistic {
	return &Logistic{Rate: 1000.0}
}

func (l *Logistic) Dim() int { return 1 }

func (l *Logistic) Derive(t float64, u ode.State) ode.State {
	return ode.State{l.Rate * u[0] * (1 - u[0])}
}

func (l *Logistic) Jacobian(t float64, u ode.State) *mat.Dense {
	return mat.NewDense(1, 1, []float64{l.Rate * (1 - 2*u[0])})
}

func (l *Logistic) Exact(t float64, u0 ode.State) ode.State {
	a := u0[0]
	return ode.State{a / (a + (1-a)*math.Exp(-l.Rate*t))}
}
