package systems

import (
	"math"

	"github.com/san-kum/odekit/internal/ode"
)

// Pendulum is a damped pendulum with state [θ, ω].
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

func (p *Pendulum) Dim() int { return 2 }

func (p *Pendulum) Derive(t float64, u ode.State) ode.State {
	theta, omega := u[0], u[1]
	alpha := (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta)) / (p.Mass * p.Length * p.Length)
	return ode.State{omega, alpha}
}

func (p *Pendulum) Energy(u ode.State) float64 {
	theta, omega := u[0], u[1]
	ke := 0.5 * p.Mass * p.Length * p.Length * omega * omega
	pe := p.Mass * p.Gravity * p.Length * (1 - math.Cos(theta))
	return ke + pe
}

func (p *Pendulum) Partitions() []ode.Partition {
	return []ode.Partition{
		{Name: "position", Offset: 0, Size: 1},
		{Name: "velocity", Offset: 1, Size: 1},
	}
}
