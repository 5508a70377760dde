package systems

import (
	"github.com/san-kum/odekit/internal/ode"
)

// Bead is a particle constrained to the unit circle under gravity, written in
// Cartesian coordinates u = [x, y, vx, vy]. The Lagrange multiplier is
// eliminated through the second derivative of the constraint, giving an
// index-reduced ODE; the original algebraic constraints
//
//	g₁ = x² + y² − 1 = 0
//	g₂ = x·vx + y·vy = 0
//
// are exposed through Residual so drift off the manifold stays observable.
type Bead struct {
	Mass    float64
	Gravity float64
}

func NewBead() *Bead {
	return &Bead{Mass: 1.0, Gravity: 9.81}
}

func (b *Bead) Dim() int { return 4 }

func (b *Bead) Derive(t float64, u ode.State) ode.State {
	x, y, vx, vy := u[0], u[1], u[2], u[3]
	// from d²/dt²(x²+y²) = 0 with force (0, −m·g) and reaction λ·(x, y)
	lambda := b.Gravity*y - (vx*vx + vy*vy)
	return ode.State{vx, vy, lambda * x, lambda*y - b.Gravity}
}

func (b *Bead) Residual(t float64, u, du ode.State) ode.State {
	x, y, vx, vy := u[0], u[1], u[2], u[3]
	return ode.State{
		x*x + y*y - 1,
		x*vx + y*vy,
	}
}

func (b *Bead) Energy(u ode.State) float64 {
	y, vx, vy := u[1], u[2], u[3]
	return 0.5*b.Mass*(vx*vx+vy*vy) + b.Mass*b.Gravity*y
}

func (b *Bead) Partitions() []ode.Partition {
	return []ode.Partition{
		{Name: "position", Offset: 0, Size: 2},
		{Name: "velocity", Offset: 2, Size: 2},
	}
}
