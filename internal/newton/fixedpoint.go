package newton

import (
	"fmt"

	"github.com/san-kum/odekit/internal/ode"
)

// FixedPoint solves x = Ψ(x) by direct iteration x_{k+1} = Ψ(x_k).
//
// Convergence is only guaranteed when Ψ is a contraction on a neighbourhood
// of the fixed point (Lipschitz constant < 1); for stiff implicit equations
// prefer [Newton].
type FixedPoint struct {
	cfg Config
}

func NewFixedPoint(cfg Config) (*FixedPoint, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &FixedPoint{cfg: cfg}, nil
}

func (f *FixedPoint) Config() Config { return f.cfg }

// Solve iterates psi from x0 until successive iterates differ by less than
// the tolerance.
func (f *FixedPoint) Solve(psi func(x ode.State) ode.State, x0 ode.State) (ode.State, error) {
	x := x0.Clone()
	diff := 0.0
	for k := 0; k < f.cfg.MaxIterations; k++ {
		next := psi(x)
		if !next.IsValid() {
			return nil, fmt.Errorf("%w: fixed-point iterate", ode.ErrNumericFailure)
		}
		diff = next.Sub(x).Norm()
		x = next
		if diff < f.cfg.Tolerance {
			return x, nil
		}
	}
	return nil, &NonConvergenceError{
		Iterations: f.cfg.MaxIterations,
		Last:       x,
		Residual:   diff,
	}
}
