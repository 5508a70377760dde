package newton

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/ode"
)

// Config bounds a nonlinear solve. Immutable once constructed.
type Config struct {
	Tolerance     float64
	MaxIterations int
}

func DefaultConfig() Config {
	return Config{Tolerance: 1e-10, MaxIterations: 50}
}

func (c Config) validate() error {
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance %g", ode.ErrInvalidConfig, c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d", ode.ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}

// NonConvergenceError carries the last iterate and residual for diagnostics.
// It wraps ode.ErrNonConvergence.
type NonConvergenceError struct {
	Iterations int
	Last       ode.State
	Residual   float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("no convergence after %d iterations (residual %.3e)", e.Iterations, e.Residual)
}

func (e *NonConvergenceError) Unwrap() error { return ode.ErrNonConvergence }

// Newton solves G(x) = 0 by Newton iteration
//
//	x_{k+1} = x_k − J(x_k)⁻¹ G(x_k)
//
// stopping when ‖x_{k+1} − x_k‖ < Tolerance or ‖G(x_{k+1})‖ < Tolerance.
type Newton struct {
	cfg Config
}

func New(cfg Config) (*Newton, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Newton{cfg: cfg}, nil
}

func (n *Newton) Config() Config { return n.cfg }

// Solve runs the iteration from x0. jac may be nil, in which case the
// jacobian is approximated by forward differences.
func (n *Newton) Solve(g Func, jac JacFunc, x0 ode.State) (ode.State, error) {
	x := x0.Clone()
	dim := len(x)
	gx := g(x)
	if !gx.IsValid() {
		return nil, fmt.Errorf("%w: residual at initial guess", ode.ErrNumericFailure)
	}

	var lu mat.LU
	dx := mat.NewVecDense(dim, nil)
	residual := gx.Norm()

	for k := 0; k < n.cfg.MaxIterations; k++ {
		var jm *mat.Dense
		if jac != nil {
			jm = jac(x)
		}
		if jm == nil {
			jm = Approx(g, x)
		}

		lu.Factorize(jm)
		if err := lu.SolveVecTo(dx, false, mat.NewVecDense(dim, gx)); err != nil {
			return nil, fmt.Errorf("%w: singular jacobian: %v", ode.ErrNumericFailure, err)
		}

		step := 0.0
		for i := 0; i < dim; i++ {
			d := dx.AtVec(i)
			x[i] -= d
			step += d * d
		}
		if !x.IsValid() {
			return nil, fmt.Errorf("%w: newton iterate", ode.ErrNumericFailure)
		}

		gx = g(x)
		if !gx.IsValid() {
			return nil, fmt.Errorf("%w: residual evaluation", ode.ErrNumericFailure)
		}
		residual = gx.Norm()

		if residual < n.cfg.Tolerance || math.Sqrt(step) < n.cfg.Tolerance {
			return x, nil
		}
	}

	return nil, &NonConvergenceError{
		Iterations: n.cfg.MaxIterations,
		Last:       x,
		Residual:   residual,
	}
}
