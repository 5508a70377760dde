package newton

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odekit/internal/ode"
)

// Func is a vector-valued function G(x) whose root is sought.
type Func func(x ode.State) ode.State

// JacFunc returns the jacobian dG/dx at x.
type JacFunc func(x ode.State) *mat.Dense

// sqrt of machine epsilon for float64
var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)

// Approx builds a forward-difference jacobian of g at x, perturbing each
// component by sqrt(machine epsilon)·max(1, |x_i|).
func Approx(g Func, x ode.State) *mat.Dense {
	n := len(x)
	g0 := g(x)
	m := len(g0)
	jac := mat.NewDense(m, n, nil)
	xp := x.Clone()
	for j := 0; j < n; j++ {
		eps := sqrtEps * math.Max(1, math.Abs(x[j]))
		xp[j] = x[j] + eps
		gp := g(xp)
		xp[j] = x[j]
		for i := 0; i < m; i++ {
			jac.Set(i, j, (gp[i]-g0[i])/eps)
		}
	}
	return jac
}

// SystemJacobian returns df/du for the system at (t, u): the exact jacobian
// when the system provides one, a forward-difference approximation
// otherwise.
func SystemJacobian(sys ode.System, t float64, u ode.State) *mat.Dense {
	if j, ok := sys.(ode.Jacobian); ok {
		if jac := j.Jacobian(t, u); jac != nil {
			return jac
		}
	}
	return Approx(func(x ode.State) ode.State { return sys.Derive(t, x) }, u)
}
