package ode

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// System models the right-hand side f of M·du/dt = f(t, u), with M identity
// unless the system also implements [Massive]; for plain systems Derive is
// du/dt itself. Implementations must be pure: repeated calls with the same
// arguments return the same result and leave no visible side effects.
type System interface {
	Derive(t float64, u State) State
	Dim() int
}

// Jacobian is an optional System capability providing the exact jacobian
// df/du. Implicit schemes fall back to a finite-difference approximation
// when the capability is absent or the method returns nil.
type Jacobian interface {
	Jacobian(t float64, u State) *mat.Dense
}

// Massive is an optional System capability for mass-matrix form
// M(t,u)·du/dt = f(t, u). An absent capability, or a nil return, means M is
// identity.
type Massive interface {
	Mass(t float64, u State) *mat.Dense
}

// Constrained is an optional System capability for DAE form: Residual
// returns r(t, u, du), zero on the constraint manifold.
type Constrained interface {
	Residual(t float64, u, du State) State
}

// Hamiltonian is an optional System capability exposing total energy,
// used for drift diagnostics on conservative systems.
type Hamiltonian interface {
	Energy(u State) float64
}

// Partition names a contiguous slice of the state vector.
type Partition struct {
	Name   string
	Offset int
	Size   int
}

// Partitioned is an optional System capability describing a structured
// state (e.g. position/velocity for mechanical systems). Partitions must
// tile the state vector exactly.
type Partitioned interface {
	Partitions() []Partition
}

// PartitionDeriver lets splitting schemes update sub-partitions
// independently. Systems without it get the sliced full derivative.
type PartitionDeriver interface {
	DerivePartition(name string, t float64, u State) (State, error)
}

// DerivePartition evaluates the named sub-derivative, using the system's own
// PartitionDeriver when present and slicing the full derivative otherwise.
func DerivePartition(sys System, name string, t float64, u State) (State, error) {
	if pd, ok := sys.(PartitionDeriver); ok {
		return pd.DerivePartition(name, t, u)
	}
	p, ok := sys.(Partitioned)
	if !ok {
		return nil, fmt.Errorf("%w: system has no partitions", ErrInvalidConfig)
	}
	for _, part := range p.Partitions() {
		if part.Name == name {
			du := DeriveExplicit(sys, t, u)
			return State(du[part.Offset : part.Offset+part.Size]).Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: unknown partition %q", ErrInvalidConfig, name)
}

// DeriveExplicit returns du/dt at (t, u). For mass-matrix systems it solves
// M·du = f; a singular mass matrix yields NaNs, which schemes surface as
// ErrNumericFailure.
func DeriveExplicit(sys System, t float64, u State) State {
	f := sys.Derive(t, u)
	m := MassOf(sys, t, u)
	if m == nil {
		return f
	}
	n := len(f)
	out := make(State, n)
	var lu mat.LU
	lu.Factorize(m)
	du := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(du, false, mat.NewVecDense(n, f)); err != nil {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	for i := range out {
		out[i] = du.AtVec(i)
	}
	return out
}

// ResidualOf evaluates the DAE constraint residual at (t, u, du), or nil
// when the system carries no algebraic constraint.
func ResidualOf(sys System, t float64, u, du State) State {
	if c, ok := sys.(Constrained); ok {
		return c.Residual(t, u, du)
	}
	return nil
}

// MassOf returns the mass matrix at (t, u), or nil when it is identity.
func MassOf(sys System, t float64, u State) *mat.Dense {
	if m, ok := sys.(Massive); ok {
		return m.Mass(t, u)
	}
	return nil
}

// PartitionsOf returns the system partition layout, or nil when the state
// is unstructured.
func PartitionsOf(sys System) []Partition {
	if p, ok := sys.(Partitioned); ok {
		return p.Partitions()
	}
	return nil
}

// ValidatePartitions checks that the partition list tiles [0, dim) with no
// gaps, overlaps or duplicate names.
func ValidatePartitions(parts []Partition, dim int) error {
	offset := 0
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if p.Name == "" || p.Size <= 0 {
			return fmt.Errorf("%w: partition %q has size %d", ErrInvalidConfig, p.Name, p.Size)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate partition %q", ErrInvalidConfig, p.Name)
		}
		if p.Offset != offset {
			return fmt.Errorf("%w: partition %q at offset %d, want %d", ErrInvalidConfig, p.Name, p.Offset, offset)
		}
		seen[p.Name] = true
		offset += p.Size
	}
	if offset != dim {
		return fmt.Errorf("%w: partitions cover %d of %d components", ErrInvalidConfig, offset, dim)
	}
	return nil
}
