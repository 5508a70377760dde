package ode

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FuncSystem adapts plain closures to the System contract. Optional
// structure is attached through functional options; absent capabilities
// report nil, which schemes treat as "not available".
type FuncSystem struct {
	dim   int
	f     func(t float64, u State) State
	jac   func(t float64, u State) *mat.Dense
	mass  func(t float64, u State) *mat.Dense
	resid func(t float64, u, du State) State
	parts []Partition
	partf map[string]func(t float64, u State) State
}

type FuncOption func(*FuncSystem)

// WithJacobian attaches an exact jacobian df/du.
func WithJacobian(jac func(t float64, u State) *mat.Dense) FuncOption {
	return func(s *FuncSystem) { s.jac = jac }
}

// WithMass attaches a mass matrix for M·du/dt = f(t, u).
func WithMass(mass func(t float64, u State) *mat.Dense) FuncOption {
	return func(s *FuncSystem) { s.mass = mass }
}

// WithResidual attaches a DAE constraint residual r(t, u, du), zero on the
// constraint manifold.
func WithResidual(r func(t float64, u, du State) State) FuncOption {
	return func(s *FuncSystem) { s.resid = r }
}

// WithPartitions declares a structured state layout. Offsets are assigned
// in declaration order.
func WithPartitions(parts ...Partition) FuncOption {
	return func(s *FuncSystem) {
		offset := 0
		for i := range parts {
			parts[i].Offset = offset
			offset += parts[i].Size
		}
		s.parts = parts
	}
}

// WithPartitionDerive attaches a dedicated sub-derivative for one named
// partition, used by splitting schemes.
func WithPartitionDerive(name string, f func(t float64, u State) State) FuncOption {
	return func(s *FuncSystem) {
		if s.partf == nil {
			s.partf = make(map[string]func(t float64, u State) State)
		}
		s.partf[name] = f
	}
}

func NewFuncSystem(dim int, f func(t float64, u State) State, opts ...FuncOption) (*FuncSystem, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil right-hand side", ErrInvalidConfig)
	}
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrInvalidConfig, dim)
	}
	s := &FuncSystem{dim: dim, f: f}
	for _, opt := range opts {
		opt(s)
	}
	if s.parts != nil {
		if err := ValidatePartitions(s.parts, dim); err != nil {
			return nil, err
		}
	}
	for name := range s.partf {
		if !s.hasPartition(name) {
			return nil, fmt.Errorf("%w: sub-derivative for unknown partition %q", ErrInvalidConfig, name)
		}
	}
	return s, nil
}

func (s *FuncSystem) hasPartition(name string) bool {
	for _, p := range s.parts {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (s *FuncSystem) Dim() int { return s.dim }

func (s *FuncSystem) Derive(t float64, u State) State {
	return s.f(t, u)
}

func (s *FuncSystem) Jacobian(t float64, u State) *mat.Dense {
	if s.jac == nil {
		return nil
	}
	return s.jac(t, u)
}

func (s *FuncSystem) Mass(t float64, u State) *mat.Dense {
	if s.mass == nil {
		return nil
	}
	return s.mass(t, u)
}

func (s *FuncSystem) Residual(t float64, u, du State) State {
	if s.resid == nil {
		return nil
	}
	return s.resid(t, u, du)
}

func (s *FuncSystem) Partitions() []Partition { return s.parts }

func (s *FuncSystem) DerivePartition(name string, t float64, u State) (State, error) {
	if f, ok := s.partf[name]; ok {
		return f(t, u), nil
	}
	for _, p := range s.parts {
		if p.Name == name {
			du := DeriveExplicit(s, t, u)
			return State(du[p.Offset : p.Offset+p.Size]).Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: unknown partition %q", ErrInvalidConfig, name)
}
