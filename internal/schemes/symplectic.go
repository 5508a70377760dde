package schemes

import (
	"fmt"

	"github.com/san-kum/odekit/internal/ode"
)

// SymplecticEuler is a first-order splitting method for mechanical systems
// with named position and velocity partitions. The velocity partition is
// advanced first, then the position partition is advanced using the updated
// velocities, which preserves the symplectic structure of separable
// Hamiltonian systems.
type SymplecticEuler struct {
	h       float64
	posName string
	velName string
}

func NewSymplecticEuler(h float64, posName, velName string) (*SymplecticEuler, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: step size %g", ode.ErrInvalidConfig, h)
	}
	if posName == "" || velName == "" {
		return nil, fmt.Errorf("%w: empty partition name", ode.ErrInvalidConfig)
	}
	return &SymplecticEuler{h: h, posName: posName, velName: velName}, nil
}

func (s *SymplecticEuler) InitialStep() float64 { return s.h }

func (s *SymplecticEuler) Step(sys ode.System, t float64, u ode.State, h float64) (ode.StepResult, error) {
	parts := ode.PartitionsOf(sys)
	if parts == nil {
		return ode.StepResult{}, fmt.Errorf("%w: symplectic euler needs a partitioned system", ode.ErrInvalidConfig)
	}
	pos, velPart := findPartition(parts, s.posName), findPartition(parts, s.velName)
	if pos == nil || velPart == nil {
		return ode.StepResult{}, fmt.Errorf("%w: partitions %q/%q not found", ode.ErrInvalidConfig, s.posName, s.velName)
	}

	dv, err := ode.DerivePartition(sys, s.velName, t, u)
	if err != nil {
		return ode.StepResult{}, err
	}

	next := u.Clone()
	for i := 0; i < velPart.Size; i++ {
		next[velPart.Offset+i] += h * dv[i]
	}

	// position derivative evaluated with the updated velocities
	dq, err := ode.DerivePartition(sys, s.posName, t, next)
	if err != nil {
		return ode.StepResult{}, err
	}
	for i := 0; i < pos.Size; i++ {
		next[pos.Offset+i] += h * dq[i]
	}

	if !next.IsValid() {
		return ode.StepResult{}, ode.ErrNumericFailure
	}
	return ode.StepResult{Next: next, HUsed: h, HNext: s.h}, nil
}

func findPartition(parts []ode.Partition, name string) *ode.Partition {
	for i := range parts {
		if parts[i].Name == name {
			return &parts[i]
		}
	}
	return nil
}
