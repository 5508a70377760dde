package ode

import (
	"errors"
	"fmt"
)

// Domain errors for integration operations.
var (
	// ErrInvalidConfig indicates a construction-time configuration error
	// (missing right-hand side, non-positive step size, inconsistent
	// partition layout). Never retried.
	ErrInvalidConfig = errors.New("ode: invalid configuration")

	// ErrNumericFailure indicates a non-finite result (NaN or Inf) from an
	// evaluation or an update.
	ErrNumericFailure = errors.New("ode: non-finite result")

	// ErrNonConvergence indicates an implicit root-find did not meet its
	// tolerance within the configured iteration cap.
	ErrNonConvergence = errors.New("ode: nonlinear solve did not converge")

	// ErrStepTooSmall indicates adaptive step shrinking was exhausted below
	// the configured minimum.
	ErrStepTooSmall = errors.New("ode: adaptive step below minimum")
)

// StepError annotates a step failure with the last successfully accepted
// point. The trajectory remains exactly as of that point.
type StepError struct {
	Time    float64
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step failed after t=%.6g: %v", e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
