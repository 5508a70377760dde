package ode

// StepResult is one accepted step. HUsed is the step size actually taken,
// which for adaptive methods may be smaller than the proposal they were
// handed; HNext is the size to propose for the following step.
type StepResult struct {
	Next  State
	HUsed float64
	HNext float64
}

// Scheme is the single contract every time-stepping method implements:
// advance one step from (t, u) with proposed step size h, returning the
// accepted result or a typed failure (ErrNumericFailure, ErrNonConvergence,
// ErrStepTooSmall). A failed step must leave no visible side effects.
//
// Fixed-step methods take the step at exactly h and echo their configured
// step size as HNext; adaptive methods may accept at a smaller HUsed and
// grow or shrink HNext.
type Scheme interface {
	// InitialStep reports the step size to propose for the first step.
	InitialStep() float64

	Step(sys System, t float64, u State, h float64) (StepResult, error)
}

// Multistep is an optional Scheme capability for methods that consume the
// last k accepted trajectory points. The driver calls StepHistory once the
// trajectory holds StepsRequired points; before that it bootstraps through
// the plain Step method.
type Multistep interface {
	Scheme

	StepsRequired() int
	StepHistory(sys System, hist []Point, h float64) (StepResult, error)
}
