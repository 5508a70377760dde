package solver

import (
	"errors"
	"fmt"

	"github.com/san-kum/odekit/internal/ode"
)

// Status is the lifecycle state of a Solver.
type Status int

const (
	Uninitialized Status = iota
	Initialized
	Running
	Idle
	Failed
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Idle:
		return "idle"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ErrNotRunnable indicates Run was called in a state other than Initialized
// or Idle.
var ErrNotRunnable = errors.New("solver: not runnable in current state")

// Stats summarizes one or more Run calls since the last Init.
type Stats struct {
	Steps    int     // accepted steps
	LastStep float64 // size of the last accepted step
	LastTime float64 // time of the last accepted point
}

// Solver drives a Scheme over a System, owning the trajectory of accepted
// points. It applies the accept/fail policy: accepted results are appended,
// failures transition the solver to Failed and surface annotated with the
// last accepted point, leaving the trajectory untouched.
//
// A Solver is not safe for concurrent use; independent instances are.
type Solver struct {
	scheme ode.Scheme
	sys    ode.System

	status  Status
	traj    *ode.Trajectory
	h       float64
	stats   Stats
	lastErr error
}

func New(scheme ode.Scheme, sys ode.System) (*Solver, error) {
	if scheme == nil {
		return nil, fmt.Errorf("%w: nil scheme", ode.ErrInvalidConfig)
	}
	if sys == nil {
		return nil, fmt.Errorf("%w: nil system", ode.ErrInvalidConfig)
	}
	return &Solver{
		scheme: scheme,
		sys:    sys,
		traj:   ode.NewTrajectory(ode.PartitionsOf(sys)),
	}, nil
}

// Init seeds the trajectory with the single point (t0, u0) and makes the
// solver runnable. Allowed from any non-running state, including Failed;
// previous history is discarded.
func (s *Solver) Init(u0 ode.State, t0 float64) error {
	if s.status == Running {
		return fmt.Errorf("%w: init while running", ErrNotRunnable)
	}
	if len(u0) != s.sys.Dim() {
		return fmt.Errorf("%w: initial state dim %d, system dim %d", ode.ErrInvalidConfig, len(u0), s.sys.Dim())
	}
	if !u0.IsValid() {
		return fmt.Errorf("%w: initial state", ode.ErrNumericFailure)
	}
	s.traj.Reset()
	if err := s.traj.Append(t0, u0); err != nil {
		return err
	}
	s.h = s.scheme.InitialStep()
	s.stats = Stats{LastTime: t0}
	s.lastErr = nil
	s.status = Initialized
	return nil
}

// Run advances the trajectory until its last time reaches tFinal. A tFinal
// at or before the current time is a no-op. Fixed-step proposals are clamped
// so the final step lands exactly on tFinal.
//
// On a scheme failure the solver transitions to Failed and returns a
// *ode.StepError carrying the last accepted (t, u); the trajectory remains
// exactly as of that point.
func (s *Solver) Run(tFinal float64) error {
	if s.status != Initialized && s.status != Idle {
		return fmt.Errorf("%w: %s", ErrNotRunnable, s.status)
	}

	t, u := s.traj.Last()
	if tFinal <= t {
		return nil
	}

	s.status = Running
	ms, multistep := s.scheme.(ode.Multistep)

	for t < tFinal {
		h := s.h
		if rem := tFinal - t; rem < h {
			h = rem
		}
		if t+h == t {
			s.status = Failed
			s.lastErr = fmt.Errorf("%w: h=%.3e does not advance t=%g", ode.ErrStepTooSmall, h, t)
			return &ode.StepError{Time: t, State: u, Wrapped: s.lastErr}
		}

		var res ode.StepResult
		var err error
		if multistep && s.traj.Len() >= ms.StepsRequired() {
			res, err = ms.StepHistory(s.sys, s.traj.Recent(ms.StepsRequired()), h)
		} else {
			res, err = s.scheme.Step(s.sys, t, u, h)
		}
		if err != nil {
			s.status = Failed
			s.lastErr = err
			return &ode.StepError{Time: t, State: u, Wrapped: err}
		}

		if res.HUsed > 0 {
			h = res.HUsed
		}
		t += h
		u = res.Next
		if err := s.traj.Append(t, u); err != nil {
			s.status = Failed
			s.lastErr = err
			return err
		}
		if res.HNext > 0 {
			s.h = res.HNext
		}
		s.stats.Steps++
		s.stats.LastStep = h
		s.stats.LastTime = t
	}

	s.status = Idle
	return nil
}

// Result exposes the trajectory accumulated so far as a read-only view.
// The view stays valid across further Run calls.
func (s *Solver) Result() ode.View { return s.traj.View() }

func (s *Solver) Status() Status { return s.status }

func (s *Solver) Stats() Stats { return s.stats }

// Err returns the failure that moved the solver to Failed, nil otherwise.
func (s *Solver) Err() error { return s.lastErr }
