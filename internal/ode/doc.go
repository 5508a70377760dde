// Package ode provides the core primitives for numerical time integration
// of ordinary differential equations and DAEs.
//
// The package defines the contracts between the collaborators of the
// integration engine:
//
//   - [State]: vector representing the system state
//   - [System]: interface for the equation model (du/dt = f(t, u))
//   - [Scheme]: single-step numerical update rule
//   - [Trajectory]: append-only history of accepted (time, state) pairs
//
// Optional model structure (jacobian, mass matrix, constraint residual,
// partitioned state) is exposed through capability interfaces that a System
// may or may not implement:
//
//	if j, ok := sys.(ode.Jacobian); ok {
//	    J := j.Jacobian(t, u)
//	}
//
// Schemes degrade gracefully when a capability is absent: implicit schemes
// fall back to a finite-difference jacobian, the mass matrix defaults to
// identity.
//
// # Thread Safety
//
// Systems and Schemes must be reentrant; a Trajectory is owned by a single
// solver and is not safe for concurrent mutation. Independent solver
// instances can run concurrently.
package ode
