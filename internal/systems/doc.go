// Package systems provides equation models for the integration engine.
//
// Each model implements [ode.System]; several expose optional structure:
//
//   - [Decay], [Logistic]: scalar test problems with known solutions
//   - [Harmonic]: undamped oscillator, exact solution and energy
//   - [VanDerPol]: stiff-for-large-mu nonlinear oscillator
//   - [Pendulum]: damped pendulum with energy diagnostics
//   - [SpringMass]: partitioned mechanical system in mass-matrix form
//   - [Bead]: index-reduced DAE, bead on a circular wire with constraint
//     residual diagnostics
//
// Models with a known closed-form solution implement
//
//	Exact(t float64, u0 ode.State) ode.State
//
// which the convergence tests lean on.
package systems
