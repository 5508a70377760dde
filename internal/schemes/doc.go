// Package schemes implements time-stepping methods behind the single
// [ode.Scheme] contract:
//
//   - [Euler], [Midpoint], [RK4]: explicit single-step methods
//   - [BackwardEuler], [Trapezoidal]: implicit methods driven by
//     a bounded Newton solve
//   - [DoPri45]: adaptive embedded Dormand–Prince 4(5) pair
//   - [AB2]: two-step Adams–Bashforth with single-step bootstrap
//   - [SymplecticEuler]: splitting method for partitioned mechanical systems
//
// Schemes hold only their own immutable configuration plus per-step scratch
// space; they carry no state between runs, so a scheme instance can be
// reused across solver instances that run sequentially.
package schemes
