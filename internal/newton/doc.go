// Package newton provides bounded iterative root-finders for the per-step
// implicit equations of implicit time-stepping schemes.
//
// [Newton] performs undamped Newton iteration with an exact or
// finite-difference jacobian; [FixedPoint] iterates x = Ψ(x) directly and is
// only valid when Ψ is a contraction. Both are stateless: every Solve call
// is independent and reentrant.
package newton
