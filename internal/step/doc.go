// Package step implements the explicit Runge-Kutta stepping engine: the
// fixed-step methods (Euler, Midpoint, RK4) and the embedded adaptive
// methods (BS3, DP5, Tsit5, BS5), all sharing one generic stage-loop
// algorithm parameterized over the element type T (float64 or complex128).
//
// Every method exposes the same two-operation contract as a [Stepper]:
// [Stepper.Initialize] computes the first FSAL slope once, and
// [Stepper.PerformStep] advances the [Handle] by one step, writing U,
// FSALLast, and (for adaptive methods) EEst.
//
// A [Workspace] is bound to exactly one Stepper instance for its lifetime
// and is never resized; all per-step scratch buffers are fully overwritten
// on every call, so a Stepper can be reused across an unbounded number of
// steps without zeroing between them.
package step
