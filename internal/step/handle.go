package step

import "errors"

// ErrWorkspaceSize names the condition of a Handle's state length not
// matching the Workspace it is stepped with. No function in this package
// returns it: PerformStep does not check lengths, and a Handle shorter
// than its Workspace panics on indexing.
var ErrWorkspaceSize = errors.New("step: handle state length does not match workspace size")

// Function is the right-hand side of u'(t) = f(t, u), written into du.
// du may alias u's backing scratch only via the Workspace's own buffers;
// callers must never pass the same slice as both u and du.
type Function[T Numeric] func(t float64, u, du []T)

// Handle is the integrator handle external to the core: the mutable,
// per-integration state a driver owns and passes to Stepper.Initialize and
// Stepper.PerformStep. The core reads T, Dt, Uprev, F, and the tolerance/
// option fields, and writes U, FSALLast, EEst, and K.
//
// A length-1 Uprev/U is the scalar shape; any other length is the array
// shape. Both share this same struct and the same stepping code — see
// DESIGN.md for why the module does not hand-duplicate a separate scalar
// implementation.
type Handle[T Numeric] struct {
	T  float64
	Dt float64

	Uprev []T
	U     []T

	F Function[T]

	Abstol float64
	Reltol float64

	// InternalNorm reduces an elementwise error-ratio buffer to a single
	// scalar. If nil, the default root-mean-square norm is used.
	InternalNorm func([]T) float64

	Adaptive bool
	Calck    bool

	FSALFirst []T
	FSALLast  []T

	// K holds the dense-output slope list, sized Stepper.KShortSize().
	K [][]T

	EEst float64

	// EEst1, EEst2 are populated only by BS5's double embedded estimator;
	// EEst = max(EEst1, EEst2) in that case.
	EEst1 float64
	EEst2 float64
}
