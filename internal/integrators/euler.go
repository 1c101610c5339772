package integrators

import (
	"github.com/halvard-os/rkcore/internal/dynamo"
	"github.com/halvard-os/rkcore/internal/step"
)

// Euler is forward Euler, driven by internal/step's generic stepper engine.
// It is migrated onto the dynamo universe (internal/dynamo.System, not the
// older internal/sim.Dynamics) to match the rest of this package: RK4,
// RK45 and Verlet already spoke dynamo, and Euler was the one holdout.
type Euler struct {
	n int
	s step.Stepper[float64]
	h *step.Handle[float64]
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) ensure(n int) {
	if e.n == n {
		return
	}
	e.n = n
	e.s = step.NewEulerStepper[float64](n)
	e.h = &step.Handle[float64]{
		Uprev:     make([]float64, n),
		U:         make([]float64, n),
		FSALFirst: make([]float64, n),
		FSALLast:  make([]float64, n),
	}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	e.ensure(n)

	e.h.T, e.h.Dt = t, dt
	copy(e.h.Uprev, x)
	e.h.F = func(tc float64, uu, du []float64) {
		copy(du, dyn.Derive(dynamo.State(uu), u, tc))
	}

	e.s.Initialize(e.h)
	e.s.PerformStep(e.h)

	result := make(dynamo.State, n)
	copy(result, e.h.U)
	return result
}
