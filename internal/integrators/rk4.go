package integrators

import (
	"github.com/halvard-os/rkcore/internal/dynamo"
	"github.com/halvard-os/rkcore/internal/step"
)

// RK4 is the classical four-stage Runge-Kutta method, driven by
// internal/step's generic stepper engine. It used to hand-unroll the k1..k4
// stage arithmetic directly against dynamo.System; that arithmetic now lives
// once in internal/step and every fixed-step adapter in this package shares
// it, the same way Euler does.
type RK4 struct {
	n int
	s step.Stepper[float64]
	h *step.Handle[float64]
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensure(n int) {
	if r.n == n {
		return
	}
	r.n = n
	r.s = step.NewRK4Stepper[float64](n)
	r.h = &step.Handle[float64]{
		Uprev:     make([]float64, n),
		U:         make([]float64, n),
		FSALFirst: make([]float64, n),
		FSALLast:  make([]float64, n),
	}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	r.ensure(n)

	r.h.T, r.h.Dt = t, dt
	copy(r.h.Uprev, x)
	r.h.F = func(tc float64, uu, du []float64) {
		copy(du, dyn.Derive(dynamo.State(uu), u, tc))
	}

	r.s.Initialize(r.h)
	r.s.PerformStep(r.h)

	result := make(dynamo.State, n)
	copy(result, r.h.U)
	return result
}
