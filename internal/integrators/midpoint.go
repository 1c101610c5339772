package integrators

import (
	"github.com/halvard-os/rkcore/internal/dynamo"
	"github.com/halvard-os/rkcore/internal/step"
)

// Midpoint is the explicit midpoint method (second order, non-FSAL),
// driven by internal/step, following the same fixed-step shape as Euler.
type Midpoint struct {
	n int
	s step.Stepper[float64]
	h *step.Handle[float64]
}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) ensure(n int) {
	if m.n == n {
		return
	}
	m.n = n
	m.s = step.NewMidpointStepper[float64](n)
	m.h = &step.Handle[float64]{
		Uprev:     make([]float64, n),
		U:         make([]float64, n),
		FSALFirst: make([]float64, n),
		FSALLast:  make([]float64, n),
	}
}

func (m *Midpoint) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	m.ensure(n)

	m.h.T, m.h.Dt = t, dt
	copy(m.h.Uprev, x)
	m.h.F = func(tc float64, uu, du []float64) {
		copy(du, dyn.Derive(dynamo.State(uu), u, tc))
	}

	m.s.Initialize(m.h)
	m.s.PerformStep(m.h)

	result := make(dynamo.State, n)
	copy(result, m.h.U)
	return result
}
