package integrators

import (
	"math"

	"github.com/halvard-os/rkcore/internal/dynamo"
	"github.com/halvard-os/rkcore/internal/step"
)

// BS5 drives internal/step's Bogacki-Shampine 5(4) stepper, the one
// method with a double embedded error estimator (h.EEst is already the
// max of both component estimates by the time PerformStep returns).
type BS5 struct {
	safety, minScale, maxScale float64

	n int
	s step.Stepper[float64]
	h *step.Handle[float64]
}

func NewBS5() *BS5 {
	return &BS5{safety: 0.9, minScale: 0.2, maxScale: 10.0}
}

func (r *BS5) ensure(n int) {
	if r.n == n {
		return
	}
	r.n = n
	r.s = step.NewBS5Stepper[float64](n)
	r.h = &step.Handle[float64]{
		Uprev:     make([]float64, n),
		U:         make([]float64, n),
		FSALFirst: make([]float64, n),
		FSALLast:  make([]float64, n),
		Adaptive:  true,
	}
}

func (r *BS5) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	newX, _, _ := r.StepAdaptive(dyn, x, u, t, dt, 1e-6)
	return newX
}

func (r *BS5) StepAdaptive(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt, tol float64) (dynamo.State, float64, error) {
	n := len(x)
	r.ensure(n)

	r.h.Abstol, r.h.Reltol = tol, tol
	r.h.T, r.h.Dt = t, dt
	copy(r.h.Uprev, x)
	r.h.F = func(tc float64, uu, du []float64) {
		copy(du, dyn.Derive(dynamo.State(uu), u, tc))
	}

	r.s.Initialize(r.h)
	r.s.PerformStep(r.h)

	xNew := make(dynamo.State, n)
	copy(xNew, r.h.U)

	errRatio := r.h.EEst

	var dtNew float64
	switch {
	case errRatio > 1:
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.2))
		dtNew = dt * scale
	case errRatio > 0:
		scale := math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
		dtNew = dt * scale
	default:
		dtNew = dt * r.maxScale
	}

	return xNew, dtNew, nil
}
