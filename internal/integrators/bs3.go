package integrators

import (
	"math"

	"github.com/halvard-os/rkcore/internal/dynamo"
	"github.com/halvard-os/rkcore/internal/step"
)

// BS3 drives internal/step's Bogacki-Shampine 3(2) stepper with the same
// step-size controller RK45 uses (every step accepted, dt rescaled from
// the error ratio), scaled to a third-order method's shrink/grow exponents.
type BS3 struct {
	safety, minScale, maxScale float64

	n int
	s step.Stepper[float64]
	h *step.Handle[float64]
}

func NewBS3() *BS3 {
	return &BS3{safety: 0.9, minScale: 0.2, maxScale: 10.0}
}

func (r *BS3) ensure(n int) {
	if r.n == n {
		return
	}
	r.n = n
	r.s = step.NewBS3Stepper[float64](n)
	r.h = &step.Handle[float64]{
		Uprev:     make([]float64, n),
		U:         make([]float64, n),
		FSALFirst: make([]float64, n),
		FSALLast:  make([]float64, n),
		Adaptive:  true,
	}
}

func (r *BS3) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	newX, _, _ := r.StepAdaptive(dyn, x, u, t, dt, 1e-6)
	return newX
}

func (r *BS3) StepAdaptive(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt, tol float64) (dynamo.State, float64, error) {
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
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -1.0/3.0))
		dtNew = dt * scale
	case errRatio > 0:
		scale := math.Min(r.maxScale, r.safety*math.Pow(errRatio, -1.0/3.0))
		dtNew = dt * scale
	default:
		dtNew = dt * r.maxScale
	}

	return xNew, dtNew, nil
}
