package step

import "github.com/halvard-os/rkcore/internal/tableau"

// Stepper is the two-operation contract every method exposes to the driver
// (spec §4.1, §6): Initialize is called once before the first step,
// PerformStep advances the Handle by one step.
type Stepper[T Numeric] interface {
	Initialize(h *Handle[T])
	PerformStep(h *Handle[T])

	// KShortSize is the fixed number of dense-output slopes the method
	// retains in Handle.K when Calck is set.
	KShortSize() int
}

// calckFunc fills h.K from a workspace that has just finished a step.
type calckFunc[T Numeric] func(tab *tableau.Tableau, ws *Workspace[T], h *Handle[T])

// genericStepper implements Stepper for every method whose stage
// computation is the shared "general adaptive form" loop: Euler,
// Midpoint, RK4, BS3, DP5, and Tsit5. Only the Tableau and the calck
// strategy differ between them, matching Design Notes §9's suggestion of
// tagged variants over one shared capability rather than seven
// hand-duplicated implementations.
type genericStepper[T Numeric] struct {
	tab    *tableau.Tableau
	ws     *Workspace[T]
	calck  calckFunc[T]
	kShort int
}

func newGenericStepper[T Numeric](tab *tableau.Tableau, n, kShort int, calck calckFunc[T]) *genericStepper[T] {
	return &genericStepper[T]{tab: tab, ws: NewWorkspace[T](tab, n), calck: calck, kShort: kShort}
}

func (g *genericStepper[T]) Initialize(h *Handle[T]) { initialize(h) }

func (g *genericStepper[T]) KShortSize() int { return g.kShort }

func (g *genericStepper[T]) PerformStep(h *Handle[T]) {
	performStepGeneral(g.tab, g.ws, h)
	finishFSAL(g.tab, g.ws, h)
	if h.Calck && g.calck != nil {
		g.calck(g.tab, g.ws, h)
	}
}

// NewEulerStepper returns the forward-Euler Stepper for a state of length n.
func NewEulerStepper[T Numeric](n int) Stepper[T] {
	return newGenericStepper[T](tableau.NewEuler(), n, 0, nil)
}

// NewMidpointStepper returns the explicit-midpoint Stepper.
func NewMidpointStepper[T Numeric](n int) Stepper[T] {
	return newGenericStepper[T](tableau.NewMidpoint(), n, 0, nil)
}

// NewRK4Stepper returns the classical RK4 Stepper. RK4 is not FSAL;
// finishFSAL's extra end-of-step evaluation fills FSALLast, and Calck
// stores [fsalfirst, fsallast] in k for interpolation, as for BS3.
func NewRK4Stepper[T Numeric](n int) Stepper[T] {
	return newGenericStepper[T](tableau.NewRK4(), n, 2, calckBS3[T])
}

// NewBS3Stepper returns the Bogacki-Shampine 3(2) Stepper. Calck stores
// [fsalfirst, fsallast], the two slopes a cubic Hermite dense-output
// reconstruction needs alongside uprev and u.
func NewBS3Stepper[T Numeric](n int) Stepper[T] {
	return newGenericStepper[T](tableau.NewBS3(), n, 2, calckBS3[T])
}

// NewDP5Stepper returns the Dormand-Prince 5(4) Stepper with its
// four-slope dense output.
func NewDP5Stepper[T Numeric](n int) Stepper[T] {
	return newGenericStepper[T](tableau.NewDP5(), n, 4, calckDP5[T])
}

// NewTsit5Stepper returns the Tsitouras 5(4) Stepper with seven-slope
// dense output (the full stage slope list).
func NewTsit5Stepper[T Numeric](n int) Stepper[T] {
	return newGenericStepper[T](tableau.NewTsit5(), n, 7, calckCopyAll[T])
}

func calckBS3[T Numeric](tab *tableau.Tableau, ws *Workspace[T], h *Handle[T]) {
	copy(h.K[0], h.FSALFirst)
	copy(h.K[1], h.FSALLast)
}

func calckCopyAll[T Numeric](tab *tableau.Tableau, ws *Workspace[T], h *Handle[T]) {
	for i := 0; i < tab.Stages; i++ {
		copy(h.K[i], ws.K[i])
	}
}

// calckDP5 builds DP5's four dense-output slopes (spec §4.1):
//
//  1. update  = a71*k1 + a73*k3 + a74*k4 + a75*k5 + a76*k6
//  2. bspl    = k1 - update
//  3. update - k7 - bspl
//  4. d1*k1 + d3*k3 + d4*k4 + d5*k5 + d6*k6 + d7*k7
//
// DP5 is FSAL with b7 == 0, so the dense-output coefficients a71..a76
// coincide with the main weights b1..b6 — "update" is the main
// accumulation without the (zero) seventh term.
func calckDP5[T Numeric](tab *tableau.Tableau, ws *Workspace[T], h *Handle[T]) {
	n := len(h.U)
	k := ws.K
	b := tab.B
	d := tab.D
	for id := 0; id < n; id++ {
		update := fromFloat[T](b[0])*k[0][id] + fromFloat[T](b[2])*k[2][id] + fromFloat[T](b[3])*k[3][id] + fromFloat[T](b[4])*k[4][id] + fromFloat[T](b[5])*k[5][id]
		bspl := k[0][id] - update
		ws.Update[id] = update
		ws.Bspl[id] = bspl

		h.K[0][id] = update
		h.K[1][id] = bspl
		h.K[2][id] = update - k[6][id] - bspl
		h.K[3][id] = fromFloat[T](d[0])*k[0][id] + fromFloat[T](d[2])*k[2][id] + fromFloat[T](d[3])*k[3][id] + fromFloat[T](d[4])*k[4][id] + fromFloat[T](d[5])*k[5][id] + fromFloat[T](d[6])*k[6][id]
	}
}
