package step

import "github.com/halvard-os/rkcore/internal/tableau"

// bs5Stepper implements Stepper for BS5, the one method whose error
// estimate is not a single embedded pair but two independent estimates
// (spec §4.1): EEst1 from Bhat, EEst2 from Btilde (acting on a second
// provisional state Uhat), with EEst = max(EEst1, EEst2).
type bs5Stepper[T Numeric] struct {
	tab *tableau.Tableau
	ws  *Workspace[T]
}

// NewBS5Stepper returns the Bogacki-Shampine 5(4) Stepper with its double
// embedded error estimator and eight-slope dense output.
func NewBS5Stepper[T Numeric](n int) Stepper[T] {
	return &bs5Stepper[T]{tab: tableau.NewBS5(), ws: NewWorkspace[T](tableau.NewBS5(), n)}
}

func (s *bs5Stepper[T]) Initialize(h *Handle[T]) { initialize(h) }

func (s *bs5Stepper[T]) KShortSize() int { return s.tab.Stages }

func (s *bs5Stepper[T]) PerformStep(h *Handle[T]) {
	tab, ws := s.tab, s.ws
	n := len(h.Uprev)
	sCount := tab.Stages

	copy(ws.K[0], h.FSALFirst)

	for i := 1; i < sCount; i++ {
		tc := h.T + tab.C[i]*h.Dt
		for id := 0; id < n; id++ {
			var acc T
			for j := 0; j < i; j++ {
				if a := tab.A[i][j]; a != 0 {
					acc += fromFloat[T](a) * ws.K[j][id]
				}
			}
			ws.Tmp[id] = h.Uprev[id] + fromFloat[T](h.Dt)*acc
		}
		h.F(tc, ws.Tmp, ws.K[i])
	}

	accumulate(tab.B, ws.K, h.Dt, h.Uprev, h.U)

	if h.Adaptive {
		accumulate(tab.Bhat, ws.K, h.Dt, h.Uprev, ws.Utilde)
		h.EEst1 = errorNorm(h, ws.Utilde, h.U, ws.Atmp)

		accumulate(tab.Btilde, ws.K, h.Dt, h.Uprev, ws.Uhat)
		h.EEst2 = errorNorm(h, ws.Uhat, h.U, ws.AtmpTilde)

		h.EEst = h.EEst1
		if h.EEst2 > h.EEst1 {
			h.EEst = h.EEst2
		}
	}

	finishFSAL(tab, ws, h)

	if h.Calck {
		calckCopyAll(tab, ws, h)
	}
}
