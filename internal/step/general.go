package step

import (
	"math"

	"github.com/halvard-os/rkcore/internal/tableau"
)

// initialize computes f(t, uprev) into FSALFirst, the one FSAL setup step
// every method shares (spec §4.1).
func initialize[T Numeric](h *Handle[T]) {
	h.F(h.T, h.Uprev, h.FSALFirst)
}

// performStepGeneral implements the "general adaptive form" stage
// computation of spec §4.1, shared by every method whose stages are a
// plain lower-triangular accumulation against the already-computed slopes:
// Euler, Midpoint, RK4, BS3, DP5, and Tsit5 (BS5 is special-cased in bs5.go
// for its double embedded estimator).
func performStepGeneral[T Numeric](tab *tableau.Tableau, ws *Workspace[T], h *Handle[T]) {
	n := len(h.Uprev)
	s := tab.Stages

	copy(ws.K[0], h.FSALFirst)

	for i := 1; i < s; i++ {
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

	if h.Adaptive && tab.Adaptive() {
		accumulate(tab.Bhat, ws.K, h.Dt, h.Uprev, ws.Utilde)
		h.EEst = errorNorm(h, ws.Utilde, h.U, ws.Atmp)
	}
}

// accumulate writes out[id] = uprev[id] + dt * Σ_i weights[i]*k[i][id].
func accumulate[T Numeric](weights []float64, k [][]T, dt float64, uprev, out []T) {
	n := len(uprev)
	for id := 0; id < n; id++ {
		var acc T
		for i, w := range weights {
			if w != 0 {
				acc += fromFloat[T](w) * k[i][id]
			}
		}
		out[id] = uprev[id] + fromFloat[T](dt)*acc
	}
}

// finishFSAL implements the FSAL discipline of spec §4.1: FSAL methods
// reuse the already-computed last stage slope as fsallast; non-FSAL
// methods perform one extra evaluation at (t+dt, u).
func finishFSAL[T Numeric](tab *tableau.Tableau, ws *Workspace[T], h *Handle[T]) {
	if tab.FSAL {
		copy(h.FSALLast, ws.K[tab.Stages-1])
		return
	}
	h.F(h.T+h.Dt, h.U, h.FSALLast)
}

// errorNorm computes EEst = ||(utilde-u)/(abstol+max(|uprev|,|u|)*reltol)||,
// writing the elementwise ratio into atmp and reducing it with
// h.InternalNorm (or the default RMS norm if unset).
func errorNorm[T Numeric](h *Handle[T], utilde, u, atmp []T) float64 {
	n := len(u)
	for id := 0; id < n; id++ {
		denom := h.Abstol + h.Reltol*math.Max(absVal(h.Uprev[id]), absVal(u[id]))
		atmp[id] = (utilde[id] - u[id]) / fromFloat[T](denom)
	}
	if h.InternalNorm != nil {
		return h.InternalNorm(atmp)
	}
	return rmsNorm(atmp)
}

func rmsNorm[T Numeric](atmp []T) float64 {
	sum := 0.0
	for _, v := range atmp {
		a := absVal(v)
		sum += a * a
	}
	return math.Sqrt(sum / float64(len(atmp)))
}
