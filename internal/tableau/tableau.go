// Package tableau holds the immutable Butcher coefficient tables for every
// explicit Runge-Kutta method the stepping engine supports.
//
// A Tableau is built once, at construction time, from exact rational or
// high-precision decimal literals and never recomputed inside a step — the
// stepper family in internal/step treats it as read-only, shareable state.
package tableau

import "fmt"

// Tableau is the frozen Butcher tableau for one explicit RK method:
// a lower-triangular stage matrix A, nodes C, weights B, and (for adaptive
// methods) an embedded weight vector Bhat plus, for some methods, extra
// coefficients for dense output or a second independent error estimate.
type Tableau struct {
	Name   string
	Stages int
	Order  int
	FSAL   bool

	// A is lower triangular: A[i][j] is meaningful for j < i, i = 1..Stages-1.
	// Row 0 is unused (the first stage is always just f(t, uprev)).
	A [][]float64
	B []float64
	C []float64

	// Bhat holds the embedded weights for adaptive methods, nil otherwise.
	Bhat []float64

	// D holds DP5's four-slope dense-output coefficients, nil otherwise.
	D []float64

	// Btilde holds BS5's second, independent embedded weight vector used to
	// compute a second error estimate EEst2, nil otherwise.
	Btilde []float64
}

// Adaptive reports whether the method carries an embedded error estimator.
func (t *Tableau) Adaptive() bool { return t.Bhat != nil }

// DoubleEmbedded reports whether the method carries BS5's second,
// independent embedded estimator.
func (t *Tableau) DoubleEmbedded() bool { return t.Btilde != nil }

// HasDenseOutput reports whether the method carries DP5-style dense output
// coefficients. Tsit5 and BS5 have dense output too, but theirs is built
// directly from the stage slopes k (see internal/step), not from extra
// tableau coefficients.
func (t *Tableau) HasDenseOutput() bool { return t.D != nil }

// Validate checks the row/column sums that every consistent RK tableau must
// satisfy: Σ_j a_ij = c_i for each stage, and Σ_i b_i = 1. It is a
// construction-time diagnostic, not a requirement a caller must invoke.
func (t *Tableau) Validate() error {
	const eps = 1e-9
	for i := 1; i < t.Stages; i++ {
		sum := 0.0
		for j := 0; j < i; j++ {
			sum += t.A[i][j]
		}
		if diff := sum - t.C[i]; diff > eps || diff < -eps {
			return fmt.Errorf("tableau: %s stage %d: sum(a_ij)=%.17g != c_i=%.17g", t.Name, i, sum, t.C[i])
		}
	}
	bsum := 0.0
	for _, b := range t.B {
		bsum += b
	}
	if diff := bsum - 1.0; diff > eps || diff < -eps {
		return fmt.Errorf("tableau: %s: sum(b_i)=%.17g != 1", t.Name, bsum)
	}
	if t.Bhat != nil {
		bhsum := 0.0
		for _, b := range t.Bhat {
			bhsum += b
		}
		if diff := bhsum - 1.0; diff > eps || diff < -eps {
			return fmt.Errorf("tableau: %s: sum(bhat_i)=%.17g != 1", t.Name, bhsum)
		}
	}
	return nil
}

func newA(stages int) [][]float64 {
	a := make([][]float64, stages)
	for i := range a {
		a[i] = make([]float64, stages)
	}
	return a
}
