package tableau

// NewEuler returns the explicit (forward) Euler tableau: one stage, order 1,
// with linear dense output. Euler is not FSAL: its single stage sits at
// c=0, not c=1, so finishFSAL must perform the extra f(t+dt,u) evaluation
// rather than reuse that stage's slope.
func NewEuler() *Tableau {
	return &Tableau{
		Name:   "Euler",
		Stages: 1,
		Order:  1,
		FSAL:   false,
		A:      newA(1),
		B:      []float64{1.0},
		C:      []float64{0.0},
	}
}
