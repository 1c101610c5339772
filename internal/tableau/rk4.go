package tableau

// NewRK4 returns the classical four-stage Runge-Kutta method, order 4.
// It is not FSAL in the traditional sense, but the stepper performs an
// extra end-of-step evaluation into k to support interpolation (spec §4.1).
func NewRK4() *Tableau {
	a := newA(4)
	a[1][0] = 0.5
	a[2][0] = 0.0
	a[2][1] = 0.5
	a[3][0] = 0.0
	a[3][1] = 0.0
	a[3][2] = 1.0

	return &Tableau{
		Name:   "RK4",
		Stages: 4,
		Order:  4,
		FSAL:   false,
		A:      a,
		B:      []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
		C:      []float64{0.0, 0.5, 0.5, 1.0},
	}
}
