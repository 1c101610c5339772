package tableau

// NewBS3 returns the Bogacki-Shampine 3(2) pair: four stages, order 3 with
// an embedded order-2 estimator, FSAL, cubic Hermite dense output (built
// from y, ydot, yprev, ydotprev by the stepper, not from extra coefficients
// here).
func NewBS3() *Tableau {
	a := newA(4)
	a[1][0] = 1.0 / 2.0
	a[2][0] = 0.0
	a[2][1] = 3.0 / 4.0
	a[3][0] = 2.0 / 9.0
	a[3][1] = 1.0 / 3.0
	a[3][2] = 4.0 / 9.0

	return &Tableau{
		Name:   "BS3",
		Stages: 4,
		Order:  3,
		FSAL:   true,
		A:      a,
		B:      []float64{2.0 / 9.0, 1.0 / 3.0, 4.0 / 9.0, 0.0},
		C:      []float64{0.0, 1.0 / 2.0, 3.0 / 4.0, 1.0},
		Bhat:   []float64{7.0 / 24.0, 1.0 / 4.0, 1.0 / 3.0, 1.0 / 8.0},
	}
}
