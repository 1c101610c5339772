package tableau

// NewMidpoint returns the explicit midpoint rule: two stages, order 2, not
// FSAL, linear dense output.
func NewMidpoint() *Tableau {
	a := newA(2)
	a[1][0] = 0.5

	return &Tableau{
		Name:   "Midpoint",
		Stages: 2,
		Order:  2,
		FSAL:   false,
		A:      a,
		B:      []float64{0.0, 1.0},
		C:      []float64{0.0, 0.5},
	}
}
