package tableau

// NewDP5 returns the Dormand-Prince 5(4) pair: seven stages, order 5 with
// an embedded order-4 estimator, FSAL, and the seven dense-output coefficients
// (D, six of them nonzero) used to build the special four-slope dense output described in
// spec §4.1.
func NewDP5() *Tableau {
	a := newA(7)
	a[1][0] = 1.0 / 5.0
	a[2][0] = 3.0 / 40.0
	a[2][1] = 9.0 / 40.0
	a[3][0] = 44.0 / 45.0
	a[3][1] = -56.0 / 15.0
	a[3][2] = 32.0 / 9.0
	a[4][0] = 19372.0 / 6561.0
	a[4][1] = -25360.0 / 2187.0
	a[4][2] = 64448.0 / 6561.0
	a[4][3] = -212.0 / 729.0
	a[5][0] = 9017.0 / 3168.0
	a[5][1] = -355.0 / 33.0
	a[5][2] = 46732.0 / 5247.0
	a[5][3] = 49.0 / 176.0
	a[5][4] = -5103.0 / 18656.0
	a[6][0] = 35.0 / 384.0
	a[6][1] = 0.0
	a[6][2] = 500.0 / 1113.0
	a[6][3] = 125.0 / 192.0
	a[6][4] = -2187.0 / 6784.0
	a[6][5] = 11.0 / 84.0

	b := []float64{35.0 / 384.0, 0.0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0.0}
	c := []float64{0.0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1.0, 1.0}
	bhat := []float64{
		5179.0 / 57600.0,
		0.0,
		7571.0 / 16695.0,
		393.0 / 640.0,
		-92097.0 / 339200.0,
		187.0 / 2100.0,
		1.0 / 40.0,
	}

	d := []float64{
		-12715105075.0 / 11282082432.0,
		0.0,
		87487479700.0 / 32700410799.0,
		-10690763975.0 / 1880347072.0,
		701980252875.0 / 199316789632.0,
		-1453857185.0 / 822651844.0,
		69997945.0 / 29380423.0,
	}

	return &Tableau{
		Name:   "DP5",
		Stages: 7,
		Order:  5,
		FSAL:   true,
		A:      a,
		B:      b,
		C:      c,
		Bhat:   bhat,
		D:      d,
	}
}
