package tableau

// NewTsit5 returns the Tsitouras 5(4) pair: seven stages, order 5 with an
// embedded order-4 estimator, FSAL, seven-slope dense output (built from
// stage slopes by the stepper). Coefficients follow Tsitouras (2011),
// "Runge-Kutta pairs of order 5(4) satisfying only the first column
// simplifying assumption".
func NewTsit5() *Tableau {
	a := newA(7)
	a[1][0] = 0.161
	a[2][0] = -0.008480655492356989
	a[2][1] = 0.335480655492357
	a[3][0] = 2.8971530571054935
	a[3][1] = -6.359448489975075
	a[3][2] = 4.3622954328695815
	a[4][0] = 5.325864828439257
	a[4][1] = -11.748883564062828
	a[4][2] = 7.4955393428898365
	a[4][3] = -0.09249506636175525
	a[5][0] = 5.86145544294642
	a[5][1] = -12.92096931784711
	a[5][2] = 8.159367898576159
	a[5][3] = -0.071584973281401
	a[5][4] = -0.028269050394068383
	a[6][0] = 0.09646076681806523
	a[6][1] = 0.01
	a[6][2] = 0.4798896504144996
	a[6][3] = 1.379008574103742
	a[6][4] = -3.290069515436080
	a[6][5] = 2.324710524099774

	b := []float64{
		0.09646076681806523,
		0.01,
		0.4798896504144996,
		1.379008574103742,
		-3.290069515436080,
		2.324710524099774,
		0.0,
	}
	c := []float64{0.0, 0.161, 0.327, 0.9, 0.9800255409045097, 1.0, 1.0}

	bhat := []float64{
		0.09468075576583945,
		0.009183565540343253,
		0.4877705284247616,
		1.2342975669304791,
		-2.707712349983525,
		1.866628418170587,
		0.015151515151515152,
	}

	return &Tableau{
		Name:   "Tsit5",
		Stages: 7,
		Order:  5,
		FSAL:   true,
		A:      a,
		B:      b,
		C:      c,
		Bhat:   bhat,
	}
}
