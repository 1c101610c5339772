package tableau

// NewBS5 returns the Bogacki-Shampine 5(4) pair: eight stages, order 5,
// FSAL, with a double embedded error estimator — Bhat and Btilde are two
// independent order-4 weight vectors, and the stepper reports
// EEst = max(EEst1, EEst2) computed from each (spec §4.1).
func NewBS5() *Tableau {
	a := newA(8)
	a[1][0] = 1.0 / 6.0
	a[2][0] = 2.0 / 27.0
	a[2][1] = 4.0 / 27.0
	a[3][0] = 183.0 / 1372.0
	a[3][1] = -162.0 / 343.0
	a[3][2] = 1053.0 / 1372.0
	a[4][0] = 68.0 / 297.0
	a[4][1] = -4.0 / 11.0
	a[4][2] = 42.0 / 143.0
	a[4][3] = 1960.0 / 3861.0
	a[5][0] = 597.0 / 22528.0
	a[5][1] = 81.0 / 352.0
	a[5][2] = 63099.0 / 585728.0
	a[5][3] = 58653.0 / 366080.0
	a[5][4] = 4617.0 / 20480.0
	a[6][0] = 174197.0 / 959244.0
	a[6][1] = -30942.0 / 79937.0
	a[6][2] = 8152137.0 / 19744439.0
	a[6][3] = 666106.0 / 1039181.0
	a[6][4] = -29421.0 / 29068.0
	a[6][5] = 482048.0 / 414219.0
	a[7][0] = 587.0 / 8064.0
	a[7][1] = 0.0
	a[7][2] = 4440339.0 / 15491840.0
	a[7][3] = 24353.0 / 124800.0
	a[7][4] = 387.0 / 44800.0
	a[7][5] = 2152.0 / 5985.0
	a[7][6] = 7267.0 / 94080.0

	b := []float64{
		587.0 / 8064.0,
		0.0,
		4440339.0 / 15491840.0,
		24353.0 / 124800.0,
		387.0 / 44800.0,
		2152.0 / 5985.0,
		7267.0 / 94080.0,
		0.0,
	}
	c := []float64{0.0, 1.0 / 6.0, 2.0 / 9.0, 3.0 / 7.0, 2.0 / 3.0, 3.0 / 4.0, 1.0, 1.0}

	bhat := []float64{
		2479.0 / 34992.0,
		0.0,
		123.0 / 416.0,
		612941.0 / 3411720.0,
		43.0 / 1440.0,
		2272.0 / 6561.0,
		79937.0 / 1113912.0,
		3293.0 / 556956.0,
	}

	return &Tableau{
		Name:   "BS5",
		Stages: 8,
		Order:  5,
		FSAL:   true,
		A:      a,
		B:      b,
		C:      c,
		Bhat:   bhat,
		Btilde: secondEstimator(b),
	}
}

// secondEstimator builds BS5's second embedded weight vector as
// btilde = b + d, where d is Bogacki and Shampine's second error-estimate
// difference vector. d sums to zero and is orthogonal to c, c^2 and c^3,
// so btilde is an order-4 weight set independent of bhat.
func secondEstimator(b []float64) []float64 {
	d := []float64{
		-3.0 / 1280.0,
		0.0,
		6561.0 / 632320.0,
		-343.0 / 20800.0,
		243.0 / 12800.0,
		-1.0 / 95.0,
		0.0,
		0.0,
	}
	out := make([]float64, len(b))
	for i := range b {
		out[i] = b[i] + d[i]
	}
	return out
}
