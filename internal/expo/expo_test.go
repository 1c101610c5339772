package expo

import (
	"math"
	"testing"

	"github.com/halvard-os/rkcore/internal/dynamo"
)

func TestExponentialEulerMatchesAnalyticDecay(t *testing.T) {
	lin := NewLinear([][]float64{{-1}})
	integ := ExponentialEuler{}

	x := dynamo.State{1.0}
	t0, dt := 0.0, 0.05
	for i := 0; i < 20; i++ {
		x = integ.Step(lin, x, nil, t0, dt)
		t0 += dt
	}

	want := math.Exp(-1.0)
	if math.Abs(x[0]-want) > 1e-9 {
		t.Errorf("got %.12f, want %.12f", x[0], want)
	}
}

func TestExponentialEulerRotation(t *testing.T) {
	lin := NewLinear([][]float64{{0, 1}, {-1, 0}})
	integ := ExponentialEuler{}

	x := dynamo.State{1.0, 0.0}
	t0, dt := 0.0, math.Pi/4
	x = integ.Step(lin, x, nil, t0, dt)

	if math.Abs(x[0]-math.Cos(math.Pi/4)) > 1e-9 || math.Abs(x[1]-(-math.Sin(math.Pi/4))) > 1e-9 {
		t.Errorf("got [%.9f, %.9f], want [%.9f, %.9f]", x[0], x[1], math.Cos(math.Pi/4), -math.Sin(math.Pi/4))
	}
}
