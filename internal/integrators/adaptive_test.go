package integrators

import (
	"math"
	"testing"

	"github.com/halvard-os/rkcore/internal/dynamo"
)

func TestBS3AdaptiveStep(t *testing.T) {
	integrator := NewBS3()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x, newDt, err := integrator.StepAdaptive(dyn, x0, nil, 0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("BS3 StepAdaptive produced invalid state")
	}
	if newDt <= 0 {
		t.Errorf("BS3 StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestTsit5AdaptiveStep(t *testing.T) {
	integrator := NewTsit5()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x, newDt, err := integrator.StepAdaptive(dyn, x0, nil, 0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("Tsit5 StepAdaptive produced invalid state")
	}
	if newDt <= 0 {
		t.Errorf("Tsit5 StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestBS5AdaptiveStep(t *testing.T) {
	integrator := NewBS5()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x, newDt, err := integrator.StepAdaptive(dyn, x0, nil, 0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("BS5 StepAdaptive produced invalid state")
	}
	if newDt <= 0 {
		t.Errorf("BS5 StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestTsit5MatchesRK45Closely(t *testing.T) {
	rk45 := NewRK45()
	tsit5 := NewTsit5()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x45 := x0.Clone()
	xT5 := x0.Clone()
	dt := 0.05
	for i := 0; i < 100; i++ {
		x45 = rk45.Step(dyn, x45, nil, float64(i)*dt, dt)
		xT5 = tsit5.Step(dyn, xT5, nil, float64(i)*dt, dt)
	}

	if math.Abs(x45[0]-xT5[0]) > 1e-3 {
		t.Errorf("RK45 and Tsit5 diverged: %.6f vs %.6f", x45[0], xT5[0])
	}
}
