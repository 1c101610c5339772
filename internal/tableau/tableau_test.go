package tableau

import "testing"

func TestValidateAllMethods(t *testing.T) {
	tabs := []*Tableau{
		NewEuler(), NewMidpoint(), NewRK4(), NewBS3(), NewDP5(), NewTsit5(), NewBS5(),
	}
	for _, tab := range tabs {
		if err := tab.Validate(); err != nil {
			t.Errorf("%s: %v", tab.Name, err)
		}
	}
}

func TestAdaptiveFlags(t *testing.T) {
	if NewEuler().Adaptive() {
		t.Error("Euler should not be adaptive")
	}
	if NewMidpoint().Adaptive() {
		t.Error("Midpoint should not be adaptive")
	}
	if NewRK4().Adaptive() {
		t.Error("RK4 should not be adaptive")
	}
	for _, tab := range []*Tableau{NewBS3(), NewDP5(), NewTsit5(), NewBS5()} {
		if !tab.Adaptive() {
			t.Errorf("%s should be adaptive", tab.Name)
		}
	}
}

func TestFSALFlags(t *testing.T) {
	for _, tab := range []*Tableau{NewBS3(), NewDP5(), NewTsit5(), NewBS5()} {
		if !tab.FSAL {
			t.Errorf("%s should be FSAL", tab.Name)
		}
	}
	for _, tab := range []*Tableau{NewEuler(), NewMidpoint(), NewRK4()} {
		if tab.FSAL {
			t.Errorf("%s should not be FSAL", tab.Name)
		}
	}
}

func TestStageCounts(t *testing.T) {
	cases := map[string]int{
		"Euler": 1, "Midpoint": 2, "RK4": 4, "BS3": 4, "DP5": 7, "Tsit5": 7, "BS5": 8,
	}
	tabs := []*Tableau{NewEuler(), NewMidpoint(), NewRK4(), NewBS3(), NewDP5(), NewTsit5(), NewBS5()}
	for _, tab := range tabs {
		if want := cases[tab.Name]; tab.Stages != want {
			t.Errorf("%s: got %d stages, want %d", tab.Name, tab.Stages, want)
		}
	}
}

func TestDP5HasDenseOutput(t *testing.T) {
	if !NewDP5().HasDenseOutput() {
		t.Error("DP5 should carry dense-output coefficients")
	}
	if NewTsit5().HasDenseOutput() {
		t.Error("Tsit5 should not carry DP5-style dense-output coefficients")
	}
}

func TestBS5DoubleEmbedded(t *testing.T) {
	if !NewBS5().DoubleEmbedded() {
		t.Error("BS5 should carry a second embedded estimator")
	}
	if NewDP5().DoubleEmbedded() {
		t.Error("DP5 should not carry a second embedded estimator")
	}
}
