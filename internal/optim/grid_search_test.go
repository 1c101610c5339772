package optim

import (
	"context"
	"testing"

	"github.com/halvard-os/rkcore/internal/control"
	"github.com/halvard-os/rkcore/internal/dynamo"
	"github.com/halvard-os/rkcore/internal/integrators"
	"github.com/halvard-os/rkcore/internal/metrics"
	"github.com/halvard-os/rkcore/internal/physics"
)

// Search minimizes the named metric, so sweeping a damped pendulum's
// damping coefficient against its average mechanical energy should pick
// the most heavily damped candidate: more damping bleeds energy out of
// the swing faster, so the trajectory spends more of its time near rest.
func TestGridSearchFindsMostDampedCandidate(t *testing.T) {
	g := NewGridSearch([]string{"damping"}, [][]float64{{0.05, 0.5, 2.0}})

	build := func(params map[string]float64) (*dynamo.Simulator, dynamo.State, dynamo.Config, error) {
		p := physics.NewPendulum()
		if err := p.SetParam("damping", params["damping"]); err != nil {
			return nil, nil, dynamo.Config{}, err
		}

		sim := dynamo.New(p, integrators.NewRK4(), control.NewNone(0))
		sim.AddMetric(metrics.NewEnergy(p.Mass, p.Length, p.Gravity))

		cfg := dynamo.Config{Dt: 0.01, Duration: 5.0, ValidateState: true}
		return sim, dynamo.State{1.0, 0.0}, cfg, nil
	}

	best, _, err := g.Search(context.Background(), build, "energy")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if best == nil {
		t.Fatal("expected a best parameter set")
	}
	if best["damping"] != 2.0 {
		t.Errorf("expected the most-damped candidate (2.0) to minimize average energy, got %v", best["damping"])
	}
}
