package expo

import (
	"github.com/halvard-os/rkcore/internal/dynamo"
	"github.com/halvard-os/rkcore/internal/phi"
)

// ExponentialEuler advances a Linear system exactly: x(t+h) = phi_0(hA)x(t).
// Unlike the RK family in internal/step, it never evaluates System.Derive
// at all — it evaluates the dense phi evaluator against the system's own
// matrix instead of building an RK stage loop.
type ExponentialEuler struct{}

var _ dynamo.Integrator = ExponentialEuler{}

func (ExponentialEuler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	lin := dyn.(*Linear)
	n := lin.n

	hA := func(i, j int) float64 { return dt * lin.A[i][j] }
	v := make([]float64, n)
	copy(v, x)

	cols, err := phi.Dense[float64](hA, n, v, 0)
	if err != nil {
		panic(err)
	}
	return dynamo.State(cols[0])
}
