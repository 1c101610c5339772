// Package expo is a small, non-core demonstration of the phi-function
// machinery: a constant-coefficient linear system advanced by the
// exponential Euler method, wired into the dynsim CLI as the "expo"
// subcommand.
package expo

import (
	"github.com/halvard-os/rkcore/internal/dynamo"
)

// Linear is a constant-coefficient linear ODE dx/dt = A*x, the textbook
// system exponential methods are built for: its exact flow is
// x(t+h) = exp(hA)*x(t), so any error an exponential integrator makes is
// pure approximation error in phi_0, not truncation of a nonlinear term.
// Control is accepted (to satisfy dynamo.System) but ignored.
type Linear struct {
	A [][]float64
	n int
}

// NewLinear returns a Linear system for the given constant matrix A.
func NewLinear(A [][]float64) *Linear {
	return &Linear{A: A, n: len(A)}
}

var _ dynamo.System = (*Linear)(nil)

func (s *Linear) StateDim() int   { return s.n }
func (s *Linear) ControlDim() int { return 0 }

func (s *Linear) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	out := make(dynamo.State, s.n)
	for i := 0; i < s.n; i++ {
		var acc float64
		for j := 0; j < s.n; j++ {
			acc += s.A[i][j] * x[j]
		}
		out[i] = acc
	}
	return out
}
