package step

import "github.com/halvard-os/rkcore/internal/tableau"

// Workspace is the per-method preallocated scratch a Stepper owns for its
// entire lifetime: stage slopes K, the provisional state Tmp, and (only
// where the method needs them) the embedded estimate Utilde, the error
// scratch Atmp, and dense-output scratch Update/Bspl. Every buffer is sized
// once, at construction, from the Tableau's stage count and the caller's
// state length n; none of them are ever resized.
type Workspace[T Numeric] struct {
	n int

	K   [][]T
	Tmp []T

	Utilde []T
	Atmp   []T

	// Uhat and AtmpTilde back BS5's second, independent embedded estimate.
	Uhat      []T
	AtmpTilde []T

	// Update and Bspl back DP5's four-slope dense-output reconstruction.
	Update []T
	Bspl   []T
}

// NewWorkspace allocates a Workspace sized for tab and a state of length n.
// n == 1 is the scalar-equivalent shape.
func NewWorkspace[T Numeric](tab *tableau.Tableau, n int) *Workspace[T] {
	ws := &Workspace[T]{n: n}

	ws.K = make([][]T, tab.Stages)
	for i := range ws.K {
		ws.K[i] = make([]T, n)
	}
	ws.Tmp = make([]T, n)

	if tab.Adaptive() {
		ws.Utilde = make([]T, n)
		ws.Atmp = make([]T, n)
	}
	if tab.DoubleEmbedded() {
		ws.Uhat = make([]T, n)
		ws.AtmpTilde = make([]T, n)
	}
	if tab.HasDenseOutput() {
		ws.Update = make([]T, n)
		ws.Bspl = make([]T, n)
	}

	return ws
}
