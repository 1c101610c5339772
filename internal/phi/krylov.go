package phi

import "github.com/halvard-os/rkcore/internal/krylov"

// KrylovMV approximates [phi_0(A)b, ..., phi_k(A)b] for an operator A too
// large to exponentiate directly (spec §4.4): it builds an m-dimensional
// Arnoldi basis (V, H) for A against the seed b, evaluates phi_j(H)e1 on
// the small Hessenberg projection via Dense, and lifts the result back to
// the full space as
//
//	phi_j(A)b ≈ ||b||_2 * V * phi_j(H)e1
//
// The norm scaling is fused into the final matrix-vector product rather
// than applied as a separate pass over a previously-unscaled result (spec
// §9, Open Question 3) — there is no intermediate "unscaled" w to mutate.
func KrylovMV(matvec krylov.MatVec, b []complex128, k, m int, opts krylov.Options) ([][]complex128, error) {
	res, err := krylov.Arnoldi(matvec, b, m, opts)
	if err != nil {
		return nil, err
	}

	n := len(b)
	beta := complex(krylov.Norm2(b), 0)

	e1 := make([]complex128, res.M)
	e1[0] = 1

	hAt := func(i, j int) complex128 { return res.H[i][j] }
	C, err := Dense[complex128](hAt, res.M, e1, k)
	if err != nil {
		return nil, err
	}

	out := make([][]complex128, k+1)
	for j := 0; j <= k; j++ {
		col := make([]complex128, n)
		for row := 0; row < n; row++ {
			var acc complex128
			for i := 0; i < res.M; i++ {
				acc += res.V[i][row] * C[j][i]
			}
			col[row] = acc * beta
		}
		out[j] = col
	}
	return out, nil
}
