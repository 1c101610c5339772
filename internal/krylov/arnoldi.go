package krylov

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

var (
	// ErrZeroSeed is returned when the seed vector b has (numerically) zero
	// norm — there is no direction to build a basis from.
	ErrZeroSeed = errors.New("krylov: seed vector has zero norm")

	// ErrBreakdown is wrapped into the error Arnoldi returns when the
	// iteration breaks down (h[j+1,j] ~ 0) and OnBreakdown is BreakdownError.
	ErrBreakdown = errors.New("krylov: Arnoldi breakdown")
)

// breakdownTol is the threshold below which a next-basis-vector norm is
// treated as a breakdown rather than rounding noise.
const breakdownTol = 1e-12

// MatVec applies an operator A to v, returning A*v. v must not be retained
// or mutated beyond the call.
type MatVec func(v []complex128) []complex128

// BreakdownPolicy selects what Arnoldi does when the iteration breaks down
// before reaching the requested subspace size m (spec §9, Open Question 1).
type BreakdownPolicy int

const (
	// BreakdownError reports breakdown as an error (the default): the
	// caller asked for an m-dimensional subspace and didn't get one.
	BreakdownError BreakdownPolicy = iota
	// BreakdownTruncate accepts the smaller subspace that was actually
	// built — valid because Krylov subspaces stop growing exactly when
	// b happens to lie in an invariant subspace of A, which is a feature,
	// not a numerical failure.
	BreakdownTruncate
)

// Options configures an Arnoldi run.
type Options struct {
	OnBreakdown BreakdownPolicy
}

// Result is the orthonormal basis and Hessenberg projection Arnoldi builds.
// V[i] is the i-th basis vector (length n); H is M x M upper Hessenberg.
// M equals the requested subspace size m unless BreakdownTruncate shrank it.
type Result struct {
	V [][]complex128
	H [][]complex128
	M int
}

// Arnoldi runs m steps of modified Gram-Schmidt Arnoldi on the operator
// matvec starting from seed b, producing an orthonormal basis V of the
// Krylov subspace span{b, Ab, A^2b, ..., A^(m-1)b} and the upper Hessenberg
// matrix H = V^H A V (spec §4.2).
//
// The final iteration applies matvec to the just-computed V[m-1] (not a
// stale V[m-2]) to fill H's last column, then stops without building a
// further basis vector — spec §9, Open Question 2.
func Arnoldi(matvec MatVec, b []complex128, m int, opts Options) (*Result, error) {
	n := len(b)
	beta := norm2(b)
	if beta == 0 {
		return nil, ErrZeroSeed
	}
	if m <= 0 || m > n {
		return nil, fmt.Errorf("krylov: subspace size %d out of range for dimension %d", m, n)
	}

	V := make([][]complex128, m)
	for i := range V {
		V[i] = make([]complex128, n)
	}
	H := make([][]complex128, m)
	for i := range H {
		H[i] = make([]complex128, m)
	}

	invBeta := complex(1/beta, 0)
	for i, x := range b {
		V[0][i] = x * invBeta
	}

	built := m
	for j := 0; j < m; j++ {
		w := matvec(V[j])

		for i := 0; i <= j; i++ {
			h := dot(V[i], w)
			H[i][j] = h
			axpy(w, -h, V[i])
		}

		if j+1 == m {
			break
		}

		hNext := norm2(w)
		if hNext < breakdownTol {
			switch opts.OnBreakdown {
			case BreakdownTruncate:
				built = j + 1
			default:
				return nil, fmt.Errorf("%w: stage %d, ||w||=%.3g", ErrBreakdown, j+1, hNext)
			}
			break
		}

		H[j+1][j] = complex(hNext, 0)
		invH := complex(1/hNext, 0)
		for i, x := range w {
			V[j+1][i] = x * invH
		}
	}

	if built < m {
		V = V[:built]
		trimmed := make([][]complex128, built)
		for i := 0; i < built; i++ {
			trimmed[i] = H[i][:built]
		}
		H = trimmed
	}

	return &Result{V: V, H: H, M: built}, nil
}

// dot returns the Hermitian inner product <v,w> = sum(conj(v_i) * w_i).
func dot(v, w []complex128) complex128 {
	var acc complex128
	for i := range v {
		acc += cmplx.Conj(v[i]) * w[i]
	}
	return acc
}

// axpy computes w += alpha*v in place.
func axpy(w []complex128, alpha complex128, v []complex128) {
	for i := range w {
		w[i] += alpha * v[i]
	}
}

// Norm2 returns the Euclidean norm of a complex vector.
func Norm2(x []complex128) float64 { return norm2(x) }

func norm2(x []complex128) float64 {
	var sum float64
	for _, v := range x {
		a := cmplx.Abs(v)
		sum += a * a
	}
	return math.Sqrt(sum)
}
