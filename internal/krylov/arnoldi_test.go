package krylov

import (
	"math"
	"math/cmplx"
	"testing"
)

// denseMatVec turns a dense n x n matrix into a MatVec for testing.
func denseMatVec(A [][]complex128) MatVec {
	return func(v []complex128) []complex128 {
		n := len(A)
		out := make([]complex128, n)
		for i := 0; i < n; i++ {
			var acc complex128
			for j := 0; j < n; j++ {
				acc += A[i][j] * v[j]
			}
			out[i] = acc
		}
		return out
	}
}

func randomLikeMatrix(n int) [][]complex128 {
	A := make([][]complex128, n)
	seed := 1.0
	for i := range A {
		A[i] = make([]complex128, n)
		for j := range A[i] {
			seed = math.Mod(seed*48271, 2147483647)
			re := seed/2147483647 - 0.5
			seed = math.Mod(seed*48271, 2147483647)
			im := seed/2147483647 - 0.5
			A[i][j] = complex(re, im)
		}
	}
	return A
}

func matVecDirect(A [][]complex128, v []complex128) []complex128 {
	return denseMatVec(A)(v)
}

func TestOrthonormality(t *testing.T) {
	n, m := 10, 5
	A := randomLikeMatrix(n)
	b := make([]complex128, n)
	for i := range b {
		b[i] = complex(float64(i+1), 0)
	}

	res, err := Arnoldi(denseMatVec(A), b, m, Options{})
	if err != nil {
		t.Fatalf("Arnoldi: %v", err)
	}

	for i := 0; i < res.M; i++ {
		for j := 0; j < res.M; j++ {
			got := dot(res.V[i], res.V[j])
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(got-want) > 1e-9 {
				t.Errorf("<V[%d],V[%d]> = %v, want %v", i, j, got, want)
			}
		}
	}
}

// TestRecurrenceIdentity checks A*V[:,j] = V*H[:,j] for j = 0..m-2 (spec §8
// property 7): the recurrence only closes before the final column, since
// the final column's residual direction (V[:,m]) is never built.
func TestRecurrenceIdentity(t *testing.T) {
	n, m := 12, 6
	A := randomLikeMatrix(n)
	b := make([]complex128, n)
	for i := range b {
		b[i] = complex(1, float64(i)*0.1)
	}

	res, err := Arnoldi(denseMatVec(A), b, m, Options{})
	if err != nil {
		t.Fatalf("Arnoldi: %v", err)
	}

	for j := 0; j < res.M-1; j++ {
		lhs := matVecDirect(A, res.V[j])
		rhs := make([]complex128, n)
		for i := 0; i <= j+1; i++ {
			h := res.H[i][j]
			for k := 0; k < n; k++ {
				rhs[k] += h * res.V[i][k]
			}
		}
		var diff float64
		for k := 0; k < n; k++ {
			diff += cmplx.Abs(lhs[k] - rhs[k])
		}
		if diff > 1e-8 {
			t.Errorf("recurrence failed at column %d: total abs diff %.3g", j, diff)
		}
	}
}

func TestBreakdownTruncate(t *testing.T) {
	// An eigenvector seed collapses the Krylov subspace to dimension 1.
	n := 4
	A := make([][]complex128, n)
	for i := range A {
		A[i] = make([]complex128, n)
	}
	A[0][0], A[1][1], A[2][2], A[3][3] = 2, 3, 4, 5

	b := []complex128{1, 0, 0, 0}
	res, err := Arnoldi(denseMatVec(A), b, 3, Options{OnBreakdown: BreakdownTruncate})
	if err != nil {
		t.Fatalf("Arnoldi: %v", err)
	}
	if res.M != 1 {
		t.Errorf("M = %d, want 1 (eigenvector seed should break down immediately)", res.M)
	}
}

func TestBreakdownError(t *testing.T) {
	n := 4
	A := make([][]complex128, n)
	for i := range A {
		A[i] = make([]complex128, n)
	}
	A[0][0], A[1][1], A[2][2], A[3][3] = 2, 3, 4, 5

	b := []complex128{1, 0, 0, 0}
	_, err := Arnoldi(denseMatVec(A), b, 3, Options{OnBreakdown: BreakdownError})
	if err == nil {
		t.Error("expected breakdown error, got nil")
	}
}

func TestZeroSeed(t *testing.T) {
	n := 3
	A := randomLikeMatrix(n)
	b := make([]complex128, n)
	_, err := Arnoldi(denseMatVec(A), b, 2, Options{})
	if err != ErrZeroSeed {
		t.Errorf("err = %v, want ErrZeroSeed", err)
	}
}
