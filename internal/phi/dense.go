package phi

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNotSquare         = errors.New("phi: matrix dimension must be positive")
	ErrDimensionMismatch = errors.New("phi: vector length must match matrix dimension")
)

// Numeric is the element type phi operates over: real state (float64) or
// complex state (complex128), matching the uEltypeNoUnits duality of
// Design Notes §9 (there is no units library in play here, so the
// "no-units" element type is just T itself).
type Numeric interface {
	float64 | complex128
}

// Dense evaluates [phi_0(A)v, phi_1(A)v, ..., phi_k(A)v] for a small m x m
// operator A (given as an accessor, not a concrete matrix type, so callers
// can supply either a literal [][]T or a closure over a sparse structure)
// and a seed vector v, via Sidje's augmented matrix
//
//	M = [[A, v, 0, ..., 0],
//	     [0, 0, 1, ..., 0],
//	     [.....  ...  ..],
//	     [0, 0, 0, ..., 1],
//	     [0, 0, 0, ..., 0]]   (size (m+k) x (m+k))
//
// phi_0(A)v is not one of exp(M)'s columns — it is the top-left m x m
// block of exp(M) (which equals exp(A)) applied to v. phi_i(A)v for
// i=1..k is column m+i-1 of exp(M) (0-indexed), restricted to its first m
// rows.
//
// Every element — real or complex — is embedded as a 2x2 real block
// (a+bi -> [[a,-b],[b,a]]) before exponentiating, so the exponential
// itself is always computed by gonum's real (*mat.Dense).Exp. No complex
// matrix-exponential routine appears anywhere in the example pack, and
// this embedding is the standard way to get one without hand-rolling a
// scaling-and-squaring Pade approximation (see DESIGN.md).
func Dense[T Numeric](A func(i, j int) T, m int, v []T, k int) ([][]T, error) {
	if m <= 0 || k < 0 {
		return nil, ErrNotSquare
	}
	if len(v) != m {
		return nil, ErrDimensionMismatch
	}

	size := m + k
	get := func(i, j int) T {
		switch {
		case i < m && j < m:
			return A(i, j)
		case i < m && j == m:
			return v[i]
		case i >= m && j == i+1 && i <= size-2:
			return one[T]()
		default:
			return zero[T]()
		}
	}

	embedded := mat.NewDense(2*size, 2*size, nil)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			re, im := realImag(get(i, j))
			if re == 0 && im == 0 {
				continue
			}
			embedded.Set(2*i, 2*j, re)
			embedded.Set(2*i, 2*j+1, -im)
			embedded.Set(2*i+1, 2*j, im)
			embedded.Set(2*i+1, 2*j+1, re)
		}
	}

	var P mat.Dense
	P.Exp(embedded)

	out := make([][]T, k+1)

	// phi_0(A)v = P[0:m,0:m] * v — the top-left block is exp(A) itself, so
	// this is a plain complex matvec against the seed, not a column read.
	row0 := make([]T, m)
	for r := 0; r < m; r++ {
		var accRe, accIm float64
		for c := 0; c < m; c++ {
			pre, pim := P.At(2*r, 2*c), P.At(2*r+1, 2*c)
			vre, vim := realImag(v[c])
			accRe += pre*vre - pim*vim
			accIm += pre*vim + pim*vre
		}
		row0[r] = fromRealImag[T](accRe, accIm)
	}
	out[0] = row0

	for i := 1; i <= k; i++ {
		col := m + i - 1
		row := make([]T, m)
		for r := 0; r < m; r++ {
			re := P.At(2*r, 2*col)
			im := P.At(2*r+1, 2*col)
			row[r] = fromRealImag[T](re, im)
		}
		out[i] = row
	}
	return out, nil
}

// Scalar evaluates [phi_0(z), ..., phi_k(z)] for a single scalar z, as the
// m=1 specialization of Dense.
func Scalar[T Numeric](z T, k int) ([]T, error) {
	cols, err := Dense[T](func(i, j int) T { return z }, 1, []T{one[T]()}, k)
	if err != nil {
		return nil, err
	}
	out := make([]T, k+1)
	for i, c := range cols {
		out[i] = c[0]
	}
	return out, nil
}

// Matrix evaluates the matrix-valued phi_0(A)..phi_k(A) themselves (not
// just their action on one vector) by running Dense once per standard
// basis vector and assembling the columns.
func Matrix[T Numeric](A func(i, j int) T, m, k int) ([][][]T, error) {
	out := make([][][]T, k+1)
	for j := range out {
		out[j] = make([][]T, m)
		for i := range out[j] {
			out[j][i] = make([]T, m)
		}
	}
	for col := 0; col < m; col++ {
		e := make([]T, m)
		e[col] = one[T]()
		cols, err := Dense[T](A, m, e, k)
		if err != nil {
			return nil, err
		}
		for j := 0; j <= k; j++ {
			for row := 0; row < m; row++ {
				out[j][row][col] = cols[j][row]
			}
		}
	}
	return out, nil
}

func realImag[T Numeric](x T) (float64, float64) {
	switch v := any(x).(type) {
	case float64:
		return v, 0
	case complex128:
		return real(v), imag(v)
	}
	return 0, 0
}

func fromRealImag[T Numeric](re, im float64) T {
	var out any
	switch any(zero[T]()).(type) {
	case float64:
		out = re
	case complex128:
		out = complex(re, im)
	}
	return out.(T)
}

func zero[T Numeric]() T {
	var z T
	return z
}

func one[T Numeric]() T {
	var out any
	switch any(zero[T]()).(type) {
	case float64:
		out = 1.0
	case complex128:
		out = complex(1.0, 0.0)
	}
	return out.(T)
}
