package phi_test

import (
	"math"
	"math/cmplx"

	"github.com/halvard-os/rkcore/internal/krylov"
	"github.com/halvard-os/rkcore/internal/phi"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Scalar", func() {
	// Property 5: phi_0(z) always reduces to e^z.
	It("matches exp at a handful of points", func() {
		for _, z := range []float64{0, 1, -1, 2.5} {
			cols, err := phi.Scalar(z, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(cols[0]).To(BeNumerically("~", math.Exp(z), 1e-9))
		}
	})

	// Property 6: the phi recurrence phi_{k+1}(z)*z = phi_k(z) - 1/k!
	// holds across consecutive orders.
	It("satisfies the phi recurrence away from z=0", func() {
		z := 1.3
		cols, err := phi.Scalar(z, 4)
		Expect(err).NotTo(HaveOccurred())

		fact := 1.0
		for k := 0; k < 4; k++ {
			lhs := cols[k+1] * z
			rhs := cols[k] - 1/fact
			Expect(lhs).To(BeNumerically("~", rhs, 1e-8))
			fact *= float64(k + 1)
		}
	})

	// S4: phi_k(0) = 1/k! for every order (the z -> 0 removable-singularity
	// case the recurrence's own division by z can't evaluate directly).
	It("reduces to 1/k! at the origin (S4)", func() {
		cols, err := phi.Scalar(0.0, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(cols[0]).To(BeNumerically("~", 1.0, 1e-10))
		Expect(cols[1]).To(BeNumerically("~", 1.0, 1e-10))
		Expect(cols[2]).To(BeNumerically("~", 0.5, 1e-10))
		Expect(cols[3]).To(BeNumerically("~", 1.0/6.0, 1e-10))
	})

	// S5: phi_1(1) = e - 1.
	It("evaluates phi_1(1) = e - 1 (S5)", func() {
		cols, err := phi.Scalar(1.0, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(cols[1]).To(BeNumerically("~", math.E-1, 1e-9))
	})

	It("works over complex128 too", func() {
		z := complex(0.0, math.Pi)
		cols, err := phi.Scalar(z, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmplx.Abs(cols[0]-cmplx.Exp(z))).To(BeNumerically("<", 1e-9))
	})
})

var _ = Describe("Dense", func() {
	It("reduces phi_0(A) to exp(A) for a 2x2 real matrix", func() {
		A := [][]float64{{0, 1}, {-1, 0}}
		get := func(i, j int) float64 { return A[i][j] }
		v := []float64{1, 0}

		cols, err := phi.Dense[float64](get, 2, v, 0)
		Expect(err).NotTo(HaveOccurred())
		// exp([[0,1],[-1,0]]) * [1,0] = [cos(1), -sin(1)]
		Expect(cols[0][0]).To(BeNumerically("~", math.Cos(1), 1e-8))
		Expect(cols[0][1]).To(BeNumerically("~", -math.Sin(1), 1e-8))
	})

	It("matches KrylovMV when the Krylov subspace spans the whole space (property 8)", func() {
		n := 4
		A := [][]complex128{
			{2, 1, 0, 0},
			{0, 2, 1, 0},
			{0, 0, 2, 1},
			{0, 0, 0, 2},
		}
		get := func(i, j int) complex128 { return A[i][j] }
		b := []complex128{0, 0, 0, 1}

		dense, err := phi.Dense[complex128](get, n, b, 2)
		Expect(err).NotTo(HaveOccurred())

		matvec := func(v []complex128) []complex128 {
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

		// S6: Krylov projection with a full-dimensional subspace.
		kry, err := phi.KrylovMV(matvec, b, 2, n, krylov.Options{})
		Expect(err).NotTo(HaveOccurred())

		for k := 0; k <= 2; k++ {
			for i := 0; i < n; i++ {
				Expect(cmplx.Abs(dense[k][i]-kry[k][i])).To(BeNumerically("<", 1e-6))
			}
		}
	})
})
