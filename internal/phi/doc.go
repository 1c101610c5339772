// Package phi evaluates the phi-functions used by exponential integrators:
// phi_0(z) = e^z, phi_{k+1}(z) = (phi_k(z) - 1/k!) / z (spec §4.3, §4.4).
//
// Dense evaluates phi_0..phi_k(A)v for a small operator A via Sidje's
// augmented-matrix construction. KrylovMV evaluates the same quantities for
// an operator too large to exponentiate directly, by projecting onto an
// Arnoldi-built Krylov subspace first (internal/krylov) and running Dense
// on the small Hessenberg projection instead.
package phi
