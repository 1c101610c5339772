// Package krylov builds an orthonormal Krylov basis V and the upper
// Hessenberg projection H of an operator A against a seed vector b, via a
// single modified-Gram-Schmidt Arnoldi pass (spec §4.2).
//
// The operator is supplied as a matrix-vector product, MatVec, so callers
// never need to materialize A densely — this is what lets
// internal/phi.KrylovMV approximate φ_j(A)b for A too large to exponentiate
// directly.
package krylov
