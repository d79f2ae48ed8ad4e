// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"math"
	"math/rand"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// GroundState computes the lowest eigenvalue of a symmetric CSR matrix by the
// Lanczos recurrence with full reorthogonalisation. The start vector is drawn
// from the given seed so runs are reproducible.
func GroundState(m *CSR, maxit int, tol float64, seed int64) (e0 float64, err error) {
	if !m.Symmetric {
		return 0, chk.Err("Lanczos needs symmetric storage")
	}
	n := m.Nrow
	if maxit > n {
		maxit = n
	}
	if maxit < 1 {
		return 0, chk.Err("maxit must be positive")
	}

	// Krylov basis and tridiagonal coefficients
	V := la.MatAlloc(maxit, n)
	alpha := make([]float64, maxit)
	beta := make([]float64, maxit)
	w := make([]float64, n)

	// normalised random start vector
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		V[0][i] = rng.Float64() - 0.5
	}
	scale(V[0], 1/la.VecNorm(V[0]))

	prev := math.Inf(1)
	for k := 0; k < maxit; k++ {
		if err = SymVecMul(w, m, V[k]); err != nil {
			return
		}
		alpha[k] = dot(w, V[k])

		// converged or exhausted subspace: diagonalise the current tridiagonal
		e0 = tridiagMin(alpha[:k+1], beta[:k])
		if math.Abs(e0-prev) < tol || k == maxit-1 {
			return e0, nil
		}
		prev = e0

		// w <- w - alpha_k v_k - beta_{k-1} v_{k-1}, then reorthogonalise
		axpy(w, -alpha[k], V[k])
		if k > 0 {
			axpy(w, -beta[k-1], V[k-1])
		}
		for r := 0; r <= k; r++ {
			axpy(w, -dot(w, V[r]), V[r])
		}
		beta[k] = la.VecNorm(w)
		if beta[k] < 1e-14 {
			return e0, nil // invariant subspace
		}
		for i := 0; i < n; i++ {
			V[k+1][i] = w[i] / beta[k]
		}
	}
	return
}

// tridiagMin returns the lowest eigenvalue of the symmetric tridiagonal
// (alpha on the diagonal, beta on the off-diagonals)
func tridiagMin(alpha, beta []float64) float64 {
	k := len(alpha)
	t := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		t.SetSym(i, i, alpha[i])
		if i < k-1 {
			t.SetSym(i, i+1, beta[i])
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(t, false) {
		chk.Panic("tridiagonal eigendecomposition failed")
	}
	vals := eig.Values(nil)
	e0 := vals[0]
	for _, v := range vals[1:] {
		if v < e0 {
			e0 = v
		}
	}
	return e0
}

func dot(a, b []float64) (s float64) {
	for i, v := range a {
		s += v * b[i]
	}
	return
}

func axpy(y []float64, a float64, x []float64) {
	for i := range y {
		y[i] += a * x[i]
	}
}

func scale(x []float64, a float64) {
	for i := range x {
		x[i] *= a
	}
}
