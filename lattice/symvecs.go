// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

// TranslationalSymVecs enumerates the distinct non-zero translation vectors
// obtained as sums of one, two or three lattice basis vectors. Sums that
// reproduce an earlier vector or the identity are dropped, so the list is
// duplicate-free by construction, and the fixed enumeration order (for each
// basis vector in turn: the vector itself, then its pairs and triples with
// itself and the later vectors) keeps runs reproducible without a final sort.
func TranslationalSymVecs(vecs [][]int) (out [][]int) {
	if len(vecs) == 0 {
		return
	}
	ndim := len(vecs[0])

	// components are bounded by three times the largest basis entry, so each
	// vector packs into one integer key for the duplicate check
	bound := 1
	for _, v := range vecs {
		for _, x := range v {
			if x < 0 {
				x = -x
			}
			if 3*x >= bound {
				bound = 3*x + 1
			}
		}
	}
	base := 2*bound + 1
	seen := make(map[int]bool)
	add := func(coef []int) {
		v := make([]int, ndim)
		key, zero := 0, true
		for d := ndim - 1; d >= 0; d-- {
			for k, c := range coef {
				v[d] += c * vecs[k][d]
			}
			if v[d] != 0 {
				zero = false
			}
			key = key*base + v[d] + bound
		}
		if zero || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, v)
	}

	nv := len(vecs)
	coef := make([]int, nv)
	// singles, pairs and triples of basis vectors, with repetition
	for i := 0; i < nv; i++ {
		for k := range coef {
			coef[k] = 0
		}
		coef[i] = 1
		add(coef)
		for j := i; j < nv; j++ {
			coef[j]++
			add(coef)
			for k := j; k < nv; k++ {
				coef[k]++
				add(coef)
				coef[k]--
			}
			coef[j]--
		}
	}
	return
}
