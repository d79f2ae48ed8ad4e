// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sym implements Abelian symmetry cross-product tables
package sym

import (
	"github.com/cpmech/gosl/chk"
)

// Table holds the group product table and inverses of an Abelian symmetry
// group; labels are indices in [0,Nsym). Immutable after construction.
type Table struct {
	Nsym int     // number of irreps / momentum labels
	Prod [][]int // Prod[i][j] = label of i * j
	Inv  []int   // Inv[i] = label of the inverse of i
}

// Mul returns the product label of a and b
func (o *Table) Mul(a, b int) int {
	return o.Prod[a][b]
}

// NewPointGroup builds the table of an Abelian point group with nsym irreps
// encoded in the usual XOR convention (D2h and subgroups). nsym must be a
// power of two.
func NewPointGroup(nsym int) (o *Table) {
	if nsym < 1 || nsym&(nsym-1) != 0 {
		chk.Panic("number of irreps must be a power of two. nsym = %d is invalid", nsym)
	}
	o = &Table{Nsym: nsym}
	o.Prod = make([][]int, nsym)
	o.Inv = make([]int, nsym)
	for i := 0; i < nsym; i++ {
		o.Prod[i] = make([]int, nsym)
		for j := 0; j < nsym; j++ {
			o.Prod[i][j] = i ^ j
		}
		o.Inv[i] = i // every element of an XOR group is its own inverse
	}
	return
}

// NewFromSum builds the table of the translation group of a periodic lattice:
// labels index the kvecs list and the product is component-wise addition
// modulo the supercell dimensions dims.
func NewFromSum(kvecs [][]int, dims []int) (o *Table) {
	if len(kvecs) < 1 {
		chk.Panic("momentum table needs at least one wavevector")
	}
	idx := make(map[string]int)
	for i, k := range kvecs {
		idx[keyOf(k, dims)] = i
	}
	n := len(kvecs)
	o = &Table{Nsym: n}
	o.Prod = make([][]int, n)
	o.Inv = make([]int, n)
	sum := make([]int, len(dims))
	for i := 0; i < n; i++ {
		o.Prod[i] = make([]int, n)
		for j := 0; j < n; j++ {
			for d := range dims {
				sum[d] = kvecs[i][d] + kvecs[j][d]
			}
			p, ok := idx[keyOf(sum, dims)]
			if !ok {
				chk.Panic("wavevector list is not closed under addition")
			}
			o.Prod[i][j] = p
		}
		for d := range dims {
			sum[d] = -kvecs[i][d]
		}
		p, ok := idx[keyOf(sum, dims)]
		if !ok {
			chk.Panic("wavevector list is not closed under negation")
		}
		o.Inv[i] = p
	}
	return
}

// keyOf canonicalises a wavevector modulo the supercell dimensions
func keyOf(k, dims []int) (s string) {
	b := make([]byte, 0, 2*len(k))
	for d, v := range k {
		m := v % dims[d]
		if m < 0 {
			m += dims[d]
		}
		b = append(b, byte(m), ':')
	}
	return string(b)
}
