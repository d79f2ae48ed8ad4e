// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package det

import (
	"math/bits"

	"github.com/cpmech/gosl/chk"
)

// Excit describes a 1- or 2-electron connection between two determinants.
// From and To are ordered ascending over the first Nexcit entries. Perm is
// true when lining up the source and target orbitals with the determinants'
// sort order costs an odd permutation.
type Excit struct {
	Nexcit int    // excitation level: 0, 1 or 2
	From   [2]int // source orbitals, ascending
	To     [2]int // target orbitals, ascending
	Perm   bool   // odd permutation flag
}

// Sign returns -1.0 for an odd permutation and +1.0 otherwise
func (o Excit) Sign() float64 {
	if o.Perm {
		return -1
	}
	return 1
}

// Reverse returns the excitation mapping the target determinant back onto the
// source. The permutation parity is unchanged.
func (o Excit) Reverse() Excit {
	return Excit{Nexcit: o.Nexcit, From: o.To, To: o.From, Perm: o.Perm}
}

// singleParity counts the occupied orbitals a single excitation i->a hops over
func singleParity(d Det, i, a int) bool {
	lo, hi := i, a
	if lo > hi {
		lo, hi = hi, lo
	}
	return d.CountBetween(lo, hi)%2 == 1
}

// Parity computes the permutation flag of ex applied to d and returns a copy
// of ex with Perm set. Doubles are resolved as two sequential singles.
func Parity(d Det, ex Excit) Excit {
	switch ex.Nexcit {
	case 0:
		ex.Perm = false
	case 1:
		ex.Perm = singleParity(d, ex.From[0], ex.To[0])
	case 2:
		tmp := d.Clone()
		p := singleParity(tmp, ex.From[0], ex.To[0])
		tmp.Clear(ex.From[0])
		tmp.Set(ex.To[0])
		if singleParity(tmp, ex.From[1], ex.To[1]) {
			p = !p
		}
		ex.Perm = p
	default:
		chk.Panic("excitation level %d is invalid", ex.Nexcit)
	}
	return ex
}

// Apply builds the excited determinant. The excitation must already carry its
// parity (see Parity); source orbitals must be occupied and targets empty.
func Apply(d Det, ex Excit) Det {
	dnew := d.Clone()
	for k := 0; k < ex.Nexcit; k++ {
		if !dnew.Test(ex.From[k]) || dnew.Test(ex.To[k]) {
			chk.Panic("excitation %d->%d does not fit the determinant", ex.From[k], ex.To[k])
		}
		dnew.Clear(ex.From[k])
		dnew.Set(ex.To[k])
	}
	return dnew
}

// Level returns half the Hamming distance between two determinants; i.e. the
// excitation level connecting them
func Level(a, b Det) int {
	n := 0
	for i := range a {
		n += bits.OnesCount64(a[i] ^ b[i])
	}
	return n / 2
}

// Between extracts the excitation connecting a to b, including its parity.
// The excitation level must be at most 2.
func Between(a, b Det) (ex Excit) {
	var from, to [2]int
	nf, nt := 0, 0
	for iw := range a {
		x := a[iw] ^ b[iw]
		fw, tw := x&a[iw], x&b[iw]
		for fw != 0 {
			if nf == 2 {
				chk.Panic("determinants are more than doubly connected")
			}
			from[nf] = iw*WordBits + bits.TrailingZeros64(fw)
			nf++
			fw &= fw - 1
		}
		for tw != 0 {
			if nt == 2 {
				chk.Panic("determinants are more than doubly connected")
			}
			to[nt] = iw*WordBits + bits.TrailingZeros64(tw)
			nt++
			tw &= tw - 1
		}
	}
	chk.IntAssert(nf, nt)
	ex = Excit{Nexcit: nf, From: from, To: to}
	return Parity(a, ex)
}
