// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package det implements bit-string Slater determinants and the excitation algebra
//
//  A determinant is a packed occupation bit string over spin-orbitals. Spin-orbitals
//  are indexed from 0; even indices are alpha (up) and odd indices are beta (down).
//  Spatial site s owns spin-orbitals 2s and 2s+1. Orbital o lives in bit o%64 of
//  word o/64; this layout is externally observable through restart snapshots.
package det

import (
	"math/bits"

	"github.com/cpmech/gosl/chk"
)

// WordBits is the fixed machine-word width of the packed representation
const WordBits = 64

// Det holds the packed occupation bit string of one determinant. Values are
// created by Encode or ApplyExcitation and never mutated in place afterwards.
type Det []uint64

// NumWords returns the number of 64-bit words needed for nbasis spin-orbitals
func NumWords(nbasis int) int {
	return (nbasis + WordBits - 1) / WordBits
}

// New allocates an empty determinant for nbasis spin-orbitals
func New(nbasis int) Det {
	return make(Det, NumWords(nbasis))
}

// Encode packs an ascending list of occupied spin-orbitals
func Encode(occ []int, nbasis int) (o Det) {
	o = New(nbasis)
	for _, i := range occ {
		if i < 0 || i >= nbasis {
			chk.Panic("orbital %d is outside the basis [0,%d)", i, nbasis)
		}
		o.Set(i)
	}
	return
}

// Set sets the bit of orbital i
func (o Det) Set(i int) {
	o[i/WordBits] |= 1 << uint(i%WordBits)
}

// Clear clears the bit of orbital i
func (o Det) Clear(i int) {
	o[i/WordBits] &^= 1 << uint(i%WordBits)
}

// Test reports whether orbital i is occupied
func (o Det) Test(i int) bool {
	return o[i/WordBits]&(1<<uint(i%WordBits)) != 0
}

// Count returns the number of occupied orbitals
func (o Det) Count() (n int) {
	for _, w := range o {
		n += bits.OnesCount64(w)
	}
	return
}

// Clone returns an independent copy
func (o Det) Clone() Det {
	d := make(Det, len(o))
	copy(d, o)
	return d
}

// Equal compares two determinants of the same basis
func (o Det) Equal(d Det) bool {
	for i, w := range o {
		if w != d[i] {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or +1 ordering determinants lexicographically from the
// most significant word. Any total order works for the annihilation sort-merge;
// this one is fixed so that restart files sort identically across runs.
func (o Det) Compare(d Det) int {
	for i := len(o) - 1; i >= 0; i-- {
		switch {
		case o[i] < d[i]:
			return -1
		case o[i] > d[i]:
			return 1
		}
	}
	return 0
}

// Decode appends the occupied orbitals, ascending, to buf and returns it
func (o Det) Decode(buf []int) []int {
	buf = buf[:0]
	for iw, w := range o {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			buf = append(buf, iw*WordBits+b)
			w &= w - 1
		}
	}
	return buf
}

// DecodeSpin appends the occupied alpha (even) and beta (odd) orbitals to the
// given buffers and returns them
func (o Det) DecodeSpin(alpha, beta []int) ([]int, []int) {
	alpha, beta = alpha[:0], beta[:0]
	for iw, w := range o {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			i := iw*WordBits + b
			if i%2 == 0 {
				alpha = append(alpha, i)
			} else {
				beta = append(beta, i)
			}
			w &= w - 1
		}
	}
	return alpha, beta
}

// NthSet returns the orbital of the n-th (0-based) set bit, ascending.
// It panics if fewer than n+1 bits are set.
func (o Det) NthSet(n int) int {
	for iw, w := range o {
		c := bits.OnesCount64(w)
		if n < c {
			for ; n > 0; n-- {
				w &= w - 1
			}
			return iw*WordBits + bits.TrailingZeros64(w)
		}
		n -= c
	}
	chk.Panic("rank %d exceeds the number of set bits", n)
	return -1
}

// CountBetween counts occupied orbitals strictly between lo and hi (lo < hi)
func (o Det) CountBetween(lo, hi int) (n int) {
	for i := lo + 1; i < hi; i++ {
		if o.Test(i) {
			n++
		}
	}
	return
}

// AndNot stores ^mask & d into o (o must have the same length)
func (o Det) AndNot(d, mask Det) {
	for i := range o {
		o[i] = d[i] &^ mask[i]
	}
}

// And stores a & b into o
func (o Det) And(a, b Det) {
	for i := range o {
		o[i] = a[i] & b[i]
	}
}

// Xor stores a ^ b into o
func (o Det) Xor(a, b Det) {
	for i := range o {
		o[i] = a[i] ^ b[i]
	}
}

// BetaMask returns the mask selecting beta (odd) spin-orbitals, with excess
// bits in the last word cleared
func BetaMask(nbasis int) (o Det) {
	o = New(nbasis)
	for i := 1; i < nbasis; i += 2 {
		o.Set(i)
	}
	return
}

// NumDoublyOcc counts the doubly occupied spatial sites of d: the beta bits are
// shifted onto their alpha partners and matched against d
func NumDoublyOcc(d, betaMask Det) (n int) {
	for i, w := range d {
		n += bits.OnesCount64((w & betaMask[i]) >> 1 & w)
	}
	return
}
