// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package det

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_encode01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("encode01. occupation round trip")

	occ := []int{0, 3, 5, 64, 70}
	d := Encode(occ, 72)
	chk.IntAssert(len(d), 2)
	chk.IntAssert(d.Count(), 5)
	chk.Ints(tst, "decode(encode(occ))", d.Decode(nil), occ)

	for _, i := range occ {
		if !d.Test(i) {
			tst.Errorf("orbital %d should be occupied", i)
		}
	}
	if d.Test(1) || d.Test(71) {
		tst.Errorf("unoccupied orbitals are set")
	}

	// rank selection walks the set bits in order
	for n, i := range occ {
		chk.IntAssert(d.NthSet(n), i)
	}
}

func Test_encode02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("encode02. spin decoding and double occupancy")

	// sites 0 and 2 doubly occupied, site 1 alpha only
	d := Encode([]int{0, 1, 2, 4, 5}, 6)
	alpha, beta := d.DecodeSpin(nil, nil)
	chk.Ints(tst, "alpha", alpha, []int{0, 2, 4})
	chk.Ints(tst, "beta", beta, []int{1, 5})

	bmask := BetaMask(6)
	chk.Ints(tst, "beta mask", bmask.Decode(nil), []int{1, 3, 5})
	chk.IntAssert(NumDoublyOcc(d, bmask), 2)
}

func Test_order01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("order01. comparison is a total order")

	a := Encode([]int{0, 1}, 130)
	b := Encode([]int{0, 129}, 130)
	c := Encode([]int{0, 129}, 130)
	chk.IntAssert(a.Compare(b), -1)
	chk.IntAssert(b.Compare(a), 1)
	chk.IntAssert(b.Compare(c), 0)
	if !b.Equal(c) {
		tst.Errorf("equal determinants compare different")
	}
}

func Test_excit01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("excit01. single excitation parity")

	// D = |0 2 3 5>; 2 -> 6 hops over orbitals 3 and 5
	d := Encode([]int{0, 2, 3, 5}, 8)
	ex := Parity(d, Excit{Nexcit: 1, From: [2]int{2}, To: [2]int{6}})
	if ex.Perm {
		tst.Errorf("parity of 2->6 over two occupied orbitals must be even")
	}

	// 2 -> 4 hops over orbital 3 only
	ex = Parity(d, Excit{Nexcit: 1, From: [2]int{2}, To: [2]int{4}})
	if !ex.Perm {
		tst.Errorf("parity of 2->4 over one occupied orbital must be odd")
	}
}

func Test_excit02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("excit02. apply/reverse round trip")

	d := Encode([]int{0, 1, 4, 5, 8}, 12)
	cases := []Excit{
		{Nexcit: 1, From: [2]int{4}, To: [2]int{10}},
		{Nexcit: 2, From: [2]int{1, 5}, To: [2]int{3, 7}},
		{Nexcit: 2, From: [2]int{0, 8}, To: [2]int{2, 11}},
	}
	for _, ex := range cases {
		ex = Parity(d, ex)
		dnew := Apply(d, ex)
		chk.IntAssert(dnew.Count(), d.Count())
		chk.IntAssert(Level(d, dnew), ex.Nexcit)

		rev := Parity(dnew, ex.Reverse())
		back := Apply(dnew, rev)
		if !back.Equal(d) {
			tst.Errorf("reverse excitation does not recover the determinant")
		}

		// forward and reverse parities multiply to +1
		if ex.Perm != rev.Perm {
			tst.Errorf("parity product of forward and reverse must be +1")
		}
	}
}

func Test_excit03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("excit03. extraction of the connecting excitation")

	a := Encode([]int{0, 1, 4, 5}, 10)
	ex := Parity(a, Excit{Nexcit: 2, From: [2]int{1, 4}, To: [2]int{3, 8}})
	b := Apply(a, ex)

	got := Between(a, b)
	io.Pforan("ex = %+v\n", got)
	chk.IntAssert(got.Nexcit, 2)
	chk.Ints(tst, "from", got.From[:], ex.From[:])
	chk.Ints(tst, "to", got.To[:], ex.To[:])
	if got.Perm != ex.Perm {
		tst.Errorf("extracted parity disagrees with the constructed one")
	}

	chk.IntAssert(Level(a, a), 0)
	chk.IntAssert(Level(a, b), 2)
}
