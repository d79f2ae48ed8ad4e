// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package excit

import (
	"math/rand"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/sys"
)

// Molecular draws singles and doubles with point-group symmetry. With Renorm
// the draws are restricted to orbitals that can complete an excitation, at
// O(N) pre-scan cost per attempt; without it disallowed draws return the null
// excitation, trading sampling efficiency for O(1) generator cost.
type Molecular struct {
	S       *sys.Molecular
	PSingle float64 // probability of attempting a single
	Renorm  bool

	lists  [][][]int // spin-orbitals per [irrep][spin], ascending
	pool   []int     // every spin-orbital
	spool  [][]int   // spin-orbitals per spin
	cand   []int     // scratch: viable sources or targets
	navail []int     // scratch: partner counts parallel to cand
}

// NewMolecular returns the generator
func NewMolecular(s *sys.Molecular, psingle float64, renorm bool) (o *Molecular) {
	if s == nil {
		chk.Panic("molecular generator needs a molecular system")
	}
	if psingle < 0 || psingle > 1 {
		chk.Panic("pattempt_single must lie in [0,1]. %g is invalid", psingle)
	}
	o = &Molecular{S: s, PSingle: psingle, Renorm: renorm}
	nsym := s.PG.Nsym
	o.lists = make([][][]int, nsym)
	for m := 0; m < nsym; m++ {
		o.lists[m] = make([][]int, 2)
	}
	o.spool = make([][]int, 2)
	for i := 0; i < s.NBasis(); i++ {
		m, sp := s.SymOf(i), i%2
		o.lists[m][sp] = append(o.lists[m][sp], i)
		o.spool[sp] = append(o.spool[sp], i)
		o.pool = append(o.pool, i)
	}
	return
}

// Gen splits the attempt between singles and doubles by PSingle
func (o *Molecular) Gen(rng *rand.Rand, d det.Det, occ *Occ) Result {
	if rng.Float64() < o.PSingle {
		if o.Renorm {
			return o.singleRenorm(rng, d, occ)
		}
		return o.single(rng, d, occ)
	}
	if o.Renorm {
		return o.doubleRenorm(rng, d, occ)
	}
	return o.double(rng, d, occ)
}

// countAvail counts the unoccupied entries of list, skipping orbital skip
func countAvail(d det.Det, list []int, skip int) (n int) {
	for _, x := range list {
		if x != skip && !d.Test(x) {
			n++
		}
	}
	return
}

// drawAvail picks the r-th (0-based) unoccupied entry of list, skipping skip
func drawAvail(d det.Det, list []int, skip, r int) int {
	for _, x := range list {
		if x != skip && !d.Test(x) {
			if r == 0 {
				return x
			}
			r--
		}
	}
	chk.Panic("rank %d exceeds the available orbitals", r)
	return -1
}

// singleRenorm pre-scans the occupied orbitals for those with at least one
// symmetry-allowed virtual
func (o *Molecular) singleRenorm(rng *rand.Rand, d det.Det, occ *Occ) Result {
	o.cand, o.navail = o.cand[:0], o.navail[:0]
	for _, i := range occ.All {
		if n := countAvail(d, o.lists[o.S.SymOf(i)][i%2], -1); n > 0 {
			o.cand = append(o.cand, i)
			o.navail = append(o.navail, n)
		}
	}
	if len(o.cand) == 0 {
		return Null()
	}
	idx := rng.Intn(len(o.cand))
	i, ni := o.cand[idx], o.navail[idx]
	a := drawAvail(d, o.lists[o.S.SymOf(i)][i%2], -1, rng.Intn(ni))
	return o.finish1(d, i, a, o.PSingle/float64(len(o.cand)*ni))
}

// single is the O(1) variant: disallowed draws are null excitations
func (o *Molecular) single(rng *rand.Rand, d det.Det, occ *Occ) Result {
	nel := len(occ.All)
	i := occ.All[rng.Intn(nel)]
	list := o.lists[o.S.SymOf(i)][i%2]
	if len(list) == 0 {
		return Null()
	}
	a := list[rng.Intn(len(list))]
	if d.Test(a) {
		return Null()
	}
	return o.finish1(d, i, a, o.PSingle/float64(nel*len(list)))
}

// doubleRenorm pre-scans the viable first targets of the drawn source pair
func (o *Molecular) doubleRenorm(rng *rand.Rand, d det.Det, occ *Occ) Result {
	if len(occ.All) < 2 {
		return Null()
	}
	oi, oj, ntri := drawPair(rng, occ)
	ijsym := o.S.PG.Mul(o.S.SymOf(oi), o.S.SymOf(oj))
	ijspin := oi%2 + oj%2

	// viable a: virtual, spin-allowed, with at least one free partner b
	o.cand, o.navail = o.cand[:0], o.navail[:0]
	for _, aspin := range spinsOf(ijspin) {
		for _, list := range o.listsOfSpin(aspin) {
			for _, a := range list {
				if d.Test(a) {
					continue
				}
				if n := o.partnerCount(d, ijsym, ijspin, a); n > 0 {
					o.cand = append(o.cand, a)
					o.navail = append(o.navail, n)
				}
			}
		}
	}
	if len(o.cand) == 0 {
		return Null()
	}
	idx := rng.Intn(len(o.cand))
	a, nbA := o.cand[idx], o.navail[idx]
	b := drawAvail(d, o.partnerList(ijsym, ijspin, a), a, rng.Intn(nbA))
	nbB := o.partnerCount(d, ijsym, ijspin, b)

	// the pair (a,b) can arise from either draw order
	pgen := (1 - o.PSingle) * 2 / float64(ntri*2*len(o.cand)) *
		(1/float64(nbA) + 1/float64(nbB))
	return o.finish2(d, oi, oj, a, b, pgen)
}

// double is the O(1) variant
func (o *Molecular) double(rng *rand.Rand, d det.Det, occ *Occ) Result {
	if len(occ.All) < 2 {
		return Null()
	}
	oi, oj, ntri := drawPair(rng, occ)
	ijsym := o.S.PG.Mul(o.S.SymOf(oi), o.S.SymOf(oj))
	ijspin := oi%2 + oj%2

	pool := o.pool
	if ijspin != 1 {
		pool = o.spool[ijspin/2]
	}
	a := pool[rng.Intn(len(pool))]
	if d.Test(a) {
		return Null()
	}
	blist := o.partnerList(ijsym, ijspin, a)
	if len(blist) == 0 {
		return Null()
	}
	b := blist[rng.Intn(len(blist))]
	if b == a || d.Test(b) {
		return Null()
	}
	alist := o.lists[o.S.SymOf(a)][a%2]
	pgen := (1 - o.PSingle) * 2 / float64(ntri*2*len(pool)) *
		(1/float64(len(blist)) + 1/float64(len(alist)))
	return o.finish2(d, oi, oj, a, b, pgen)
}

// partnerList returns the orbitals that can complete the pair symmetry and
// spin once the first target is fixed
func (o *Molecular) partnerList(ijsym, ijspin, a int) []int {
	bsym := o.S.PG.Mul(ijsym, o.S.PG.Inv[o.S.SymOf(a)])
	return o.lists[bsym][ijspin-a%2]
}

// partnerCount counts the free partners of a
func (o *Molecular) partnerCount(d det.Det, ijsym, ijspin, a int) int {
	return countAvail(d, o.partnerList(ijsym, ijspin, a), a)
}

// listsOfSpin returns the per-irrep orbital lists of one spin
func (o *Molecular) listsOfSpin(spin int) (out [][]int) {
	for m := 0; m < o.S.PG.Nsym; m++ {
		if l := o.lists[m][spin]; len(l) > 0 {
			out = append(out, l)
		}
	}
	return
}

// spinsOf lists the allowed spins of the first target
func spinsOf(ijspin int) []int {
	if ijspin == 1 {
		return []int{0, 1}
	}
	return []int{ijspin / 2}
}

// drawPair picks an unordered occupied pair by lower-triangular decoding
func drawPair(rng *rand.Rand, occ *Occ) (oi, oj, ntri int) {
	nel := len(occ.All)
	ntri = nel * (nel - 1) / 2
	p := rng.Intn(ntri)
	jidx := 1
	for p >= jidx {
		p -= jidx
		jidx++
	}
	return occ.All[p], occ.All[jidx], ntri
}

func (o *Molecular) finish1(d det.Det, i, a int, pgen float64) Result {
	ex := det.Parity(d, det.Excit{Nexcit: 1, From: [2]int{i}, To: [2]int{a}})
	return Result{Exc: ex, DNew: det.Apply(d, ex), PGen: pgen, Hij: o.S.OffDiag(d, ex), Allowed: true}
}

func (o *Molecular) finish2(d det.Det, i, j, a, b int, pgen float64) Result {
	ex := det.Parity(d, det.Excit{Nexcit: 2, From: orderPair(i, j), To: orderPair(a, b)})
	return Result{Exc: ex, DNew: det.Apply(d, ex), PGen: pgen, Hij: o.S.OffDiag(d, ex), Allowed: true}
}
