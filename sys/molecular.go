// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/sym"
)

// Integrals stores the one- and two-electron integrals of a molecular system
// over spatial orbitals, with the full 8-fold permutational symmetry of real
// orbitals. Two-electron integrals follow the Mulliken (ij|kl) convention, as
// they would arrive from an FCIDUMP producer.
type Integrals struct {
	Norb   int       // number of spatial orbitals
	Ecore  float64   // nuclear repulsion / frozen-core energy
	OrbSym []int     // irrep label per spatial orbital
	h      []float64 // packed lower triangle of h_ij
	v      []float64 // packed canonical (ij|kl)
}

// NewIntegrals allocates an empty integral store; orbsym may be nil for C1
func NewIntegrals(norb int, ecore float64, orbsym []int) (o *Integrals) {
	if norb < 1 {
		chk.Panic("integral store needs at least one orbital")
	}
	if orbsym == nil {
		orbsym = make([]int, norb)
	}
	if len(orbsym) != norb {
		chk.Panic("ORBSYM length %d does not match NORB = %d", len(orbsym), norb)
	}
	o = &Integrals{Norb: norb, Ecore: ecore, OrbSym: orbsym}
	np := norb * (norb + 1) / 2
	o.h = make([]float64, np)
	o.v = make([]float64, np*(np+1)/2)
	return
}

func pairIdx(i, j int) int {
	if i < j {
		i, j = j, i
	}
	return i*(i+1)/2 + j
}

// Set1 stores h_ij
func (o *Integrals) Set1(i, j int, val float64) { o.h[pairIdx(i, j)] = val }

// Get1 returns h_ij
func (o *Integrals) Get1(i, j int) float64 { return o.h[pairIdx(i, j)] }

// Set2 stores (ij|kl)
func (o *Integrals) Set2(i, j, k, l int, val float64) {
	o.v[pairIdx(pairIdx(i, j), pairIdx(k, l))] = val
}

// Get2 returns (ij|kl)
func (o *Integrals) Get2(i, j, k, l int) float64 {
	return o.v[pairIdx(pairIdx(i, j), pairIdx(k, l))]
}

// Molecular implements an ab-initio Hamiltonian over the spin-orbital basis
// built from an integral store: spatial orbital p owns spin-orbitals 2p
// (alpha) and 2p+1 (beta)
type Molecular struct {
	Ints *Integrals
	PG   *sym.Table // point-group product table
	nel  int
	occ  []int // scratch
}

// add system to factory
func init() {
	allocators["molecular"] = func() System { return new(Molecular) }
}

// Init initialises the system; the optional parameter "nsym" fixes the number
// of irreps (default 8, D2h)
func (o *Molecular) Init(def *Def, prms fun.Prms) (err error) {
	if def.Ints == nil {
		return chk.Err("molecular: integral store is missing")
	}
	o.Ints = def.Ints
	o.nel = def.NEl
	nsym := 8
	for _, p := range prms {
		switch p.N {
		case "nsym":
			nsym = int(p.V)
		default:
			return chk.Err("molecular: parameter named %q is incorrect", p.N)
		}
	}
	o.PG = sym.NewPointGroup(nsym)
	for _, s := range o.Ints.OrbSym {
		if s < 0 || s >= nsym {
			return chk.Err("molecular: ORBSYM label %d is outside [0,%d)", s, nsym)
		}
	}
	return
}

func (o *Molecular) Name() string { return "molecular" }
func (o *Molecular) NBasis() int  { return 2 * o.Ints.Norb }
func (o *Molecular) NEl() int     { return o.nel }

// SymOf returns the irrep label of a spin-orbital
func (o *Molecular) SymOf(i int) int { return o.Ints.OrbSym[i/2] }

// OneEInt evaluates <i|h|j> over spin-orbitals
func (o *Molecular) OneEInt(i, j int) float64 {
	if i%2 != j%2 {
		return 0
	}
	return o.Ints.Get1(i/2, j/2)
}

// Diag computes <D|H|D> by the Slater-Condon rule for zero excitations
func (o *Molecular) Diag(d det.Det) (v float64) {
	o.occ = d.Decode(o.occ)
	v = o.Ints.Ecore
	for n, i := range o.occ {
		p := i / 2
		v += o.Ints.Get1(p, p)
		for _, j := range o.occ[:n] {
			q := j / 2
			v += o.Ints.Get2(p, p, q, q)
			if i%2 == j%2 {
				v -= o.Ints.Get2(p, q, p, q)
			}
		}
	}
	return
}

// OffDiag dispatches the Slater-Condon rules for one and two excitations
func (o *Molecular) OffDiag(d det.Det, ex det.Excit) float64 {
	switch ex.Nexcit {
	case 1:
		return o.slaterCondon1(d, ex)
	case 2:
		return o.slaterCondon2(ex)
	}
	return 0
}

// slaterCondon1 evaluates sign * ( h_ia + sum_k [ <ik|ak> - <ik|ka> ] )
func (o *Molecular) slaterCondon1(d det.Det, ex det.Excit) float64 {
	i, a := ex.From[0], ex.To[0]
	if i%2 != a%2 {
		return 0
	}
	p, r := i/2, a/2
	v := o.Ints.Get1(p, r)
	o.occ = d.Decode(o.occ)
	for _, k := range o.occ {
		if k == i {
			continue
		}
		q := k / 2
		v += o.Ints.Get2(p, r, q, q)
		if k%2 == i%2 {
			v -= o.Ints.Get2(p, q, r, q)
		}
	}
	return ex.Sign() * v
}

// slaterCondon2 evaluates sign * ( <ij|ab> - <ij|ba> )
func (o *Molecular) slaterCondon2(ex det.Excit) float64 {
	i, j := ex.From[0], ex.From[1]
	a, b := ex.To[0], ex.To[1]
	var v float64
	if i%2 == a%2 && j%2 == b%2 {
		v += o.Ints.Get2(i/2, a/2, j/2, b/2)
	}
	if i%2 == b%2 && j%2 == a%2 {
		v -= o.Ints.Get2(i/2, b/2, j/2, a/2)
	}
	return ex.Sign() * v
}
