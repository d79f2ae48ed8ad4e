// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package excit

import (
	"math/rand"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/lattice"
)

// hamiltonian is the slice of a system the generators need
type hamiltonian interface {
	OffDiag(d det.Det, ex det.Excit) float64
}

// RealSpace draws single excitations along the bonds of a lattice. It serves
// every real-space system sharing the connectivity tables: Hubbard,
// Heisenberg (spin flips) and Chung-Landau (spinless hops).
type RealSpace struct {
	S    hamiltonian
	Lat  *lattice.Tables
	virt det.Det // scratch
}

// NewRealSpace returns the generator
func NewRealSpace(s hamiltonian, lat *lattice.Tables) *RealSpace {
	if lat == nil {
		chk.Panic("real-space generator needs connectivity tables")
	}
	return &RealSpace{S: s, Lat: lat, virt: det.New(lat.Nbasis)}
}

// Gen draws an occupied orbital uniformly and one of its unoccupied
// neighbours uniformly. A fully blocked source orbital yields the null
// excitation so that p_gen = 1/(n_el n_v) stays unbiased.
func (o *RealSpace) Gen(rng *rand.Rand, d det.Det, occ *Occ) Result {
	nel := len(occ.All)
	i := occ.All[rng.Intn(nel)]
	o.virt.AndNot(o.Lat.ConnectedOrbs[i], d)
	nv := o.virt.Count()
	if nv == 0 {
		return Null()
	}
	a := o.virt.NthSet(rng.Intn(nv))
	ex := det.Parity(d, det.Excit{Nexcit: 1, From: [2]int{i}, To: [2]int{a}})
	return Result{
		Exc:     ex,
		DNew:    det.Apply(d, ex),
		PGen:    1 / float64(nel*nv),
		Hij:     o.S.OffDiag(d, ex),
		Allowed: true,
	}
}
