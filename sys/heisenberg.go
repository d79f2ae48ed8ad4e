// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/lattice"
)

// Heisenberg implements the spin-1/2 Heisenberg model H = -J sum_<ij> S_i.S_j
// on a lattice with one orbital per site; a set bit is an up spin. Matrix
// elements carry no fermionic signs.
type Heisenberg struct {
	Lat *lattice.Tables
	J   float64
	nup int
}

// add system to factory
func init() {
	allocators["heisenberg"] = func() System { return new(Heisenberg) }
}

// Init initialises the system
func (o *Heisenberg) Init(def *Def, prms fun.Prms) (err error) {
	if def.Lat == nil {
		return chk.Err("heisenberg: lattice tables are missing")
	}
	if def.Lat.SpinResolved {
		return chk.Err("heisenberg: lattice must have one orbital per site")
	}
	o.Lat = def.Lat
	o.nup = def.NEl
	o.J = 1
	for _, p := range prms {
		switch p.N {
		case "J":
			o.J = p.V
		default:
			return chk.Err("heisenberg: parameter named %q is incorrect", p.N)
		}
	}
	return
}

func (o *Heisenberg) Name() string { return "heisenberg" }
func (o *Heisenberg) NBasis() int  { return o.Lat.Nbasis }
func (o *Heisenberg) NEl() int     { return o.nup }

// Diag counts parallel and antiparallel bonds: -J/4 per parallel bond,
// +J/4 per antiparallel bond
func (o *Heisenberg) Diag(d det.Det) (v float64) {
	for a := 0; a < o.Lat.Nbasis; a++ {
		for _, b := range o.Lat.ConnectedSites[a][1:] {
			if b <= a {
				continue // each bond once
			}
			if d.Test(a) == d.Test(b) {
				v -= o.J / 4
			} else {
				v += o.J / 4
			}
		}
	}
	return
}

// OffDiag returns -J/2 for a spin flip along an antiparallel bond
func (o *Heisenberg) OffDiag(d det.Det, ex det.Excit) float64 {
	if ex.Nexcit != 1 {
		return 0
	}
	if !o.Lat.ConnectedOrbs[ex.From[0]].Test(ex.To[0]) {
		return 0
	}
	return -o.J / 2
}

// ChungLandau implements the Chung-Landau model: spinless fermions with
// hopping -t and nearest-neighbour repulsion U
type ChungLandau struct {
	Lat  *lattice.Tables
	T, U float64
	nel  int
	occ  []int // scratch
}

// add system to factory
func init() {
	allocators["chung_landau"] = func() System { return new(ChungLandau) }
}

// Init initialises the system
func (o *ChungLandau) Init(def *Def, prms fun.Prms) (err error) {
	if def.Lat == nil {
		return chk.Err("chung_landau: lattice tables are missing")
	}
	if def.Lat.SpinResolved {
		return chk.Err("chung_landau: lattice must have one orbital per site")
	}
	o.Lat = def.Lat
	o.nel = def.NEl
	o.T = 1
	for _, p := range prms {
		switch p.N {
		case "t":
			o.T = p.V
		case "U":
			o.U = p.V
		default:
			return chk.Err("chung_landau: parameter named %q is incorrect", p.N)
		}
	}
	return
}

func (o *ChungLandau) Name() string { return "chung_landau" }
func (o *ChungLandau) NBasis() int  { return o.Lat.Nbasis }
func (o *ChungLandau) NEl() int     { return o.nel }

// OneEInt evaluates <i|T|j> with both Tmat directions tested independently
func (o *ChungLandau) OneEInt(i, j int) (v float64) {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	if o.Lat.Tmat[lo].Test(hi) {
		v -= o.T
	}
	if o.Lat.Tmat[hi].Test(lo) {
		v -= o.T
	}
	return
}

// Diag computes <D|H|D>: self-image hopping plus U per occupied bond
func (o *ChungLandau) Diag(d det.Det) (v float64) {
	o.occ = d.Decode(o.occ)
	for _, i := range o.occ {
		v += o.OneEInt(i, i)
		for _, b := range o.Lat.ConnectedSites[i][1:] {
			if b > i && d.Test(b) {
				v += o.U
			}
		}
	}
	return
}

// OffDiag computes <D|H|D'> for a single hop
func (o *ChungLandau) OffDiag(d det.Det, ex det.Excit) float64 {
	if ex.Nexcit != 1 {
		return 0
	}
	return ex.Sign() * o.OneEInt(ex.From[0], ex.To[0])
}
