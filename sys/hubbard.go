// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/lattice"
	"github.com/cpmech/goqmc/sym"
)

// HubbardReal implements the real-space Hubbard model on a lattice:
// hopping -t along the connectivity tables plus on-site repulsion U
type HubbardReal struct {
	Lat   *lattice.Tables
	T, U  float64
	nel   int
	bmask det.Det
	occ   []int // scratch
}

// add system to factory
func init() {
	allocators["hubbard_real"] = func() System { return new(HubbardReal) }
}

// Init initialises the system
func (o *HubbardReal) Init(def *Def, prms fun.Prms) (err error) {
	if def.Lat == nil {
		return chk.Err("hubbard_real: lattice tables are missing")
	}
	if !def.Lat.SpinResolved {
		return chk.Err("hubbard_real: lattice must be spin-resolved")
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
			return chk.Err("hubbard_real: parameter named %q is incorrect", p.N)
		}
	}
	o.bmask = det.BetaMask(o.Lat.Nbasis)
	return
}

func (o *HubbardReal) Name() string { return "hubbard_real" }
func (o *HubbardReal) NBasis() int  { return o.Lat.Nbasis }
func (o *HubbardReal) NEl() int     { return o.nel }

// OneEInt evaluates <i|T|j>. The two directions of the asymmetric Tmat
// encoding are tested independently so a self-image contributes the full -2t
// and a doubled boundary bond the full -2t as well.
func (o *HubbardReal) OneEInt(i, j int) (v float64) {
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

// Diag computes <D|H|D>: self-image kinetic terms plus U per doubly
// occupied site
func (o *HubbardReal) Diag(d det.Det) (v float64) {
	o.occ = d.Decode(o.occ)
	for _, i := range o.occ {
		v += o.OneEInt(i, i)
	}
	return v + o.U*float64(det.NumDoublyOcc(d, o.bmask))
}

// OffDiag computes <D|H|D'> for a single excitation; doubles are disconnected
func (o *HubbardReal) OffDiag(d det.Det, ex det.Excit) float64 {
	if ex.Nexcit != 1 {
		return 0
	}
	return ex.Sign() * o.OneEInt(ex.From[0], ex.To[0])
}

// HubbardK implements the momentum-space Hubbard model on a non-tilted cell.
// The interaction couples opposite spins only, with constant element U/N.
type HubbardK struct {
	Dims []int
	T, U float64
	nel  int
	nk   int
	Tbl  *sym.Table // momentum addition over the spatial orbitals
	eps  []float64  // band energies per spatial orbital
	occ  []int      // scratch
}

// add system to factory
func init() {
	allocators["hubbard_k"] = func() System { return new(HubbardK) }
}

// Init initialises the system
func (o *HubbardK) Init(def *Def, prms fun.Prms) (err error) {
	if len(def.Dims) < 1 {
		return chk.Err("hubbard_k: supercell dimensions are missing")
	}
	o.Dims = def.Dims
	o.nel = def.NEl
	o.T = 1
	for _, p := range prms {
		switch p.N {
		case "t":
			o.T = p.V
		case "U":
			o.U = p.V
		default:
			return chk.Err("hubbard_k: parameter named %q is incorrect", p.N)
		}
	}
	var kvecs [][]int
	kvecs, o.Tbl = buildMomentum(o.Dims)
	o.nk = len(kvecs)
	o.eps = make([]float64, o.nk)
	for p, k := range kvecs {
		o.eps[p] = lattice.Dispersion(o.T, k, o.Dims)
	}
	return
}

func (o *HubbardK) Name() string { return "hubbard_k" }
func (o *HubbardK) NBasis() int  { return 2 * o.nk }
func (o *HubbardK) NEl() int     { return o.nel }

// NK returns the number of wavevectors (spatial orbitals)
func (o *HubbardK) NK() int { return o.nk }

// ConservedTarget returns the spatial orbital fixed by crystal-momentum
// conservation: k_b = k_i + k_j - k_a
func (o *HubbardK) ConservedTarget(pi, pj, pa int) int {
	return o.Tbl.Mul(o.Tbl.Mul(pi, pj), o.Tbl.Inv[pa])
}

// Diag computes <D|H|D>: band energies plus the q=0 Hartree term
func (o *HubbardK) Diag(d det.Det) (v float64) {
	o.occ = d.Decode(o.occ)
	nalpha := 0
	for _, i := range o.occ {
		v += o.eps[i/2]
		if i%2 == 0 {
			nalpha++
		}
	}
	nbeta := len(o.occ) - nalpha
	return v + o.U/float64(o.nk)*float64(nalpha)*float64(nbeta)
}

// OffDiag computes <D|H|D'> for a momentum-conserving opposite-spin double.
// Exactly one of the direct and exchange integrals survives: the sign flips
// when the excitation crosses the spin labels.
func (o *HubbardK) OffDiag(d det.Det, ex det.Excit) float64 {
	if ex.Nexcit != 2 {
		return 0
	}
	si, sj := ex.From[0]%2, ex.From[1]%2
	sa, sb := ex.To[0]%2, ex.To[1]%2
	if si+sj != 1 || sa+sb != 1 {
		return 0 // the interaction couples opposite spins only
	}
	if o.ConservedTarget(ex.From[0]/2, ex.From[1]/2, ex.To[0]/2) != ex.To[1]/2 {
		return 0
	}
	v := o.U / float64(o.nk)
	if si != sa {
		v = -v // exchange integral survives instead of the direct one
	}
	return ex.Sign() * v
}
