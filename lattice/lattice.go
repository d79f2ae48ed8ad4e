// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lattice builds the real-space connectivity tables of model Hamiltonians
package lattice

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goqmc/det"
)

// Config describes the supercell: site positions, the lattice vectors spanning
// the periodic images, and the boundary mode
type Config struct {
	Ndim         int     // spatial dimensionality: 1, 2 or 3
	Sites        [][]int // positions of the sites inside the cell
	Vecs         [][]int // lattice vectors spanning the supercell
	Triangular   bool    // add the (1,1)/(-1,-1) diagonal bonds of a 2D triangular lattice
	Finite       bool    // finite cluster: no periodic-image bonds
	NextNearest  bool    // build the two-bond path-count table
	SpinResolved bool    // two spin-orbitals per site; else one orbital per site
}

// Tables holds the connectivity of the lattice. Immutable after New.
//
//  Tmat uses the asymmetric bond encoding: for orbitals a <= b, bit b of
//  Tmat[a] flags an intra-cell bond and bit a of Tmat[b] a periodic-image
//  bond. Both within-cell and across-boundary bonds are thus packed without
//  ambiguity, and a kinetic element <a|T|b> is two independent bit tests.
//
//  ConnectedOrbs is the symmetric adjacency excluding self-images; its decoded
//  form ConnectedSites[a] stores the neighbour count first, then the orbitals.
type Tables struct {
	Ndim            int
	Nsites          int
	Nbasis          int
	SpinResolved    bool
	Tmat            []det.Det
	ConnectedOrbs   []det.Det
	ConnectedSites  [][]int
	NextNearestOrbs [][]int
	TSelfImages     bool
}

// Orb returns the spin-orbital of site s and spin channel spin (0 or 1)
func (o *Tables) Orb(s, spin int) int {
	if o.SpinResolved {
		return 2*s + spin
	}
	return s
}

// New builds all connectivity tables from the cell description
func New(cfg Config) (o *Tables) {

	// check configuration
	if cfg.Ndim < 1 || cfg.Ndim > 3 {
		chk.Panic("dimensionality must be 1, 2 or 3. Ndim = %d is invalid", cfg.Ndim)
	}
	if len(cfg.Sites) < 1 {
		chk.Panic("lattice has no sites")
	}
	if len(cfg.Vecs) != cfg.Ndim {
		chk.Panic("need %d lattice vectors. %d were given", cfg.Ndim, len(cfg.Vecs))
	}
	for _, l := range cfg.Sites {
		if len(l) != cfg.Ndim {
			chk.Panic("site position %v does not match Ndim = %d", l, cfg.Ndim)
		}
	}
	for _, v := range cfg.Vecs {
		if len(v) != cfg.Ndim {
			chk.Panic("lattice vector %v does not match Ndim = %d", v, cfg.Ndim)
		}
	}
	if cfg.Triangular && cfg.Ndim != 2 {
		chk.Panic("triangular bonds exist in 2D only")
	}

	// allocate
	o = new(Tables)
	o.Ndim = cfg.Ndim
	o.Nsites = len(cfg.Sites)
	o.SpinResolved = cfg.SpinResolved
	nspin := 1
	if cfg.SpinResolved {
		nspin = 2
	}
	o.Nbasis = nspin * o.Nsites
	o.Tmat = make([]det.Det, o.Nbasis)
	o.ConnectedOrbs = make([]det.Det, o.Nbasis)
	for a := 0; a < o.Nbasis; a++ {
		o.Tmat[a] = det.New(o.Nbasis)
		o.ConnectedOrbs[a] = det.New(o.Nbasis)
	}

	// self-images appear when a supercell dimension has unit length
	for _, v := range cfg.Vecs {
		if l1norm(v) == 1 {
			o.TSelfImages = true
		}
	}

	// enumerate the nearest shell of image offsets, the zero offset first
	offsets := imageOffsets(cfg.Ndim, cfg.Vecs)

	// bonds
	r := make([]int, cfg.Ndim)
	dr := make([]int, cfg.Ndim)
	for i := 0; i < o.Nsites; i++ {
		for j := i; j < o.Nsites; j++ {
			for d := 0; d < cfg.Ndim; d++ {
				r[d] = cfg.Sites[i][d] - cfg.Sites[j][d]
			}
			for m, off := range offsets {
				for d := 0; d < cfg.Ndim; d++ {
					dr[d] = r[d] - off[d]
				}
				if !isBond(dr, cfg.Triangular) {
					continue
				}
				intra := m == 0
				for spin := 0; spin < nspin; spin++ {
					a, b := o.Orb(i, spin), o.Orb(j, spin)
					switch {
					case intra:
						o.Tmat[a].Set(b)
					case !cfg.Finite:
						o.Tmat[b].Set(a)
					}
					if i != j && (intra || !cfg.Finite) {
						o.ConnectedOrbs[a].Set(b)
						o.ConnectedOrbs[b].Set(a)
					}
				}
			}
		}
	}

	// decode adjacency
	o.ConnectedSites = make([][]int, o.Nbasis)
	for a := 0; a < o.Nbasis; a++ {
		nbrs := o.ConnectedOrbs[a].Decode(nil)
		o.ConnectedSites[a] = append([]int{len(nbrs)}, nbrs...)
	}

	// two-bond path counts
	if cfg.NextNearest {
		o.NextNearestOrbs = make([][]int, o.Nbasis)
		for a := 0; a < o.Nbasis; a++ {
			o.NextNearestOrbs[a] = make([]int, o.Nbasis)
			for _, c := range o.ConnectedSites[a][1:] {
				for _, b := range o.ConnectedSites[c][1:] {
					o.NextNearestOrbs[a][b]++
				}
			}
			o.NextNearestOrbs[a][a] = 0
		}
	}
	return
}

// imageOffsets lists the 3^d offsets of the nearest shell of neighbour
// supercells; the zero offset is placed first
func imageOffsets(ndim int, vecs [][]int) (offsets [][]int) {
	n := 1
	for d := 0; d < ndim; d++ {
		n *= 3
	}
	offsets = append(offsets, make([]int, ndim)) // zero offset
	for m := 0; m < n; m++ {
		c, allzero := m, true
		coef := make([]int, ndim)
		for d := 0; d < ndim; d++ {
			coef[d] = c%3 - 1
			c /= 3
			if coef[d] != 0 {
				allzero = false
			}
		}
		if allzero {
			continue
		}
		off := make([]int, ndim)
		for d := 0; d < ndim; d++ {
			for k := 0; k < ndim; k++ {
				off[k] += coef[d] * vecs[d][k]
			}
		}
		offsets = append(offsets, off)
	}
	return
}

// isBond tests whether a displacement is a nearest-neighbour bond
func isBond(dr []int, triangular bool) bool {
	if l1norm(dr) == 1 {
		return true
	}
	if triangular && len(dr) == 2 {
		if (dr[0] == 1 && dr[1] == 1) || (dr[0] == -1 && dr[1] == -1) {
			return true
		}
	}
	return false
}

func l1norm(v []int) (n int) {
	for _, x := range v {
		if x < 0 {
			n -= x
		} else {
			n += x
		}
	}
	return
}
