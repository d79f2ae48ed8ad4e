// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sys implements model Hamiltonians and their Slater-Condon evaluators
package sys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/lattice"
	"github.com/cpmech/goqmc/sym"
)

// BasisFn describes one single-particle basis function
type BasisFn struct {
	K    []int // wavevector in reduced coordinates (momentum-space systems)
	Spin int   // 0 = alpha, 1 = beta
	Sym  int   // symmetry label (molecular systems)
}

// System defines a model Hamiltonian over bit-string determinants.
// All evaluators are total functions of validly constructed inputs.
type System interface {
	Init(def *Def, prms fun.Prms) error             // initialises the system from its definition
	Name() string                                   // system kind; e.g. "hubbard_real"
	NBasis() int                                    // number of spin-orbitals
	NEl() int                                       // number of electrons (walker popcount)
	Diag(d det.Det) float64                         // <D|H|D>
	OffDiag(d det.Det, ex det.Excit) float64        // <D|H|D'> for the connection ex out of D
}

// Def bundles the ingredients a system may need. Lattice systems take Lat;
// momentum-space systems take Dims; molecular systems take Ints.
type Def struct {
	NEl  int
	Lat  *lattice.Tables
	Dims []int
	Ints *Integrals
}

// allocators holds all available systems
var allocators = map[string]func() System{}

// New returns (and initialises) a system of the given kind
func New(kind string, def *Def, prms fun.Prms) System {
	allocator, ok := allocators[kind]
	if !ok {
		chk.Panic("cannot find system kind named %q", kind)
	}
	o := allocator()
	if err := o.Init(def, prms); err != nil {
		chk.Panic("cannot initialise %q system:\n%v", kind, err)
	}
	return o
}

// momentum table shared by the k-space systems
func buildMomentum(dims []int) (kvecs [][]int, tbl *sym.Table) {
	kvecs = lattice.KPoints(dims)
	tbl = sym.NewFromSum(kvecs, dims)
	return
}
