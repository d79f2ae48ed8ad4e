// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/goqmc/lattice"
	"github.com/cpmech/goqmc/sys"
)

func Test_csr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("csr01. symmetric matvec on the reference 4x4 matrix")

	// M = diag(1,2,3,4) + e12 + e21, stored upper-triangular
	b := NewBuilder(4, 4)
	for i := 0; i < 4; i++ {
		b.Put(i, i, float64(i+1))
	}
	b.Put(0, 1, 1)
	m := b.ToCSR(true)
	chk.Ints(tst, "row_ptr", m.RowPtr, []int{0, 2, 3, 4, 5})

	x := []float64{1, 1, 1, 1}
	y := make([]float64, 4)
	if err := SymVecMul(y, m, x); err != nil {
		tst.Errorf("SymVecMul failed: %v", err)
		return
	}
	chk.Vector(tst, "M*x", 1e-15, y, []float64{2, 3, 3, 4})

	// the parallel kernel agrees
	yp := make([]float64, 4)
	if err := SymVecMulPar(yp, m, x, 3); err != nil {
		tst.Errorf("SymVecMulPar failed: %v", err)
		return
	}
	chk.Vector(tst, "M*x (par)", 1e-15, yp, y)
}

func Test_csr02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("csr02. symmetric storage equals the fully populated matrix")

	// random-ish symmetric 6x6 pattern
	n := 6
	dense := make([][]float64, n)
	for i := range dense {
		dense[i] = make([]float64, n)
	}
	bsym := NewBuilder(n, n)
	bful := NewBuilder(n, n)
	put := func(i, j int, v float64) {
		dense[i][j], dense[j][i] = v, v
		bsym.Put(i, j, v)
		bful.Put(i, j, v)
		if i != j {
			bful.Put(j, i, v)
		}
	}
	put(0, 0, 2.5)
	put(1, 1, -1)
	put(3, 3, 4)
	put(5, 5, 0.5)
	put(0, 2, 1.5)
	put(0, 5, -2)
	put(1, 4, 3)
	put(2, 3, -0.5)
	put(4, 5, 1)
	msym, mful := bsym.ToCSR(true), bful.ToCSR(false)

	x := []float64{1, -2, 3, 0.5, -1, 2}
	ysym, yful := make([]float64, n), make([]float64, n)
	if err := SymVecMul(ysym, msym, x); err != nil {
		tst.Errorf("SymVecMul failed: %v", err)
		return
	}
	if err := VecMul(yful, mful, x); err != nil {
		tst.Errorf("VecMul failed: %v", err)
		return
	}
	chk.Vector(tst, "sym vs full", 1e-14, ysym, yful)

	// single-row product
	for i := 0; i < n; i++ {
		yi, err := VecMulRow(mful, x, i)
		if err != nil {
			tst.Errorf("VecMulRow failed: %v", err)
			return
		}
		chk.Float64(tst, io.Sf("row %d", i), 1e-14, yi, yful[i])
	}

	// kernels reject the wrong storage kind
	if err := SymVecMul(ysym, mful, x); err == nil {
		tst.Errorf("SymVecMul must reject general storage")
	}
	if err := VecMul(yful, msym, x); err == nil {
		tst.Errorf("VecMul must reject symmetric storage")
	}
}

// denseGround diagonalises the mirrored CSR matrix with gonum
func denseGround(m *CSR) float64 {
	a := mat.NewSymDense(m.Nrow, nil)
	for i := 0; i < m.Nrow; i++ {
		for idx := m.RowPtr[i]; idx < m.RowPtr[i+1]; idx++ {
			a.SetSym(i, m.ColInd[idx], m.Values[idx])
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(a, false) {
		chk.Panic("dense eigendecomposition failed")
	}
	return eig.Values(nil)[0]
}

func Test_hubchain01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hubchain01. half-filled 4-site Hubbard ring")

	sites := [][]int{{0}, {1}, {2}, {3}}
	lat := lattice.New(lattice.Config{Ndim: 1, Sites: sites, Vecs: [][]int{{4}}, SpinResolved: true})

	// U = 0: band filling gives the exact ground energy -4t
	free := sys.New("hubbard_real", &sys.Def{NEl: 4, Lat: lat}, fun.Prms{&fun.Prm{N: "t", V: 1}})
	space := Enumerate(8, 4, KeepMs0)
	chk.IntAssert(len(space), 36)
	h0 := BuildHamiltonian(space, free)
	e0, err := GroundState(h0, len(space), 1e-12, 77)
	if err != nil {
		tst.Errorf("Lanczos failed: %v", err)
		return
	}
	chk.Float64(tst, "E0(U=0)", 1e-8, e0, -4)

	// U = 4: Lanczos agrees with the dense reference
	hub := sys.New("hubbard_real", &sys.Def{NEl: 4, Lat: lat}, fun.Prms{
		&fun.Prm{N: "t", V: 1},
		&fun.Prm{N: "U", V: 4},
	})
	h4 := BuildHamiltonian(space, hub)
	e4, err := GroundState(h4, len(space), 1e-12, 77)
	if err != nil {
		tst.Errorf("Lanczos failed: %v", err)
		return
	}
	ref := denseGround(h4)
	io.Pforan("E0(U=4) = %.10f (dense %.10f)\n", e4, ref)
	chk.Float64(tst, "E0(U=4)", 1e-8, e4, ref)
	if e4 <= -4 || e4 >= 0 {
		tst.Errorf("repulsion must shift the ground state into (-4,0), got %g", e4)
	}
}

func Test_h2fci01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("h2fci01. H2/STO-3G full CI ground state")

	ints := sys.NewIntegrals(2, 0.7137539936876182, nil)
	ints.Set1(0, 0, -1.2524635735648981)
	ints.Set1(1, 1, -0.4759487152209370)
	ints.Set2(0, 0, 0, 0, 0.6744887663568382)
	ints.Set2(0, 0, 1, 1, 0.6636200761693662)
	ints.Set2(1, 1, 1, 1, 0.6975784922775802)
	ints.Set2(0, 1, 0, 1, 0.1812875358123322)
	mol := sys.New("molecular", &sys.Def{NEl: 2, Ints: ints}, nil)

	space := Enumerate(4, 2, KeepMs0)
	chk.IntAssert(len(space), 4)
	h := BuildHamiltonian(space, mol)
	e0, err := GroundState(h, len(space), 1e-12, 13)
	if err != nil {
		tst.Errorf("Lanczos failed: %v", err)
		return
	}
	io.Pforan("E0 = %.8f\n", e0)
	chk.Float64(tst, "E0 vs dense", 1e-10, e0, denseGround(h))
	chk.Float64(tst, "E0", 5e-4, e0, -1.13727)

	// popcount is conserved across the whole enumerated space
	for _, d := range space {
		chk.IntAssert(d.Count(), 2)
	}
}
