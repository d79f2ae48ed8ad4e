// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qmc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/lattice"
	"github.com/cpmech/goqmc/sparse"
	"github.com/cpmech/goqmc/sys"
)

// ring4 builds the half-filled 4-site Hubbard ring
func ring4(u float64) (ops SystemOps, def *sys.Def) {
	lat := lattice.New(lattice.Config{
		Ndim:         1,
		Sites:        [][]int{{0}, {1}, {2}, {3}},
		Vecs:         [][]int{{4}},
		SpinResolved: true,
	})
	def = &sys.Def{NEl: 4, Lat: lat}
	ops = NewOps("hubbard_real", def, fun.Prms{
		&fun.Prm{N: "t", V: 1},
		&fun.Prm{N: "U", V: u},
	}, 0, false)
	return
}

func Test_fciqmc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fciqmc01. Hubbard ring against the deterministic companion")

	ops, _ := ring4(4)

	// exact ground state from the Lanczos companion
	space := sparse.Enumerate(8, 4, sparse.KeepMs0)
	h := sparse.BuildHamiltonian(space, ops.Sys)
	e0, err := sparse.GroundState(h, len(space), 1e-12, 5)
	if err != nil {
		tst.Errorf("Lanczos failed: %v", err)
		return
	}
	io.Pforan("exact E0 = %.8f\n", e0)

	// antiferromagnetic reference determinant
	ref := det.Encode([]int{0, 3, 4, 7}, 8)
	st := NewWalkerState(1, 5000, 20000, 0)
	st.Seed(ref, 10, ops.Sys.Diag(ref))

	prm := &Params{
		Tau:              0.005,
		NCycles:          50,
		NReport:          40,
		TargetPopulation: 500,
		Seed:             2026,
	}
	res := Run(ops, st, ref, prm)
	chk.IntAssert(len(res.Reports), 40)

	// invariants of the main list after the run
	for i, w := range st.Dets {
		chk.IntAssert(w.D.Count(), 4)
		if w.Pop[0] == 0 {
			tst.Errorf("zero population survived annihilation")
		}
		if i > 0 && st.Dets[i-1].D.Compare(w.D) >= 0 {
			tst.Errorf("main list must stay strictly sorted and duplicate-free")
		}
	}

	// population control kicked in and the reference stayed occupied
	last := res.Reports[len(res.Reports)-1]
	if !st.VaryShift {
		tst.Errorf("the run must enter variable-shift mode")
	}
	if last.NParticles < 100 {
		tst.Errorf("population collapsed to %d", last.NParticles)
	}
	if last.D0Pop == 0 {
		tst.Errorf("reference population vanished")
	}

	// the averaged projected energy sits on the exact result
	mean := 0.0
	nhalf := 0
	for _, r := range res.Reports[len(res.Reports)/2:] {
		mean += r.ProjEnergy
		nhalf++
	}
	mean /= float64(nhalf)
	io.Pforan("projected energy = %.6f\n", mean)
	if math.Abs(mean-e0) > 0.6 {
		tst.Errorf("projected energy %.6f is far from the exact %.6f", mean, e0)
	}

	// reblocking of the projected-energy series
	series := ProjEnergySeries(ops.Sys.Diag(ref), res.Num, res.Den)
	if len(series) < 16 {
		tst.Errorf("too few usable reports for the blocking analysis")
		return
	}
	levels := Reblock(series)
	if levels[0].StdErr <= 0 {
		tst.Errorf("blocking analysis produced a non-positive error")
	}
}

func Test_fciqmc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fciqmc02. soft exit through the interactivity hook")

	ops, _ := ring4(2)
	ref := det.Encode([]int{0, 3, 4, 7}, 8)
	st := NewWalkerState(1, 5000, 20000, 0)
	st.Seed(ref, 20, ops.Sys.Diag(ref))

	prm := &Params{
		Tau:     0.005,
		NCycles: 10,
		NReport: 100,
		Hook: func(r *Report) bool {
			return r.IReport == 3 // request the exit after the third report
		},
		Seed: 1,
	}
	res := Run(ops, st, ref, prm)
	if !res.SoftExit {
		tst.Errorf("hook request must be reported as a soft exit")
	}
	chk.IntAssert(len(res.Reports), 3)
	chk.IntAssert(res.Reports[2].NCyclesDone, 30)

	// the state is clean for a restart snapshot
	dir := tst.TempDir()
	if err := st.Save(dir, "soft", res.Reports[2].NCyclesDone, 0); err != nil {
		tst.Errorf("snapshot after soft exit failed: %v", err)
	}
}

func Test_fciqmc03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fciqmc03. H2/STO-3G reproduces the full-CI energy")

	ints := sys.NewIntegrals(2, 0.7137539936876182, nil)
	ints.Set1(0, 0, -1.2524635735648981)
	ints.Set1(1, 1, -0.4759487152209370)
	ints.Set2(0, 0, 0, 0, 0.6744887663568382)
	ints.Set2(0, 0, 1, 1, 0.6636200761693662)
	ints.Set2(1, 1, 1, 1, 0.6975784922775802)
	ints.Set2(0, 1, 0, 1, 0.1812875358123322)
	def := &sys.Def{NEl: 2, Ints: ints}
	ops := NewOps("molecular", def, nil, 0.2, true)

	ref := det.Encode([]int{0, 1}, 4)
	st := NewWalkerState(1, 100, 5000, 0)
	st.Seed(ref, 50, ops.Sys.Diag(ref))

	prm := &Params{
		Tau:              0.01,
		NCycles:          50,
		NReport:          60,
		TargetPopulation: 400,
		Seed:             31,
	}
	res := Run(ops, st, ref, prm)

	// exact answer from the deterministic companion
	space := sparse.Enumerate(4, 2, sparse.KeepMs0)
	h := sparse.BuildHamiltonian(space, ops.Sys)
	e0, err := sparse.GroundState(h, len(space), 1e-12, 3)
	if err != nil {
		tst.Errorf("Lanczos failed: %v", err)
		return
	}

	mean, nhalf := 0.0, 0
	for _, r := range res.Reports[len(res.Reports)/2:] {
		mean += r.ProjEnergy
		nhalf++
	}
	mean /= float64(nhalf)
	io.Pforan("projected energy = %.6f (exact %.6f)\n", mean, e0)
	if math.Abs(mean-e0) > 0.05 {
		tst.Errorf("projected energy %.6f misses the full-CI result %.6f", mean, e0)
	}
}

func Test_hfs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hfs01. Hellmann-Feynman sampling populates the operator slot")

	ops, _ := ring4(4)

	// sample the double-occupancy operator sum_s n_up n_down through its
	// diagonal; the off-diagonal oracle is the Hamiltonian generator itself
	bmask := det.BetaMask(8)
	opDiag := func(d det.Det) float64 { return float64(det.NumDoublyOcc(d, bmask)) }
	ops = ops.WithOperator(opDiag, ops.Gen)

	ref := det.Encode([]int{0, 3, 4, 7}, 8)
	st := NewWalkerState(2, 5000, 40000, 0)
	st.Seed(ref, 20, ops.Sys.Diag(ref))

	prm := &Params{
		Tau:              0.005,
		NCycles:          20,
		NReport:          20,
		TargetPopulation: 300,
		Seed:             9,
	}
	Run(ops, st, ref, prm)

	// Hamiltonian and operator populations evolve together
	if st.NParticles[0] == 0 {
		tst.Errorf("Hamiltonian population collapsed")
	}
	if st.NParticles[1] == 0 {
		tst.Errorf("operator walkers were never spawned")
	}
	for _, w := range st.Dets {
		chk.IntAssert(w.D.Count(), 4)
	}
}
