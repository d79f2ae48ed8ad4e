// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qmc

import (
	"math"
	"math/rand"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/excit"
	"github.com/cpmech/goqmc/sys"
)

// debugSpawn switches on the in-flight comparison of the generator's matrix
// element against the direct Slater-Condon evaluation
const debugSpawn = false

// checkedGen wraps a generator with the debugSpawn verification
type checkedGen struct {
	inner excit.Generator
	s     sys.System
}

func (o checkedGen) Gen(rng *rand.Rand, d det.Det, occ *excit.Occ) excit.Result {
	r := o.inner.Gen(rng, d, occ)
	if r.Allowed {
		if direct := o.s.OffDiag(d, r.Exc); math.Abs(direct-r.Hij) > 1e-10 {
			chk.Panic("generator H_ij = %g disagrees with <D|H|D'> = %g", r.Hij, direct)
		}
	}
	return r
}

// Params holds the run parameters of the walker loop
type Params struct {
	Tau                float64              // timestep
	NCycles            int                  // cycles per report
	NReport            int                  // number of reports
	TargetPopulation   int64                // entering variable-shift mode; 0 keeps the shift fixed
	ShiftDamping       float64              // damping of the shift update (default 0.05)
	InitiatorThreshold float64              // initiator adaptation; 0 disables
	Seed               int64                // RNG stream seed
	Verbose            bool                 // report lines through io.Pf
	Hook               func(r *Report) bool // interactivity hook; true requests a soft exit
	Exch               Exchanger            // nil means serial
	Distr              bool                 // reduce estimators across MPI processes
}

// Report is the per-report record emitted by the loop
type Report struct {
	IReport     int
	NCyclesDone int
	NParticles  int64
	ProjEnergy  float64
	D0Pop       float64
	Shift       float64
	SpawnRate   float64 // spawn events per attempt over the report
	NDeath      int64   // net deaths over the report
	Time        float64 // seconds since the start of the run
}

// Results collects the report series; Num and Den keep the raw
// projected-energy accumulators for the reblocking analysis
type Results struct {
	Reports  []Report
	Num, Den []float64
	SoftExit bool
}

// Run drives the FCIQMC loop: for each cycle every walker attempts its
// spawns, then dies or clones, and the cycle ends with the annihilation
// sweep. With SamplingSize 2 the loop also propagates the operator walkers of
// Hellmann-Feynman sampling: slot-1 walkers follow the Hamiltonian dynamics
// and are sourced from slot-0 parents through the operator generator.
func Run(ops SystemOps, st *WalkerState, ref det.Det, prm *Params) (res *Results) {

	// check parameters
	if prm.Tau <= 0 {
		chk.Panic("timestep must be positive. tau = %g is invalid", prm.Tau)
	}
	if prm.NCycles < 1 || prm.NReport < 1 {
		chk.Panic("cycle counts (%d,%d) are invalid", prm.NCycles, prm.NReport)
	}
	if st.SamplingSize == 2 && ops.OpGen == nil {
		chk.Panic("Hellmann-Feynman sampling needs an operator oracle; see SystemOps.WithOperator")
	}
	gamma := prm.ShiftDamping
	if gamma == 0 {
		gamma = 0.05
	}
	exch := prm.Exch
	if exch == nil {
		exch = SerialExchange{}
	}

	rng := rand.New(rand.NewSource(prm.Seed))
	res = new(Results)
	h00 := ops.Sys.Diag(ref)
	nel := ops.Sys.NEl()
	diag := ops.Sys.Diag
	gen := ops.Gen
	if debugSpawn {
		gen = checkedGen{ops.Gen, ops.Sys}
	}

	var occ excit.Occ
	start := time.Now()
	if prm.Verbose {
		io.Pf("%8s%10s%14s%18s%14s%14s\n", "report", "cycles", "particles", "proj energy", "D0 pop", "shift")
	}

	for ireport := 1; ireport <= prm.NReport; ireport++ {

		// zero the per-report accumulators
		num, den := 0.0, 0.0
		npartOld := st.NParticles[0]
		var nattempts, nspawned, ndeath int64

		for icycle := 0; icycle < prm.NCycles; icycle++ {

			// reset the spawn buffer head
			st.SpawningHead = st.SpawningBlockStart
			nattempts += 2 * st.NParticles[0]

			for iw := range st.Dets {
				w := &st.Dets[iw]
				occ.Decode(w.D)
				chk.IntAssert(len(occ.All), nel)

				// projected-energy accumulators
				if w.D.Equal(ref) {
					den += float64(w.Pop[0])
				} else if det.Level(ref, w.D) <= 2 {
					num += ops.Sys.OffDiag(ref, det.Between(ref, w.D)) * float64(w.Pop[0])
				}

				// spawning: one attempt per Hamiltonian particle
				psign := sign32(w.Pop[0])
				for p := absInt64(int64(w.Pop[0])); p > 0; p-- {
					spawnAttempt(rng, st, gen, w.D, &occ, psign, prm.Tau, 0,
						initiator(w.Pop[0], prm.InitiatorThreshold))
					if st.SamplingSize == 2 {
						// operator-specific spawn feeding the slot-1 population
						spawnAttempt(rng, st, ops.OpGen, w.D, &occ, psign, prm.Tau, 1,
							initiator(w.Pop[0], prm.InitiatorThreshold))
					}
				}
				if st.SamplingSize == 2 && w.Pop[1] != 0 {
					osign := sign32(w.Pop[1])
					for p := absInt64(int64(w.Pop[1])); p > 0; p-- {
						spawnAttempt(rng, st, gen, w.D, &occ, osign, prm.Tau, 1,
							initiator(w.Pop[1], prm.InitiatorThreshold))
					}
				}

				// death and cloning, once per walker per slot
				pd := DeathProbability(prm.Tau, w.Diag, st.Shift)
				var nd int32
				w.Pop[0], nd = DoDeath(rng, w.Pop[0], pd)
				ndeath += int64(nd)
				if st.SamplingSize == 2 {
					w.Pop[1], nd = DoDeath(rng, w.Pop[1], pd)
					ndeath += int64(nd)
				}
			}
			nspawned += int64(st.SpawningHead - st.SpawningBlockStart)

			// route progeny to their owners and annihilate locally
			routed := exch.Exchange(st.spawn[st.SpawningBlockStart:st.SpawningHead])
			if st.SpawningBlockStart+len(routed) > len(st.spawn) {
				chk.Panic("spawn buffer overflow after the exchange; relaunch with a larger cap")
			}
			st.SpawningHead = st.SpawningBlockStart + len(routed)
			copy(st.spawn[st.SpawningBlockStart:], routed)
			st.Annihilate(diag, prm.InitiatorThreshold)
		}

		// per-report reduction across processes
		vals := []float64{num, den, float64(st.NParticles[0])}
		if prm.Distr && mpi.IsOn() {
			work := make([]float64, len(vals))
			mpi.AllReduceSum(vals, work)
		}
		num, den = vals[0], vals[1]
		npart := int64(vals[2])

		// population control
		if prm.TargetPopulation > 0 && !st.VaryShift && npart >= prm.TargetPopulation {
			st.VaryShift = true
		}
		if st.VaryShift && npartOld > 0 && npart > 0 {
			st.Shift -= gamma / (prm.Tau * float64(prm.NCycles)) *
				math.Log(float64(npart)/float64(npartOld))
		}

		// emit the report record
		rep := Report{
			IReport:     ireport,
			NCyclesDone: ireport * prm.NCycles,
			NParticles:  npart,
			D0Pop:       den / float64(prm.NCycles),
			Shift:       st.Shift,
			NDeath:      ndeath,
			Time:        time.Now().Sub(start).Seconds(),
		}
		if nattempts > 0 {
			rep.SpawnRate = float64(nspawned) / float64(nattempts)
		}
		if den != 0 {
			rep.ProjEnergy = h00 + num/den
		}
		res.Reports = append(res.Reports, rep)
		res.Num = append(res.Num, num)
		res.Den = append(res.Den, den)
		if prm.Verbose {
			io.Pf("%8d%10d%14d%18.10f%14.2f%14.6f\n", rep.IReport, rep.NCyclesDone,
				rep.NParticles, rep.ProjEnergy, rep.D0Pop, rep.Shift)
		}

		// interactivity hook: finish the report, then leave cleanly
		if prm.Hook != nil && prm.Hook(&rep) {
			res.SoftExit = true
			return
		}
	}
	return
}

// spawnAttempt draws one excitation and appends any progeny to the buffer
func spawnAttempt(rng *rand.Rand, st *WalkerState, gen excit.Generator, d det.Det,
	occ *excit.Occ, parentSign int32, tau float64, slot int, initFlag bool) {
	r := gen.Gen(rng, d, occ)
	n := SpawnProgeny(rng, r, parentSign, tau)
	if n == 0 {
		return
	}
	sp := Spawned{D: r.DNew, Initiator: initFlag}
	sp.Pop[slot] = n
	st.appendSpawn(sp)
}

// initiator reports whether a parent population passes the criterion; with
// the adaptation disabled every parent does
func initiator(pop int32, thresh float64) bool {
	if thresh <= 0 {
		return true
	}
	return math.Abs(float64(pop)) > thresh
}
