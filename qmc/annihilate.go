// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qmc

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goqmc/det"
)

// Annihilate drains the spawn buffer into the main list: sort by determinant,
// compress equal runs summing the signed counts, then merge-join with the
// sorted main list. Records whose populations all cancel are removed. The
// merge is O(M log M + N) in the spawn and main sizes.
//
// With initiator adaptation (initThresh > 0), a compressed run landing on an
// unoccupied determinant is kept only if one of its parents was an initiator
// or at least two spawn events coincided.
func (o *WalkerState) Annihilate(diag func(d det.Det) float64, initThresh float64) {

	buf := o.spawn[o.SpawningBlockStart:o.SpawningHead]
	sort.Slice(buf, func(i, j int) bool { return buf[i].D.Compare(buf[j].D) < 0 })

	// compress runs of identical determinants in place
	runs := buf[:0]
	for i := 0; i < len(buf); {
		run := buf[i]
		ncontrib := 1
		j := i + 1
		for ; j < len(buf) && buf[j].D.Compare(run.D) == 0; j++ {
			for s := 0; s < o.SamplingSize; s++ {
				run.Pop[s] += buf[j].Pop[s]
			}
			run.Initiator = run.Initiator || buf[j].Initiator
			ncontrib++
		}
		if ncontrib > 1 {
			run.Initiator = true // coincident spawns survive regardless
		}
		runs = append(runs, run)
		i = j
	}

	// merge-join with the main list
	out := o.scratch[:0]
	push := func(w Walker) {
		alive := false
		for s := 0; s < o.SamplingSize; s++ {
			if w.Pop[s] != 0 {
				alive = true
			}
		}
		if !alive {
			return
		}
		if len(out) == cap(out) {
			chk.Panic("walker list overflow at %d determinants; relaunch with a larger cap", cap(out))
		}
		out = append(out, w)
	}
	im, ir := 0, 0
	for im < len(o.Dets) && ir < len(runs) {
		switch o.Dets[im].D.Compare(runs[ir].D) {
		case -1:
			push(o.Dets[im])
			im++
		case 1:
			o.insertRun(runs[ir], diag, initThresh, push)
			ir++
		default:
			w := o.Dets[im]
			for s := 0; s < o.SamplingSize; s++ {
				w.Pop[s] += runs[ir].Pop[s]
			}
			push(w)
			im++
			ir++
		}
	}
	for ; im < len(o.Dets); im++ {
		push(o.Dets[im])
	}
	for ; ir < len(runs); ir++ {
		o.insertRun(runs[ir], diag, initThresh, push)
	}

	// swap the lists; the old main array becomes next cycle's scratch
	o.Dets, o.scratch = out, o.Dets[:0]
	o.CountParticles()
}

// insertRun places a compressed run on a previously unoccupied determinant
func (o *WalkerState) insertRun(r Spawned, diag func(d det.Det) float64, initThresh float64, push func(Walker)) {
	if initThresh > 0 && !r.Initiator {
		return // discarded by the initiator criterion
	}
	push(Walker{D: r.D, Pop: r.Pop, Diag: diag(r.D)})
}
