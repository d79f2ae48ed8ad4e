// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package qmc implements the FCIQMC walker engine
package qmc

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goqmc/det"
)

// Walker is one record of the main list: a determinant and its signed
// populations, one per sampling slot (slot 0 carries Hamiltonian walkers,
// slot 1 the operator walkers of Hellmann-Feynman sampling)
type Walker struct {
	D    det.Det
	Pop  [2]int32
	Diag float64 // cached <D|H|D>
}

// Spawned is one entry of the spawn buffer
type Spawned struct {
	D         det.Det
	Pop       [2]int32
	Initiator bool // parent passed the initiator criterion
}

// WalkerState owns the main walker list and the spawn buffer. It is mutated
// by the walker loop only; the determinant list stays sorted by det.Compare
// and, after annihilation, free of duplicates and zero populations.
type WalkerState struct {
	SamplingSize       int // 1 = FCIQMC, 2 = Hellmann-Feynman
	Dets               []Walker
	NParticles         [2]int64
	Shift              float64
	VaryShift          bool
	SpawningHead       int
	SpawningBlockStart int

	spawn   []Spawned
	scratch []Walker
}

// NewWalkerState allocates the state with fixed capacities. maxWalkers and
// maxSpawn are hard caps: exceeding either is fatal and the run must be
// relaunched with larger buffers.
func NewWalkerState(samplingSize, maxWalkers, maxSpawn int, shift float64) (o *WalkerState) {
	if samplingSize != 1 && samplingSize != 2 {
		chk.Panic("sampling size must be 1 or 2. %d is invalid", samplingSize)
	}
	if maxWalkers < 1 || maxSpawn < 1 {
		chk.Panic("buffer capacities (%d,%d) are invalid", maxWalkers, maxSpawn)
	}
	o = &WalkerState{SamplingSize: samplingSize, Shift: shift}
	o.Dets = make([]Walker, 0, maxWalkers)
	o.spawn = make([]Spawned, maxSpawn)
	o.scratch = make([]Walker, 0, maxWalkers)
	return
}

// Seed places an initial population on one determinant, merging with any
// population already there
func (o *WalkerState) Seed(d det.Det, pop int32, diag float64) {
	if w := o.Lookup(d); w != nil {
		w.Pop[0] += pop
		o.CountParticles()
		return
	}
	w := Walker{D: d.Clone(), Diag: diag}
	w.Pop[0] = pop
	idx := o.find(d)
	o.Dets = append(o.Dets, Walker{})
	copy(o.Dets[idx+1:], o.Dets[idx:])
	o.Dets[idx] = w
	o.CountParticles()
}

// find returns the insertion index of d in the sorted main list
func (o *WalkerState) find(d det.Det) int {
	lo, hi := 0, len(o.Dets)
	for lo < hi {
		mid := (lo + hi) / 2
		if o.Dets[mid].D.Compare(d) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Lookup returns the walker on d, or nil
func (o *WalkerState) Lookup(d det.Det) *Walker {
	idx := o.find(d)
	if idx < len(o.Dets) && o.Dets[idx].D.Equal(d) {
		return &o.Dets[idx]
	}
	return nil
}

// CountParticles refreshes the per-slot particle totals
func (o *WalkerState) CountParticles() [2]int64 {
	o.NParticles = [2]int64{}
	for _, w := range o.Dets {
		for s := 0; s < o.SamplingSize; s++ {
			o.NParticles[s] += absInt64(int64(w.Pop[s]))
		}
	}
	return o.NParticles
}

// appendSpawn adds one progeny record; overflowing the buffer is fatal
func (o *WalkerState) appendSpawn(s Spawned) {
	if o.SpawningHead >= len(o.spawn) {
		chk.Panic("spawn buffer overflow at %d entries; relaunch with a larger cap", len(o.spawn))
	}
	o.spawn[o.SpawningHead] = s
	o.SpawningHead++
}

func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func sign32(x int32) int32 {
	if x < 0 {
		return -1
	}
	return 1
}

// DetOwner maps a determinant to its owning process by a deterministic hash
// of the bit string, so partner processes agree on the partition without
// communication
func DetOwner(d det.Det, nproc int) int {
	if nproc < 2 {
		return 0
	}
	h := fnv.New64a()
	var b [8]byte
	for _, w := range d {
		binary.LittleEndian.PutUint64(b[:], w)
		h.Write(b[:])
	}
	return int(h.Sum64() % uint64(nproc))
}

// Exchanger routes spawned walkers to their owning process at the cycle
// boundary. The serial implementation keeps everything local; a distributed
// collaborator replaces it with the all-to-all transport.
type Exchanger interface {
	Exchange(buf []Spawned) []Spawned
}

// SerialExchange is the single-process exchanger
type SerialExchange struct{}

// Exchange returns the buffer unchanged
func (o SerialExchange) Exchange(buf []Spawned) []Spawned { return buf }
