// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qmc

import (
	"bytes"
	"encoding/gob"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Snapshot is the restart record: the full main walker list plus the
// counters needed to resume the run. It is gob-encoded, one file per
// process, so a distributed run restarts onto the same partition.
type Snapshot struct {
	NCyclesDone   int
	NParticlesOld [2]int64
	Shift         float64
	VaryShift     bool
	SamplingSize  int
	Dets          []Walker
}

// Save writes a restart snapshot to dir/fnkey_p<proc>.rst
func (o *WalkerState) Save(dir, fnkey string, ncyclesDone, proc int) (err error) {

	// encode into a buffer first so a failed run never truncates an older
	// snapshot on disk
	var buf bytes.Buffer
	snap := Snapshot{
		NCyclesDone:   ncyclesDone,
		NParticlesOld: o.NParticles,
		Shift:         o.Shift,
		VaryShift:     o.VaryShift,
		SamplingSize:  o.SamplingSize,
		Dets:          o.Dets,
	}
	if err = gob.NewEncoder(&buf).Encode(&snap); err != nil {
		return chk.Err("cannot encode snapshot\n%v", err)
	}

	// save file
	fn := snapPath(dir, fnkey, proc)
	fil, err := os.Create(fn)
	if err != nil {
		return chk.Err("cannot create snapshot file %s\n%v", fn, err)
	}
	defer fil.Close()
	_, err = fil.Write(buf.Bytes())
	return
}

// Read loads a restart snapshot and replaces the walker list
func (o *WalkerState) Read(dir, fnkey string, proc int) (ncyclesDone int, err error) {

	// open file
	fil, err := os.Open(snapPath(dir, fnkey, proc))
	if err != nil {
		return 0, chk.Err("cannot open snapshot file\n%v", err)
	}
	defer fil.Close()

	// decode snapshot
	var snap Snapshot
	if err = gob.NewDecoder(fil).Decode(&snap); err != nil {
		return 0, chk.Err("cannot decode snapshot\n%v", err)
	}
	if snap.SamplingSize != o.SamplingSize {
		return 0, chk.Err("snapshot sampling size %d does not match the state (%d)", snap.SamplingSize, o.SamplingSize)
	}
	if len(snap.Dets) > cap(o.Dets) {
		return 0, chk.Err("snapshot holds %d determinants but the walker list caps at %d", len(snap.Dets), cap(o.Dets))
	}
	o.Dets = append(o.Dets[:0], snap.Dets...)
	o.Shift = snap.Shift
	o.VaryShift = snap.VaryShift
	o.CountParticles()
	return snap.NCyclesDone, nil
}

func snapPath(dir, fnkey string, proc int) string {
	return path.Join(dir, io.Sf("%s_p%d.rst", fnkey, proc))
}
