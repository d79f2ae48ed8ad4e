// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qmc

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/excit"
	"github.com/cpmech/goqmc/sys"
)

// SystemOps bundles the capabilities the walker loop needs: the Hamiltonian
// evaluators and the excitation generator, plus the optional operator oracle
// of Hellmann-Feynman sampling. It is built once at initialisation and passed
// explicitly into the loop; nothing here mutates.
type SystemOps struct {
	Sys sys.System
	Gen excit.Generator

	// Hellmann-Feynman operator; nil outside HF sampling
	OpDiag func(d det.Det) float64
	OpGen  excit.Generator
}

// NewOps initialises a system of the given kind and binds its generator.
// pattemptSingle and renorm configure the molecular generator and are ignored
// by the lattice kinds.
func NewOps(kind string, def *sys.Def, prms fun.Prms, pattemptSingle float64, renorm bool) (o SystemOps) {
	s := sys.New(kind, def, prms)
	o.Sys = s
	switch t := s.(type) {
	case *sys.HubbardReal:
		o.Gen = excit.NewRealSpace(t, def.Lat)
	case *sys.Heisenberg:
		o.Gen = excit.NewRealSpace(t, def.Lat)
	case *sys.ChungLandau:
		o.Gen = excit.NewRealSpace(t, def.Lat)
	case *sys.HubbardK:
		o.Gen = excit.NewMomSpace(t)
	case *sys.Molecular:
		o.Gen = excit.NewMolecular(t, pattemptSingle, renorm)
	default:
		chk.Panic("system kind %q has no excitation generator", kind)
	}
	return
}

// WithOperator attaches the operator oracle of Hellmann-Feynman sampling:
// opGen must report the operator elements O_ij in its results, opDiag the
// diagonal O_ii
func (o SystemOps) WithOperator(opDiag func(d det.Det) float64, opGen excit.Generator) SystemOps {
	if opDiag == nil || opGen == nil {
		chk.Panic("Hellmann-Feynman sampling needs both the diagonal and the generator of the operator")
	}
	o.OpDiag = opDiag
	o.OpGen = opGen
	return o
}
