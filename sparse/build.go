// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/sys"
)

// Enumerate lists all determinants of nel electrons in nbasis spin-orbitals,
// optionally filtered by keep (e.g. an Ms or momentum sector). The order is
// fixed: ascending occupied lists in lexicographic order.
func Enumerate(nbasis, nel int, keep func(d det.Det) bool) (space []det.Det) {
	if nel < 0 || nel > nbasis {
		chk.Panic("cannot place %d electrons in %d spin-orbitals", nel, nbasis)
	}
	occ := make([]int, nel)
	var recurse func(k, lo int)
	recurse = func(k, lo int) {
		if k == nel {
			d := det.Encode(occ, nbasis)
			if keep == nil || keep(d) {
				space = append(space, d)
			}
			return
		}
		for i := lo; i <= nbasis-(nel-k); i++ {
			occ[k] = i
			recurse(k+1, i+1)
		}
	}
	recurse(0, 0)
	return
}

// KeepMs0 filters determinants with equal alpha and beta counts
func KeepMs0(d det.Det) bool {
	alpha, beta := d.DecodeSpin(nil, nil)
	return len(alpha) == len(beta)
}

// BuildHamiltonian assembles <D_i|H|D_j> over the enumerated space into
// symmetric upper-triangle CSR storage
func BuildHamiltonian(space []det.Det, s sys.System) (m *CSR) {
	n := len(space)
	if n < 1 {
		chk.Panic("Hilbert space is empty")
	}
	b := NewBuilder(n, n)
	for i := 0; i < n; i++ {
		b.Put(i, i, s.Diag(space[i]))
		for j := i + 1; j < n; j++ {
			if det.Level(space[i], space[j]) > 2 {
				continue
			}
			h := s.OffDiag(space[i], det.Between(space[i], space[j]))
			if h != 0 {
				b.Put(i, j, h)
			}
		}
	}
	return b.ToCSR(true)
}
