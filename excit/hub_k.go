// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package excit

import (
	"math/rand"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goqmc/det"
	"github.com/cpmech/goqmc/sys"
)

// MomSpace draws the symmetry-constrained double excitations of the
// momentum-space Hubbard model. Connected excitations move one alpha and one
// beta electron; the second target is fixed by crystal-momentum conservation.
type MomSpace struct {
	S     *sys.HubbardK
	valid []int // scratch: targets with an unoccupied conservation partner
}

// NewMomSpace returns the generator
func NewMomSpace(s *sys.HubbardK) *MomSpace {
	if s == nil {
		chk.Panic("momentum-space generator needs a hubbard_k system")
	}
	return &MomSpace{S: s}
}

// Gen draws i from the occupied alphas and j from the occupied betas, then a
// uniformly among the virtuals whose conservation partner b is unoccupied.
// Each unordered pair (a,b) can be produced by two draws, hence the factor 2
// in p_gen.
func (o *MomSpace) Gen(rng *rand.Rand, d det.Det, occ *Occ) Result {
	na, nb := len(occ.Alpha), len(occ.Beta)
	if na == 0 || nb == 0 {
		return Null()
	}
	i := occ.Alpha[rng.Intn(na)]
	j := occ.Beta[rng.Intn(nb)]
	pi, pj := i/2, j/2

	// enumerate the allowed targets: a virtual, b = k_i+k_j-k_a with the
	// opposite spin, also virtual
	o.valid = o.valid[:0]
	nbasis := o.S.NBasis()
	for a := 0; a < nbasis; a++ {
		if d.Test(a) {
			continue
		}
		b := o.partner(pi, pj, a)
		if !d.Test(b) {
			o.valid = append(o.valid, a)
		}
	}
	if len(o.valid) == 0 {
		return Null()
	}
	a := o.valid[rng.Intn(len(o.valid))]
	b := o.partner(pi, pj, a)

	from, to := orderPair(i, j), orderPair(a, b)
	ex := det.Parity(d, det.Excit{Nexcit: 2, From: from, To: to})
	return Result{
		Exc:     ex,
		DNew:    det.Apply(d, ex),
		PGen:    2 / float64(na*nb*len(o.valid)),
		Hij:     o.S.OffDiag(d, ex),
		Allowed: true,
	}
}

// partner returns the spin-orbital forced by momentum and spin conservation
func (o *MomSpace) partner(pi, pj, a int) int {
	pb := o.S.ConservedTarget(pi, pj, a/2)
	return 2*pb + 1 - a%2
}

func orderPair(x, y int) [2]int {
	if x < y {
		return [2]int{x, y}
	}
	return [2]int{y, x}
}
