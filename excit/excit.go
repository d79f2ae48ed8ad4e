// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package excit implements biased random draws of connected determinants
package excit

import (
	"math/rand"

	"github.com/cpmech/goqmc/det"
)

// Result carries one attempted excitation. When Allowed is false the draw hit
// a forbidden configuration: Hij is zero and PGen is one, so downstream
// spawning needs no division guard and the single/double split stays
// unrenormalised.
type Result struct {
	Exc     det.Excit
	DNew    det.Det
	PGen    float64
	Hij     float64
	Allowed bool
}

// Null returns the null excitation
func Null() Result {
	return Result{PGen: 1}
}

// Occ caches the decoded occupation of the current determinant; the walker
// loop refreshes it once per determinant and hands it to the generator
type Occ struct {
	All   []int
	Alpha []int
	Beta  []int
}

// Decode refreshes the cached lists
func (o *Occ) Decode(d det.Det) {
	o.All = d.Decode(o.All)
	o.Alpha, o.Beta = d.DecodeSpin(o.Alpha, o.Beta)
}

// Generator samples a connected determinant D' from D and reports the
// generation probability and Hamiltonian element of the move
type Generator interface {
	Gen(rng *rand.Rand, d det.Det, occ *Occ) Result
}
