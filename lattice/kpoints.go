// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Dims extracts the edge lengths of a non-tilted (diagonal) supercell.
// Momentum-space tables are only defined for such cells.
func Dims(cfg Config) (dims []int) {
	dims = make([]int, cfg.Ndim)
	for d, v := range cfg.Vecs {
		for k, x := range v {
			if k == d {
				if x < 1 {
					chk.Panic("lattice vector %v has a non-positive diagonal entry", v)
				}
				dims[d] = x
			} else if x != 0 {
				chk.Panic("momentum-space tables need a non-tilted cell. vector %v is tilted", v)
			}
		}
	}
	return
}

// KPoints enumerates the wavevectors of a non-tilted supercell in reduced
// integer coordinates, one per site, in lexicographic order
func KPoints(dims []int) (kvecs [][]int) {
	n := 1
	for _, l := range dims {
		n *= l
	}
	for m := 0; m < n; m++ {
		c := m
		k := make([]int, len(dims))
		for d := len(dims) - 1; d >= 0; d-- {
			k[d] = c % dims[d]
			c /= dims[d]
		}
		kvecs = append(kvecs, k)
	}
	return
}

// Dispersion returns the tight-binding band energy of wavevector k:
// -2t sum_d cos(2 pi k_d / L_d)
func Dispersion(t float64, k, dims []int) (eps float64) {
	for d, l := range dims {
		eps -= 2 * t * math.Cos(2*math.Pi*float64(k[d])/float64(l))
	}
	return
}
