// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qmc

import (
	"math"
	"math/rand"

	"github.com/cpmech/goqmc/excit"
)

// stochRound rounds x to an integer stochastically: floor plus a Bernoulli
// draw on the remainder. x must be non-negative.
func stochRound(rng *rand.Rand, x float64) int32 {
	n := int32(x)
	if rng.Float64() < x-float64(n) {
		n++
	}
	return n
}

// SpawnProgeny decides the number and sign of children of one spawn attempt:
// n ~ tau |H_ij| / p_gen, with the sign flipped against the parent when the
// matrix element is positive. A null attempt produces nothing.
func SpawnProgeny(rng *rand.Rand, res excit.Result, parentSign int32, tau float64) int32 {
	if !res.Allowed || res.Hij == 0 {
		return 0
	}
	n := stochRound(rng, tau*math.Abs(res.Hij)/res.PGen)
	if n == 0 {
		return 0
	}
	if res.Hij > 0 {
		return -parentSign * n
	}
	return parentSign * n
}

// DeathProbability is tau (H_ii - S): positive kills, negative clones
func DeathProbability(tau, diag, shift float64) float64 {
	return tau * (diag - shift)
}

// DoDeath applies death/cloning to a whole signed population at once with the
// same floor-plus-Bernoulli rounding, and returns the new population together
// with the number of particles that died (negative when cloning)
func DoDeath(rng *rand.Rand, pop int32, pd float64) (newPop, ndeath int32) {
	if pop == 0 || pd == 0 {
		return pop, 0
	}
	mag := pop
	if mag < 0 {
		mag = -mag
	}
	n := stochRound(rng, math.Abs(pd)*float64(mag))
	if pd > 0 {
		// killing beyond the population flips the sign
		return pop - sign32(pop)*n, n
	}
	return pop + sign32(pop)*n, -n
}
