// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qmc

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/stat"
)

// BlockStat is one level of the reblocking analysis
type BlockStat struct {
	BlockSize int
	NBlocks   int
	Mean      float64
	StdErr    float64
}

// Reblock runs a blocking analysis on a correlated series: successive levels
// average pairs of neighbouring points, so the standard error climbs until
// the blocks decorrelate and then plateaus. The plateau value is the honest
// error estimate of the mean.
func Reblock(series []float64) (levels []BlockStat) {
	if len(series) < 2 {
		chk.Panic("blocking analysis needs at least two points")
	}
	cur := append([]float64(nil), series...)
	size := 1
	for len(cur) >= 2 {
		mean := stat.Mean(cur, nil)
		sd := stat.StdDev(cur, nil)
		levels = append(levels, BlockStat{
			BlockSize: size,
			NBlocks:   len(cur),
			Mean:      mean,
			StdErr:    sd / math.Sqrt(float64(len(cur))),
		})
		next := make([]float64, 0, len(cur)/2)
		for i := 0; i+1 < len(cur); i += 2 {
			next = append(next, 0.5*(cur[i]+cur[i+1]))
		}
		cur = next
		size *= 2
	}
	return
}

// ProjEnergySeries divides the per-report accumulators into the
// projected-energy series fed to Reblock, skipping reports with an empty
// reference population
func ProjEnergySeries(h00 float64, num, den []float64) (series []float64) {
	for i, n := range num {
		if den[i] != 0 {
			series = append(series, h00+n/den[i])
		}
	}
	return
}
