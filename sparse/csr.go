// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sparse implements CSR kernels and the deterministic diagonaliser
package sparse

import (
	"sync"

	"github.com/cpmech/gosl/chk"
)

// CSR holds a matrix in compressed sparse row storage. With Symmetric only
// the upper triangle (including the diagonal) is stored and the symmetric
// kernels reconstruct the other triangle on the fly.
type CSR struct {
	Nrow, Ncol int
	Symmetric  bool
	Values     []float64
	ColInd     []int
	RowPtr     []int
}

// Builder accumulates entries before compression
type Builder struct {
	nrow, ncol int
	rows       []map[int]float64
}

// NewBuilder returns a builder for an nrow x ncol matrix
func NewBuilder(nrow, ncol int) (o *Builder) {
	if nrow < 1 || ncol < 1 {
		chk.Panic("matrix dimensions (%d,%d) are invalid", nrow, ncol)
	}
	o = &Builder{nrow: nrow, ncol: ncol}
	o.rows = make([]map[int]float64, nrow)
	for i := range o.rows {
		o.rows[i] = make(map[int]float64)
	}
	return
}

// Put adds v to entry (i,j)
func (o *Builder) Put(i, j int, v float64) {
	o.rows[i][j] += v
}

// ToCSR compresses the entries. With symmetric, entries below the diagonal
// are rejected: one triangle only.
func (o *Builder) ToCSR(symmetric bool) (m *CSR) {
	m = &CSR{Nrow: o.nrow, Ncol: o.ncol, Symmetric: symmetric}
	m.RowPtr = make([]int, o.nrow+1)
	for i, row := range o.rows {
		m.RowPtr[i] = len(m.Values)
		cols := make([]int, 0, len(row))
		for j := range row {
			if symmetric && j < i {
				chk.Panic("symmetric storage keeps the upper triangle only. entry (%d,%d) is below", i, j)
			}
			cols = append(cols, j)
		}
		sortInts(cols)
		for _, j := range cols {
			m.Values = append(m.Values, row[j])
			m.ColInd = append(m.ColInd, j)
		}
	}
	m.RowPtr[o.nrow] = len(m.Values)
	return
}

// insertion sort; rows are short
func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// SymVecMul computes y = M*x for symmetric one-triangle storage. Stored
// off-diagonal entries scatter into the mirrored row as they stream by, so
// each entry is visited once. y is overwritten.
func SymVecMul(y []float64, m *CSR, x []float64) error {
	if !m.Symmetric {
		return chk.Err("SymVecMul needs symmetric storage")
	}
	for i := range y {
		y[i] = 0
	}
	for i := 0; i < m.Nrow; i++ {
		rowx := 0.0
		for idx := m.RowPtr[i]; idx < m.RowPtr[i+1]; idx++ {
			j, v := m.ColInd[idx], m.Values[idx]
			if j == i {
				y[i] += v * x[i]
				continue
			}
			y[j] += v * x[i]
			rowx += v * x[j]
		}
		y[i] += rowx
	}
	return nil
}

// SymVecMulPar is the loop-parallel variant of SymVecMul. The mirrored
// scatters race between rows, so each worker writes a private output buffer
// and the buffers are reduced at the end; no atomics, and the reduction order
// is fixed so results are reproducible across schedules.
func SymVecMulPar(y []float64, m *CSR, x []float64, ncpu int) error {
	if !m.Symmetric {
		return chk.Err("SymVecMulPar needs symmetric storage")
	}
	if ncpu < 2 {
		return SymVecMul(y, m, x)
	}
	bufs := make([][]float64, ncpu)
	var wg sync.WaitGroup
	chunk := (m.Nrow + ncpu - 1) / ncpu
	for ic := 0; ic < ncpu; ic++ {
		bufs[ic] = make([]float64, m.Ncol)
		wg.Add(1)
		go func(ic int) {
			defer wg.Done()
			yb := bufs[ic]
			lo, hi := ic*chunk, (ic+1)*chunk
			if hi > m.Nrow {
				hi = m.Nrow
			}
			for i := lo; i < hi; i++ {
				rowx := 0.0
				for idx := m.RowPtr[i]; idx < m.RowPtr[i+1]; idx++ {
					j, v := m.ColInd[idx], m.Values[idx]
					if j == i {
						yb[i] += v * x[i]
						continue
					}
					yb[j] += v * x[i]
					rowx += v * x[j]
				}
				yb[i] += rowx
			}
		}(ic)
	}
	wg.Wait()
	for i := range y {
		y[i] = 0
	}
	for ic := 0; ic < ncpu; ic++ {
		for i, v := range bufs[ic] {
			y[i] += v
		}
	}
	return nil
}

// VecMul computes y = M*x for general storage. y is overwritten.
func VecMul(y []float64, m *CSR, x []float64) error {
	if m.Symmetric {
		return chk.Err("VecMul needs general storage; use SymVecMul")
	}
	for i := 0; i < m.Nrow; i++ {
		y[i] = 0
		for idx := m.RowPtr[i]; idx < m.RowPtr[i+1]; idx++ {
			y[i] += m.Values[idx] * x[m.ColInd[idx]]
		}
	}
	return nil
}

// VecMulRow computes the single output component (M*x)_i of a general matrix
func VecMulRow(m *CSR, x []float64, i int) (yi float64, err error) {
	if m.Symmetric {
		return 0, chk.Err("VecMulRow needs general storage")
	}
	for idx := m.RowPtr[i]; idx < m.RowPtr[i+1]; idx++ {
		yi += m.Values[idx] * x[m.ColInd[idx]]
	}
	return
}
