// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Dense APSP (Floyd–Warshall) with deterministic loop order, used for the
//     distance representation.
//
// Contract:
//   - Square matrix; +Inf means "no path"; diagonal must be 0 before calling.

package matrix

import (
	"fmt"
	"math"

	"github.com/leotrs/smol/core"
)

// distance returns the hop-distance matrix of g and true, or (nil, false)
// when g is disconnected. A disconnected graph never yields a matrix with
// +Inf or placeholder zeros in it.
func distance(g *core.Graph) (*Dense, bool) {
	d := adjacency(g)
	initDistancesInPlace(d)
	floydWarshallInPlace(d)
	for _, v := range d.data {
		if math.IsInf(v, 1) {
			return nil, false
		}
	}

	return d, true
}

// initDistancesInPlace converts adjacency (0 / 1) into the initial distance
// matrix: diag = 0; off-diagonal 0 -> +Inf; non-zero unchanged.
func initDistancesInPlace(d *Dense) {
	n := d.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			switch {
			case i == j:
				d.set(i, j, 0)
			case d.at(i, j) == 0:
				d.set(i, j, math.Inf(1))
			}
		}
	}
}

// floydWarshallInPlace runs the APSP closure on a square *Dense.
//
// Loop order is fixed (k → i → j) for deterministic accumulation.
// Time: O(n^3); Extra space: O(1).
func floydWarshallInPlace(d *Dense) {
	n := d.r

	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	data := d.data

	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if math.IsInf(ik, 1) { // i cannot reach k
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] { // strict improvement only
					data[baseI+j] = cand
				}
			}
		}
	}
}

// FloydWarshall computes all-pairs shortest paths in place on a square m
// whose off-diagonal +Inf entries mean "no edge" and whose diagonal is 0.
func FloydWarshall(m *Dense) error {
	if m == nil {
		return matrixErrorf(opFloydWarshall, ErrNilMatrix)
	}
	if m.r != m.c {
		return matrixErrorf(opFloydWarshall, fmt.Errorf("%dx%d: %w", m.r, m.c, ErrNonSquare))
	}
	floydWarshallInPlace(m)

	return nil
}
