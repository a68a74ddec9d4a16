// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Arc-indexed representations: the Hashimoto matrix B and the
//     non-backtracking transition matrix T = D_B^{-1} B.
//
// Contract:
//   - Every undirected edge {u,v} yields the arcs (u,v) and (v,u); arcs are
//     ordered lexicographically, which fixes the row/column order.
//   - B[(u,v),(v,x)] = 1 for every neighbour x of v with x != u.
//   - T has row (u,v) equal to B's row divided by deg(v)-1; when deg(v) = 1
//     the row is zero (the walk has nowhere to go).
//   - Both are 2m×2m, and 0×0 for an edgeless graph.
//
// Construction walks adjacency lists (successors of (u,v) are read from
// Neighbors(v)); it never scans a dense (2m)² candidate grid.

package matrix

import (
	"fmt"

	"github.com/leotrs/smol/core"
)

// Arc is a directed edge From→To.
type Arc struct {
	From, To int
}

func (a Arc) String() string {
	return fmt.Sprintf("(%d,%d)", a.From, a.To)
}

// Arcs returns the 2m directed edges of g in lexicographic order.
func Arcs(g *core.Graph) []Arc {
	arcs := make([]Arc, 0, 2*g.M())
	for u := 0; u < g.N(); u++ {
		for _, v := range g.Neighbors(u) {
			arcs = append(arcs, Arc{From: u, To: v})
		}
	}

	return arcs
}

// arcIndex maps each arc to its row index.
func arcIndex(arcs []Arc) map[Arc]int {
	idx := make(map[Arc]int, len(arcs))
	for i, a := range arcs {
		idx[a] = i
	}

	return idx
}

// hashimoto builds B from adjacency lists.
func hashimoto(g *core.Graph, arcs []Arc) *Dense {
	b := newSquare(len(arcs))
	idx := arcIndex(arcs)
	for i, a := range arcs {
		for _, x := range g.Neighbors(a.To) {
			if x == a.From {
				continue
			}
			b.set(i, idx[Arc{From: a.To, To: x}], 1)
		}
	}

	return b
}

// transition builds T = D_B^{-1} B. Rows of arcs into degree-1 vertices stay zero.
func transition(g *core.Graph, arcs []Arc) *Dense {
	t := newSquare(len(arcs))
	idx := arcIndex(arcs)
	for i, a := range arcs {
		out := g.Degree(a.To) - 1
		if out == 0 {
			continue
		}
		w := 1 / float64(out)
		for _, x := range g.Neighbors(a.To) {
			if x == a.From {
				continue
			}
			t.set(i, idx[Arc{From: a.To, To: x}], w)
		}
	}

	return t
}
