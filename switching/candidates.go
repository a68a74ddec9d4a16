// SPDX-License-Identifier: MIT

package switching

import (
	"github.com/leotrs/smol/core"
)

// Candidates enumerates every valid 2-edge switch of g.
//
// Order: unordered edge pairs (e_i, e_j), i < j, in g's sorted edge order;
// within a pair the orientations (a,b)/(b,a) of e_i outermost and (c,d)/(d,c)
// of e_j innermost. The theorems read rows and columns of the cross matrix
// differently, so both role assignments of one edge change are produced.
func Candidates(g *core.Graph) []TwoEdge {
	if g == nil {
		return nil
	}
	edges := g.Edges()
	var out []TwoEdge
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			for _, first := range orientations(edges[i]) {
				for _, second := range orientations(edges[j]) {
					s := TwoEdge{V1: first.U, W1: first.V, V2: second.U, W2: second.V}
					if s.V1 == s.V2 || s.V1 == s.W2 || s.W1 == s.V2 || s.W1 == s.W2 {
						continue
					}
					if g.HasEdge(s.V1, s.W2) || g.HasEdge(s.V2, s.W1) {
						continue
					}
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func orientations(e core.Edge) [2]core.Edge {
	return [2]core.Edge{e, {U: e.V, V: e.U}}
}

// BipartiteCandidates enumerates bipartite swaps with |L1| = |L2| = k: for
// every hub pair h1 < h2, the exclusive leaves of each hub (neighbours of one
// hub, not of the other, not the other hub) and every pair of k-subsets, in
// lexicographic order.
func BipartiteCandidates(g *core.Graph, k int) []BipartiteSwap {
	if g == nil || k < 1 {
		return nil
	}
	var out []BipartiteSwap
	for h1 := 0; h1 < g.N(); h1++ {
		for h2 := h1 + 1; h2 < g.N(); h2++ {
			l1 := exclusive(g, h1, h2)
			l2 := exclusive(g, h2, h1)
			if len(l1) < k || len(l2) < k {
				continue
			}
			for _, a := range subsets(l1, k) {
				for _, b := range subsets(l2, k) {
					out = append(out, BipartiteSwap{H1: h1, H2: h2, L1: a, L2: b})
				}
			}
		}
	}

	return out
}

// exclusive lists neighbours of h other than o that are not adjacent to o.
func exclusive(g *core.Graph, h, o int) []int {
	var out []int
	for _, x := range g.Neighbors(h) {
		if x != o && !g.HasEdge(x, o) {
			out = append(out, x)
		}
	}

	return out
}

// subsets returns the k-subsets of xs (sorted input) in lexicographic order.
func subsets(xs []int, k int) [][]int {
	var (
		out [][]int
		cur []int
	)
	var rec func(start int)
	rec = func(start int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i <= len(xs)-(k-len(cur)); i++ {
			cur = append(cur, xs[i])
			rec(i + 1)
			cur = cur[:len(cur)-1]
		}
	}
	rec(0)

	return out
}
