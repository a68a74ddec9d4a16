// SPDX-License-Identifier: MIT
// Package: smol/builder
//
// families.go: bipartite, product and named families.
//
// Labelling:
//   • CompleteBipartite(a,b): left 0..a-1, right a..a+b-1.
//   • Prism(k), Ladder(k):    outer 0..k-1, inner k..2k-1, rung i ~ i+k.
//   • Fan(k):                 rim path 0..k-1, apex k.
//   • Windmill(k,b):          centre 0, blade j on 1+j(k-1)..(j+1)(k-1).
//   • Petersen():             outer 5-cycle 0..4, spokes i ~ i+5,
//                             inner pentagram i+5 ~ (i+2 mod 5)+5.

package builder

import (
	"math/rand"

	"github.com/leotrs/smol/core"
)

// CompleteBipartite returns K_{a,b}.
func CompleteBipartite(a, b int) (*core.Graph, error) {
	if err := validateMin(MethodCompleteBipartite, "a", a, MinPartition); err != nil {
		return nil, err
	}
	if err := validateMin(MethodCompleteBipartite, "b", b, MinPartition); err != nil {
		return nil, err
	}
	edges := make([]core.Edge, 0, a*b)
	for i := 0; i < a; i++ {
		for j := 0; j < b; j++ {
			edges = append(edges, core.Edge{U: i, V: a + j})
		}
	}

	return finish(MethodCompleteBipartite, a+b, edges)
}

// Prism returns the circular ladder C_k □ K_2.
func Prism(k int) (*core.Graph, error) {
	if err := validateMin(MethodPrism, "k", k, MinPrismRungs); err != nil {
		return nil, err
	}
	edges := append(cycleEdges(0, k), cycleEdges(k, k)...)

	return finish(MethodPrism, 2*k, append(edges, rungs(k)...))
}

// Ladder returns P_k □ K_2.
func Ladder(k int) (*core.Graph, error) {
	if err := validateMin(MethodLadder, "k", k, MinLadderRungs); err != nil {
		return nil, err
	}
	edges := append(pathEdges(0, k), pathEdges(k, k)...)

	return finish(MethodLadder, 2*k, append(edges, rungs(k)...))
}

func rungs(k int) []core.Edge {
	out := make([]core.Edge, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, core.Edge{U: i, V: i + k})
	}

	return out
}

// Fan returns P_k joined to one apex vertex.
func Fan(k int) (*core.Graph, error) {
	if err := validateMin(MethodFan, "k", k, MinFanPath); err != nil {
		return nil, err
	}
	edges := pathEdges(0, k)
	for i := 0; i < k; i++ {
		edges = append(edges, core.Edge{U: i, V: k})
	}

	return finish(MethodFan, k+1, edges)
}

// Windmill returns Wd(k,b): b copies of K_k glued at one shared vertex.
func Windmill(k, b int) (*core.Graph, error) {
	if err := validateMin(MethodWindmill, "k", k, MinWindmillClique); err != nil {
		return nil, err
	}
	if err := validateMin(MethodWindmill, "b", b, MinWindmillBlades); err != nil {
		return nil, err
	}
	var edges []core.Edge
	for j := 0; j < b; j++ {
		blade := make([]int, 0, k)
		blade = append(blade, 0)
		for i := 0; i < k-1; i++ {
			blade = append(blade, 1+j*(k-1)+i)
		}
		for x := 0; x < len(blade); x++ {
			for y := x + 1; y < len(blade); y++ {
				edges = append(edges, core.Edge{U: blade[x], V: blade[y]})
			}
		}
	}

	return finish(MethodWindmill, 1+b*(k-1), edges)
}

// Petersen returns the Petersen graph.
func Petersen() *core.Graph {
	edges := make([]core.Edge, 0, 15)
	for i := 0; i < 5; i++ {
		edges = append(edges,
			core.Edge{U: i, V: (i + 1) % 5},
			core.Edge{U: i, V: i + 5},
			core.Edge{U: i + 5, V: (i+2)%5 + 5},
		)
	}

	return core.MustNew(10, edges)
}

// DisjointUnion places the operands side by side, shifting the labels of
// each by the total order of those before it.
func DisjointUnion(gs ...*core.Graph) (*core.Graph, error) {
	if len(gs) == 0 {
		return nil, builderErrorf(MethodDisjointUnion, ErrNoGraphs, "0 operands")
	}
	var (
		off   int
		edges []core.Edge
	)
	for _, g := range gs {
		for _, e := range g.Edges() {
			edges = append(edges, core.Edge{U: e.U + off, V: e.V + off})
		}
		off += g.N()
	}

	return finish(MethodDisjointUnion, off, edges)
}

// RandomSparse samples G(n,p): each of the C(n,2) pairs is an edge
// independently with probability p, visiting pairs in lexicographic order so
// the result is a function of the rng state.
func RandomSparse(n int, p float64, rng *rand.Rand) (*core.Graph, error) {
	if err := validateMin(MethodRandomSparse, "n", n, 1); err != nil {
		return nil, err
	}
	if err := validateProbability(MethodRandomSparse, p); err != nil {
		return nil, err
	}
	if rng == nil && p > MinProbability && p < MaxProbability {
		return nil, builderErrorf(MethodRandomSparse, ErrNeedRandSource, "p=%.6f", p)
	}

	var edges []core.Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if p == MaxProbability || (p > MinProbability && rng.Float64() < p) {
				edges = append(edges, core.Edge{U: i, V: j})
			}
		}
	}

	return finish(MethodRandomSparse, n, edges)
}
