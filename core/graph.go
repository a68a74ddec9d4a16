// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sort"
	"strings"
)

// Edge is an unordered pair of distinct vertices.
// Edges returned by a Graph are always canonical (U < V).
type Edge struct {
	U, V int
}

// Canonical returns the edge with U < V.
func (e Edge) Canonical() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}

	return e
}

// Other returns the endpoint of e that is not x. Undefined if x is not an endpoint.
func (e Edge) Other(x int) int {
	if e.U == x {
		return e.V
	}

	return e.U
}

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.U, e.V)
}

// Graph is an immutable simple undirected graph on vertices 0..n-1.
// The zero value is not usable; construct with New.
type Graph struct {
	n     int
	edges []Edge  // canonical, sorted lexicographically
	adj   [][]int // adj[v] sorted ascending
}

// New validates the edge list and returns the graph on n vertices.
//
// Errors (wrapped, match with errors.Is):
//   - ErrInvalidOrder     n <= 0
//   - ErrVertexOutOfRange an endpoint outside [0,n)
//   - ErrSelfLoop         an edge (v,v)
//   - ErrMultiEdge        the same unordered pair twice (in either orientation)
func New(n int, edges []Edge) (*Graph, error) {
	if n <= 0 {
		return nil, coreErrorf(opNew, ErrInvalidOrder, "n=%d", n)
	}

	seen := make(map[Edge]struct{}, len(edges))
	canon := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, coreErrorf(opNew, ErrVertexOutOfRange, "edge %v with n=%d", e, n)
		}
		if e.U == e.V {
			return nil, coreErrorf(opNew, ErrSelfLoop, "edge %v", e)
		}
		c := e.Canonical()
		if _, dup := seen[c]; dup {
			return nil, coreErrorf(opNew, ErrMultiEdge, "edge %v", c)
		}
		seen[c] = struct{}{}
		canon = append(canon, c)
	}

	return build(n, canon), nil
}

// MustNew is New for fixtures whose validity is known at compile time.
// It panics on error.
func MustNew(n int, edges []Edge) *Graph {
	g, err := New(n, edges)
	if err != nil {
		panic(err)
	}

	return g
}

// build assumes edges are canonical, unique and in range.
func build(n int, edges []Edge) *Graph {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		return edges[i].V < edges[j].V
	})

	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	for v := range adj {
		sort.Ints(adj[v])
	}

	return &Graph{n: n, edges: edges, adj: adj}
}

// N returns the number of vertices.
func (g *Graph) N() int { return g.n }

// M returns the number of edges.
func (g *Graph) M() int { return len(g.edges) }

// Edges returns a copy of the canonical edge list, sorted by (U,V).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// Neighbors returns a sorted copy of the neighbours of v.
// Out-of-range v yields nil.
func (g *Graph) Neighbors(v int) []int {
	if v < 0 || v >= g.n {
		return nil
	}
	out := make([]int, len(g.adj[v]))
	copy(out, g.adj[v])

	return out
}

// neighbors is the no-copy internal view used by traversals in this package.
func (g *Graph) neighbors(v int) []int { return g.adj[v] }

// Degree returns deg(v), or 0 for an out-of-range v.
func (g *Graph) Degree(v int) int {
	if v < 0 || v >= g.n {
		return 0
	}

	return len(g.adj[v])
}

// Degrees returns the degree of every vertex, indexed by vertex.
func (g *Graph) Degrees() []int {
	out := make([]int, g.n)
	for v := range g.adj {
		out[v] = len(g.adj[v])
	}

	return out
}

// DegreeSequence returns the degrees sorted in non-increasing order.
func (g *Graph) DegreeSequence() []int {
	ds := g.Degrees()
	sort.Sort(sort.Reverse(sort.IntSlice(ds)))

	return ds
}

// HasEdge reports whether {u,v} is an edge. Out-of-range endpoints yield false.
func (g *Graph) HasEdge(u, v int) bool {
	if u < 0 || u >= g.n || v < 0 || v >= g.n || u == v {
		return false
	}
	a := g.adj[u]
	i := sort.SearchInts(a, v)

	return i < len(a) && a[i] == v
}

// Equal reports whether g and h have the same order and the same labelled edge set.
// This is labelled equality, not isomorphism.
func (g *Graph) Equal(h *Graph) bool {
	if g == nil || h == nil {
		return g == h
	}
	if g.n != h.n || len(g.edges) != len(h.edges) {
		return false
	}
	for i := range g.edges {
		if g.edges[i] != h.edges[i] {
			return false
		}
	}

	return true
}

// String renders the graph as "n=<n> [u-v u-v ...]" for diagnostics.
func (g *Graph) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "n=%d [", g.n)
	for i, e := range g.edges {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')

	return sb.String()
}
