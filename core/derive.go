// SPDX-License-Identifier: MIT

package core

// Derivations. Every method here returns a new Graph and leaves the receiver
// untouched.

// Relabel returns the graph with vertex v renamed to perm[v].
// perm must be a permutation of 0..n-1, else ErrBadPermutation.
func (g *Graph) Relabel(perm []int) (*Graph, error) {
	if len(perm) != g.n {
		return nil, coreErrorf(opRelabel, ErrBadPermutation, "len=%d, n=%d", len(perm), g.n)
	}
	hit := make([]bool, g.n)
	for v, p := range perm {
		if p < 0 || p >= g.n || hit[p] {
			return nil, coreErrorf(opRelabel, ErrBadPermutation, "perm[%d]=%d", v, p)
		}
		hit[p] = true
	}

	edges := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		edges[i] = Edge{U: perm[e.U], V: perm[e.V]}.Canonical()
	}

	return build(g.n, edges), nil
}

// Switch removes every edge in remove and then adds every edge in add.
//
// Errors:
//   - ErrEdgeNotFound     an edge to remove is absent
//   - ErrMultiEdge        an edge to add is already present (after removals)
//   - ErrSelfLoop, ErrVertexOutOfRange for malformed additions
//
// Switch does not check degree preservation; callers that need it (the switch
// detector) verify it separately.
func (g *Graph) Switch(remove, add []Edge) (*Graph, error) {
	set := make(map[Edge]struct{}, len(g.edges)+len(add))
	for _, e := range g.edges {
		set[e] = struct{}{}
	}
	for _, e := range remove {
		c := e.Canonical()
		if _, ok := set[c]; !ok {
			return nil, coreErrorf(opSwitch, ErrEdgeNotFound, "remove %v", c)
		}
		delete(set, c)
	}
	for _, e := range add {
		if e.U < 0 || e.U >= g.n || e.V < 0 || e.V >= g.n {
			return nil, coreErrorf(opSwitch, ErrVertexOutOfRange, "add %v with n=%d", e, g.n)
		}
		if e.U == e.V {
			return nil, coreErrorf(opSwitch, ErrSelfLoop, "add %v", e)
		}
		c := e.Canonical()
		if _, ok := set[c]; ok {
			return nil, coreErrorf(opSwitch, ErrMultiEdge, "add %v", c)
		}
		set[c] = struct{}{}
	}

	edges := make([]Edge, 0, len(set))
	for e := range set {
		edges = append(edges, e)
	}

	return build(g.n, edges), nil
}

// Complement returns the graph on the same vertices whose edges are exactly
// the non-edges of g.
func (g *Graph) Complement() *Graph {
	edges := make([]Edge, 0, g.n*(g.n-1)/2-len(g.edges))
	for u := 0; u < g.n; u++ {
		for v := u + 1; v < g.n; v++ {
			if !g.HasEdge(u, v) {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}

	return build(g.n, edges)
}

// Induced returns the subgraph induced by vertices, relabelled 0..k-1 in the
// order given. Duplicates or out-of-range vertices are rejected.
func (g *Graph) Induced(vertices []int) (*Graph, error) {
	if len(vertices) == 0 {
		return nil, coreErrorf(opInduced, ErrInvalidOrder, "empty vertex set")
	}
	pos := make(map[int]int, len(vertices))
	for i, v := range vertices {
		if v < 0 || v >= g.n {
			return nil, coreErrorf(opInduced, ErrVertexOutOfRange, "vertex %d with n=%d", v, g.n)
		}
		if _, dup := pos[v]; dup {
			return nil, coreErrorf(opInduced, ErrBadPermutation, "vertex %d repeated", v)
		}
		pos[v] = i
	}

	var edges []Edge
	for _, e := range g.edges {
		i, okU := pos[e.U]
		j, okV := pos[e.V]
		if okU && okV {
			edges = append(edges, Edge{U: i, V: j}.Canonical())
		}
	}

	return build(len(vertices), edges), nil
}
