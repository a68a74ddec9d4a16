// Package core defines the immutable simple undirected Graph every other smol
// package consumes.
//
// A Graph G = (V,E) has vertices 0..n-1 and a set of unordered edges between
// distinct vertices. There are no loops, no parallel edges, no weights and no
// direction: exactly the objects a graph enumerator (nauty geng) produces and
// that spectral fingerprinting is defined on.
//
// Why an immutable graph?
//
//   - Workers in the batch pipeline share graphs read-only; no locks needed.
//   - Derivations (Relabel, Switch, Complement, Induced) always return a fresh
//     Graph, so a switched candidate never aliases the graph it came from.
//   - Edges() and Neighbors() are precomputed and sorted, which makes every
//     downstream matrix and traversal deterministic.
//
// Construction:
//
//	g, err := core.New(4, []core.Edge{{0, 1}, {1, 2}, {2, 3}})
//	if err != nil {
//	    // errors.Is(err, core.ErrSelfLoop) etc.
//	}
//
// Validation is strict. Self-loops, repeated edges, out-of-range endpoints and
// n <= 0 are rejected with a wrapped sentinel; nothing is silently coerced.
//
// Complexity:
//
//   - New:        O(n + m log m)
//   - HasEdge:    O(log deg(u))
//   - Neighbors:  O(1) (returns a copy: O(deg))
//   - Components: O(n + m)
package core
