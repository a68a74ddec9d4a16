// Package bfs provides breadth-first search over a core.Graph, returning
// unweighted shortest-path distances, parent links and visit order, plus the
// all-pairs helpers the metadata extractor builds on.
//
// What
//
//   - BFS(g, start, opts...) explores vertices in non-decreasing distance
//     from start and returns a Result:
//   - Order: visit sequence
//   - Depth: distance per vertex, Unreached (-1) if not reached
//   - Parent: predecessor in the BFS tree, -1 for the root and unreached
//   - Hooks at two stages: OnEnqueue and OnVisit (may abort with an error).
//   - WithMaxDepth limits exploration; WithFilterNeighbor prunes edges.
//   - AllPairs(ctx, g) runs one BFS per vertex and returns the distance table;
//     Eccentricities derives per-vertex eccentricity from it.
//   - ShortestCycleThrough(g, v) returns the length of the shortest cycle
//     through v (girth is the minimum over all v).
//
// Determinism
//
//	core.Graph keeps adjacency lists sorted, and BFS enqueues neighbours in
//	that order, so the visit sequence is fully reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - BFS:      O(V + E) time, O(V) memory
//   - AllPairs: O(V·(V + E)) time, O(V²) memory
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex is out of range.
//   - ErrOptionViolation      if an Option is invalid (negative MaxDepth).
//   - context errors          if the context is cancelled mid-walk.
//   - Wrapped hook errors from OnVisit.
package bfs
