// Package dfs implements depth-first search and lowpoint-based block
// decomposition on a core.Graph.
//
// What:
//
//   - DFS(g, start, opts...): explores as far as possible along each branch
//     before backtracking. Supports pre- and post-order hooks, cancellation
//     via context.Context, depth limiting, neighbor filtering and forest
//     traversal (WithFullTraversal).
//   - Biconnected(g): Hopcroft–Tarjan lowpoints over the same recursion,
//     returning the blocks (maximal 2-connected subgraphs and bridges) and
//     the articulation points. The planarity test runs per block.
//
// Key Types & Constants:
//
//   - White, Gray, Black visitation markers in Result.State
//   - None for absent parent/depth entries
//   - Block{Vertices, Edges} with Subgraph() relabelling to 0..k-1
//
// Complexity:
//
//   - DFS:          Time O(V+E), Memory O(V)
//   - Biconnected:  Time O(V+E), Memory O(V+E) for the edge stack
//
// Errors:
//
//   - ErrGraphNil             graph pointer is nil
//   - ErrStartVertexNotFound  start vertex out of range
//   - context.Canceled        DFS canceled via context
//   - hook errors             propagated from OnVisit or OnExit
package dfs
