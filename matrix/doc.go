// SPDX-License-Identifier: MIT

// Package matrix is the Matrix Builder: it turns a core.Graph into each of the
// seven matrix representations smol fingerprints.
//
// What:
//
//   - Dense: a small row-major float64 matrix with checked accessors, Mul,
//     Trace and symmetry checks.
//   - Kind: the closed enumeration of representations
//     (adj, kirchhoff, signless, lap, nb, nbl, dist).
//   - Build(g, kind): pure, deterministic construction with an exhaustive
//     switch over Kind.
//
// Representations:
//
//	Adjacency            A[i][j] = 1 iff {i,j} ∈ E
//	Kirchhoff            L = D − A
//	Signless             Q = D + A
//	NormalizedLaplacian  I − D^{-1/2} A D^{-1/2}   (isolated v: no off-diagonal mass)
//	NonBacktracking      B[(u,v),(v,x)] = 1, x ≠ u      (2m×2m, arcs sorted)
//	NBLTransition        T = D_B^{-1} B                 (zero row when deg(v)=1)
//	Distance             hop distances; Applicable=false when disconnected
//
// Vertex-indexed kinds are n×n; arc-indexed kinds are 2m×2m and 0×0 when the
// graph has no edges.
//
// Not applicable vs. error:
//
//	Distance on a disconnected graph is a normal result: Representation with
//	Applicable=false and M=nil. Errors are reserved for programmer mistakes
//	(nil graph, undeclared Kind).
//
// Determinism:
//
//	Every builder reads the sorted neighbour lists of core.Graph and writes in
//	fixed loop order; identical graphs produce bit-identical matrices.
//
// Hints:
//   - Use rep.Kind.Symmetric() to pick the eigensolver downstream.
//   - rep.Arcs gives the directed edge behind each row of nb/nbl, handy when
//     debugging a walk count.
package matrix
