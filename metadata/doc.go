// SPDX-License-Identifier: MIT

// Package metadata is the Structural Metadata Extractor: standard
// graph-theoretic invariants stored next to the spectra but computed
// independently of them (except algebraic connectivity, which reuses the
// spectral engine on the Kirchhoff matrix).
//
// Fields and how they are derived:
//
//	Bipartite                BFS layering 2-colour check per component
//	Planar                   per-block Demoucron–Malgrange–Pertuiset with the
//	                         m ≤ 3n−6 pre-check (blocks from dfs.Biconnected)
//	Diameter, Radius         eccentricities from all-pairs BFS
//	Girth                    bfs.Girth
//	TriangleCount            neighbour-pair adjacency per vertex / 3
//	ChromaticUpperBound      greedy largest-first colouring
//	CliqueUpperBound         min(ChromaticUpperBound, degeneracy+1)
//	AlgebraicConnectivity    second-smallest Kirchhoff eigenvalue
//	ClusteringGlobal         transitivity: 3·triangles / connected triples
//	ClusteringAvgLocal       mean local coefficient (gonum stat.Mean)
//	AvgPathLength            mean distance over ordered pairs
//	Assortativity            degree Pearson correlation (gonum stat.Correlation)
//
// The two *UpperBound fields are NOT exact values. Both are bounds from a
// greedy heuristic and are named so.
//
// Absence:
//
//	Diameter, Radius and AvgPathLength are absent on disconnected graphs;
//	Girth is absent on forests; Assortativity is absent when m=0 or every
//	edge end has the same degree. Absent values are Int/Float with
//	Valid=false, encoded as JSON null and SQL NULL.
package metadata
