// SPDX-License-Identifier: MIT
// Package: smol/builder
//
// classic.go: paths, stars, cycles, complete graphs and wheels.
//
// Labelling (stable, relied on by tests):
//   • Path(n):     0-1-…-(n-1).
//   • Star(n):     centre 0, leaves 1..n-1.
//   • Cycle(n):    i ~ (i+1) mod n.
//   • Wheel(n):    rim Cycle(n-1) on 0..n-2, hub n-1.

package builder

import (
	"github.com/leotrs/smol/core"
)

// Path returns the path P_n on n ≥ 1 vertices.
func Path(n int) (*core.Graph, error) {
	if err := validateMin(MethodPath, "n", n, MinPathNodes); err != nil {
		return nil, err
	}

	return finish(MethodPath, n, pathEdges(0, n))
}

// Star returns K_{1,n-1} with centre 0.
func Star(n int) (*core.Graph, error) {
	if err := validateMin(MethodStar, "n", n, MinStarNodes); err != nil {
		return nil, err
	}
	edges := make([]core.Edge, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, core.Edge{U: 0, V: i})
	}

	return finish(MethodStar, n, edges)
}

// Cycle returns C_n for n ≥ 3.
func Cycle(n int) (*core.Graph, error) {
	if err := validateMin(MethodCycle, "n", n, MinCycleNodes); err != nil {
		return nil, err
	}

	return finish(MethodCycle, n, cycleEdges(0, n))
}

// Complete returns K_n.
func Complete(n int) (*core.Graph, error) {
	if err := validateMin(MethodComplete, "n", n, MinCompleteNodes); err != nil {
		return nil, err
	}
	edges := make([]core.Edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, core.Edge{U: i, V: j})
		}
	}

	return finish(MethodComplete, n, edges)
}

// Wheel returns W_n = C_{n-1} + hub, n ≥ 4 vertices in total.
func Wheel(n int) (*core.Graph, error) {
	if err := validateMin(MethodWheel, "n", n, MinWheelNodes); err != nil {
		return nil, err
	}
	hub := n - 1
	edges := cycleEdges(0, hub)
	for i := 0; i < hub; i++ {
		edges = append(edges, core.Edge{U: i, V: hub})
	}

	return finish(MethodWheel, n, edges)
}

// pathEdges emits the path on vertices off..off+n-1.
func pathEdges(off, n int) []core.Edge {
	edges := make([]core.Edge, 0, n)
	for i := 1; i < n; i++ {
		edges = append(edges, core.Edge{U: off + i - 1, V: off + i})
	}

	return edges
}

// cycleEdges emits the cycle on vertices off..off+n-1 (n ≥ 3).
func cycleEdges(off, n int) []core.Edge {
	return append(pathEdges(off, n), core.Edge{U: off, V: off + n - 1})
}

// finish hands the edge list to core.New and tags any failure with method.
func finish(method string, n int, edges []core.Edge) (*core.Graph, error) {
	g, err := core.New(n, edges)
	if err != nil {
		return nil, builderErrorf(method, err, "n=%d", n)
	}

	return g, nil
}
