// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"

	"github.com/leotrs/smol/core"
)

// Representation is one matrix view of a graph.
//
//   - Applicable=false means the kind is undefined for this graph (distance on
//     a disconnected graph). M is nil in that case; this is an expected result,
//     not an error.
//   - Arcs is set for arc-indexed kinds and gives the directed edge behind each
//     row/column.
type Representation struct {
	Kind       Kind
	M          *Dense
	Applicable bool
	Arcs       []Arc
}

// Dim returns the matrix order, 0 when not applicable.
func (r Representation) Dim() int {
	if r.M == nil {
		return 0
	}

	return r.M.Rows()
}

// Build constructs the kind representation of g.
//
// Implementation:
//   - Stage 1: validate (g non-nil, kind declared).
//   - Stage 2: dispatch over the closed Kind set; every builder reads only
//     the sorted neighbour lists of g, so output is deterministic.
//
// Errors: ErrGraphNil, ErrUnknownKind. Graph validity (loops, multi-edges,
// range) is already enforced by core.New.
//
// Complexity: O(n²) for vertex-indexed kinds, O(n³) for Distance,
// O((2m)² + Σ deg²) for arc-indexed kinds.
func Build(g *core.Graph, kind Kind) (Representation, error) {
	if g == nil {
		return Representation{}, matrixErrorf(opBuild, ErrGraphNil)
	}

	rep := Representation{Kind: kind, Applicable: true}
	switch kind {
	case Adjacency:
		rep.M = adjacency(g)
	case Kirchhoff:
		rep.M = laplacian(g, -1)
	case Signless:
		rep.M = laplacian(g, +1)
	case NormalizedLaplacian:
		rep.M = normalizedLaplacian(g)
	case NonBacktracking:
		rep.Arcs = Arcs(g)
		rep.M = hashimoto(g, rep.Arcs)
	case NBLTransition:
		rep.Arcs = Arcs(g)
		rep.M = transition(g, rep.Arcs)
	case Distance:
		d, ok := distance(g)
		rep.M, rep.Applicable = d, ok
	default:
		return Representation{}, matrixErrorf(opBuild, fmt.Errorf("%v: %w", kind, ErrUnknownKind))
	}

	return rep, nil
}

// adjacency returns the symmetric 0/1 matrix A.
func adjacency(g *core.Graph) *Dense {
	n := g.N()
	a := newSquare(n)
	for _, e := range g.Edges() {
		a.set(e.U, e.V, 1)
		a.set(e.V, e.U, 1)
	}

	return a
}

// laplacian returns D + sign·A (sign=-1 Kirchhoff, +1 signless).
func laplacian(g *core.Graph, sign float64) *Dense {
	n := g.N()
	l := newSquare(n)
	for v := 0; v < n; v++ {
		l.set(v, v, float64(g.Degree(v)))
	}
	for _, e := range g.Edges() {
		l.set(e.U, e.V, sign)
		l.set(e.V, e.U, sign)
	}

	return l
}

// normalizedLaplacian returns I − D^{-1/2} A D^{-1/2} with D^{-1/2}[v,v]=0
// for isolated v, so the diagonal is 1 everywhere.
func normalizedLaplacian(g *core.Graph) *Dense {
	n := g.N()
	l := newSquare(n)
	inv := make([]float64, n)
	for v := 0; v < n; v++ {
		if d := g.Degree(v); d > 0 {
			inv[v] = 1 / math.Sqrt(float64(d))
		}
		l.set(v, v, 1)
	}
	for _, e := range g.Edges() {
		w := -inv[e.U] * inv[e.V]
		l.set(e.U, e.V, w)
		l.set(e.V, e.U, w)
	}

	return l
}
