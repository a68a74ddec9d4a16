// SPDX-License-Identifier: MIT

package metadata

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/leotrs/smol/bfs"
	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/dfs"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/spectrum"
)

// ErrGraphNil is returned when Compute receives a nil graph.
var ErrGraphNil = errors.New("metadata: graph is nil")

const opCompute = "metadata.Compute"

// Metadata is the structural summary of one graph.
//
// CliqueUpperBound and ChromaticUpperBound are upper bounds from a greedy
// heuristic, NOT the clique and chromatic numbers.
type Metadata struct {
	N int `json:"n"`
	M int `json:"m"`

	Bipartite bool `json:"bipartite"`
	Planar    bool `json:"planar"`
	Regular   bool `json:"regular"`
	Connected bool `json:"connected"`

	Diameter Int `json:"diameter"` // absent if disconnected
	Radius   Int `json:"radius"`   // absent if disconnected
	Girth    Int `json:"girth"`    // absent if acyclic

	MinDegree     int `json:"min_degree"`
	MaxDegree     int `json:"max_degree"`
	TriangleCount int `json:"triangle_count"`

	CliqueUpperBound    int `json:"clique_number_upper_bound"`
	ChromaticUpperBound int `json:"chromatic_number_upper_bound"`

	AlgebraicConnectivity float64 `json:"algebraic_connectivity"`
	ClusteringGlobal      float64 `json:"clustering_global"`
	ClusteringAvgLocal    float64 `json:"clustering_avg_local"`
	AvgPathLength         Float   `json:"avg_path_length"` // absent if disconnected
	Assortativity         Float   `json:"assortativity"`   // absent if m=0 or all degrees equal
}

// Compute derives every metadata field of g.
func Compute(g *core.Graph) (Metadata, error) {
	if g == nil {
		return Metadata{}, fmt.Errorf("%s: %w", opCompute, ErrGraphNil)
	}

	md := Metadata{N: g.N(), M: g.M()}

	degs := g.Degrees()
	md.MinDegree, md.MaxDegree = minMax(degs)
	md.Regular = md.MinDegree == md.MaxDegree
	md.Bipartite = isBipartite(g)
	md.Connected = g.IsConnected()

	planar, err := IsPlanar(g)
	if err != nil {
		return Metadata{}, fmt.Errorf("%s: %w", opCompute, err)
	}
	md.Planar = planar

	if err := md.fillDistances(g); err != nil {
		return Metadata{}, fmt.Errorf("%s: %w", opCompute, err)
	}
	if girth, ok := bfs.Girth(g); ok {
		md.Girth = SomeInt(girth)
	}

	tri := triangles(g)
	md.TriangleCount = int(floats.Sum(intsToFloats(tri))) / 3
	md.ClusteringGlobal, md.ClusteringAvgLocal = clustering(degs, tri)

	md.ChromaticUpperBound = GreedyColouring(g)
	md.CliqueUpperBound = min(md.ChromaticUpperBound, Degeneracy(g)+1)

	ac, err := algebraicConnectivity(g)
	if err != nil {
		return Metadata{}, fmt.Errorf("%s: %w", opCompute, err)
	}
	md.AlgebraicConnectivity = ac
	md.Assortativity = assortativity(g)

	return md, nil
}

func minMax(xs []int) (lo, hi int) {
	for i, x := range xs {
		if i == 0 || x < lo {
			lo = x
		}
		if i == 0 || x > hi {
			hi = x
		}
	}

	return lo, hi
}

func intsToFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}

	return out
}

// fillDistances sets diameter, radius and average path length from the
// all-pairs BFS table; all three stay absent on a disconnected graph.
func (md *Metadata) fillDistances(g *core.Graph) error {
	dist, err := bfs.AllPairs(context.Background(), g)
	if err != nil {
		return err
	}
	ecc, ok := bfs.Eccentricities(dist)
	if !ok {
		return nil
	}

	lo, hi := minMax(ecc)
	md.Diameter, md.Radius = SomeInt(hi), SomeInt(lo)

	n := g.N()
	if n == 1 {
		md.AvgPathLength = SomeFloat(0)
		return nil
	}
	var total int
	for _, row := range dist {
		for _, d := range row {
			total += d
		}
	}
	md.AvgPathLength = SomeFloat(float64(total) / float64(n*(n-1)))

	return nil
}

// isBipartite 2-colours a DFS forest by depth parity and checks every edge.
func isBipartite(g *core.Graph) bool {
	res, err := dfs.DFS(g, 0, dfs.WithFullTraversal())
	if err != nil {
		return false
	}
	for _, e := range g.Edges() {
		if res.Depth[e.U]%2 == res.Depth[e.V]%2 {
			return false
		}
	}

	return true
}

// triangles returns the number of triangles through each vertex.
func triangles(g *core.Graph) []int {
	out := make([]int, g.N())
	for v := range out {
		nb := g.Neighbors(v)
		for i := 0; i < len(nb); i++ {
			for j := i + 1; j < len(nb); j++ {
				if g.HasEdge(nb[i], nb[j]) {
					out[v]++
				}
			}
		}
	}

	return out
}

// clustering returns transitivity (3·triangles / connected triples) and the
// mean local clustering coefficient, vertices of degree < 2 counting as 0.
func clustering(degs, tri []int) (global, avgLocal float64) {
	if len(degs) == 0 {
		return 0, 0
	}

	local := make([]float64, len(degs))
	var triples, closed float64
	for v, d := range degs {
		pairs := float64(d*(d-1)) / 2
		triples += pairs
		closed += float64(tri[v])
		if pairs > 0 {
			local[v] = float64(tri[v]) / pairs
		}
	}
	if triples > 0 {
		global = closed / triples
	}

	return global, stat.Mean(local, nil)
}

// algebraicConnectivity is the second-smallest Kirchhoff eigenvalue, 0 for
// a single vertex.
func algebraicConnectivity(g *core.Graph) (float64, error) {
	if g.N() < 2 {
		return 0, nil
	}
	rep, err := matrix.Build(g, matrix.Kirchhoff)
	if err != nil {
		return 0, err
	}
	s, err := spectrum.Eigenvalues(rep)
	if err != nil {
		return 0, err
	}
	vals := s.Real()
	sort.Float64s(vals)
	if vals[1] < 0 {
		return 0, nil
	}

	return vals[1], nil
}

// assortativity is the Pearson correlation of degrees across edge ends,
// each edge counted in both directions.
func assortativity(g *core.Graph) Float {
	if g.M() == 0 {
		return Float{}
	}

	x := make([]float64, 0, 2*g.M())
	y := make([]float64, 0, 2*g.M())
	for _, e := range g.Edges() {
		du, dv := float64(g.Degree(e.U)), float64(g.Degree(e.V))
		x = append(x, du, dv)
		y = append(y, dv, du)
	}
	if stat.Variance(x, nil) == 0 {
		return Float{}
	}

	return SomeFloat(stat.Correlation(x, y, nil))
}
