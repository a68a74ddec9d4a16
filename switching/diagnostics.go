// SPDX-License-Identifier: MIT

package switching

import (
	"math/big"
	"sort"

	"github.com/leotrs/smol/core"
)

// Diagnostics are the exact combinatorial quantities the theorems read.
// Exactly one of Switch and Swap is set, matching the configuration type.
type Diagnostics struct {
	Type   MechanismType      `json:"type" yaml:"type"`
	Switch *SwitchDiagnostics `json:"switch,omitempty" yaml:"switch,omitempty"`
	Swap   *SwapDiagnostics   `json:"swap,omitempty" yaml:"swap,omitempty"`
}

// SwitchDiagnostics describe a 2-edge switch (v1,v2,w1,w2). ext(x) is the set
// of neighbours of x outside the region {v1,v2,w1,w2}.
//
//	Cross[i][j]          |ext(v_i) ∩ ext(w_j)|
//	WeightedCross[i][j]  Σ 1/(deg(x)−1) over x ∈ ext(v_i) ∩ ext(w_j), deg(x) > 1
//	VV, WW               |ext(v1) ∩ ext(v2)|, |ext(w1) ∩ ext(w2)|
//	Shared               ext(w1) ∩ ext(w2)
//	Unique1, Unique2     ext(w1) − ext(w2), ext(w2) − ext(w1)
//	ColumnEdges[j]       edges between Unique_j ∩ ext(v1) and Unique_j ∩ ext(v2)
//	Triangles            |N(v1) ∩ N(w1)|, |N(v2) ∩ N(w2)|
type SwitchDiagnostics struct {
	Degrees        [4]int         `json:"degrees" yaml:"degrees"` // v1, v2, w1, w2
	ExtV1          []int          `json:"ext_v1" yaml:"ext_v1"`
	ExtV2          []int          `json:"ext_v2" yaml:"ext_v2"`
	ExtW1          []int          `json:"ext_w1" yaml:"ext_w1"`
	ExtW2          []int          `json:"ext_w2" yaml:"ext_w2"`
	Cross          [2][2]int      `json:"cross" yaml:"cross"`
	WeightedCross  [2][2]*big.Rat `json:"weighted_cross" yaml:"weighted_cross"`
	VV             int            `json:"vv" yaml:"vv"`
	WW             int            `json:"ww" yaml:"ww"`
	Shared         []int          `json:"shared" yaml:"shared"`
	Unique1        []int          `json:"unique1" yaml:"unique1"`
	Unique2        []int          `json:"unique2" yaml:"unique2"`
	UniqueDegrees1 []int          `json:"unique_degrees1" yaml:"unique_degrees1"`
	UniqueDegrees2 []int          `json:"unique_degrees2" yaml:"unique_degrees2"`
	ParallelV      bool           `json:"parallel_v" yaml:"parallel_v"`
	ParallelW      bool           `json:"parallel_w" yaml:"parallel_w"`
	ColumnEdges    [2][]core.Edge `json:"column_edges" yaml:"column_edges"`
	Triangles      [2]int         `json:"triangles" yaml:"triangles"`
}

// SwapDiagnostics describe a bipartite swap. ext is taken relative to the
// region {h1,h2} ∪ L1 ∪ L2.
//
//	CrossSums[i][j]  Σ_{l ∈ L_i} |ext(l) ∩ ext(h_j)|
type SwapDiagnostics struct {
	HubDegrees  [2]int    `json:"hub_degrees" yaml:"hub_degrees"`
	LeafDegrees [2][]int  `json:"leaf_degrees" yaml:"leaf_degrees"`
	ExtH1       []int     `json:"ext_h1" yaml:"ext_h1"`
	ExtH2       []int     `json:"ext_h2" yaml:"ext_h2"`
	CrossSums   [2][2]int `json:"cross_sums" yaml:"cross_sums"`
	LeafCount   [2]int    `json:"leaf_count" yaml:"leaf_count"`
}

// Diagnose computes the diagnostics of cfg on g. cfg must be valid on g.
func Diagnose(g *core.Graph, cfg Configuration) (Diagnostics, error) {
	if err := cfg.Validate(g); err != nil {
		return Diagnostics{}, err
	}
	switch c := cfg.(type) {
	case TwoEdge:
		return Diagnostics{Type: TwoEdgeSwitch, Switch: diagnoseSwitch(g, c)}, nil
	case BipartiteSwap:
		return Diagnostics{Type: BipartiteSwapType, Swap: diagnoseSwap(g, c)}, nil
	default:
		return Diagnostics{}, switchErrorf(opEvaluate, ErrUnknownType, "%T", cfg)
	}
}

type vset map[int]struct{}

func external(g *core.Graph, x int, region vset) vset {
	out := vset{}
	for _, y := range g.Neighbors(x) {
		if _, in := region[y]; !in {
			out[y] = struct{}{}
		}
	}

	return out
}

func regionOf(vs []int) vset {
	out := make(vset, len(vs))
	for _, v := range vs {
		out[v] = struct{}{}
	}

	return out
}

func (a vset) and(b vset) vset {
	out := vset{}
	for x := range a {
		if _, ok := b[x]; ok {
			out[x] = struct{}{}
		}
	}

	return out
}

func (a vset) minus(b vset) vset {
	out := vset{}
	for x := range a {
		if _, ok := b[x]; !ok {
			out[x] = struct{}{}
		}
	}

	return out
}

func (a vset) sorted() []int {
	out := make([]int, 0, len(a))
	for x := range a {
		out = append(out, x)
	}
	sort.Ints(out)

	return out
}

// weightedSum is Σ 1/(deg(x)−1) over x ∈ s with deg(x) > 1, exactly.
func weightedSum(g *core.Graph, s vset) *big.Rat {
	sum := new(big.Rat)
	for _, x := range s.sorted() {
		if d := g.Degree(x); d > 1 {
			sum.Add(sum, big.NewRat(1, int64(d-1)))
		}
	}

	return sum
}

func degreesOf(g *core.Graph, xs []int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[i] = g.Degree(x)
	}
	sort.Ints(out)

	return out
}

func diagnoseSwitch(g *core.Graph, s TwoEdge) *SwitchDiagnostics {
	region := regionOf(s.Region())
	ext := func(x int) vset { return external(g, x, region) }
	v := [2]vset{ext(s.V1), ext(s.V2)}
	w := [2]vset{ext(s.W1), ext(s.W2)}

	d := &SwitchDiagnostics{
		Degrees:   [4]int{g.Degree(s.V1), g.Degree(s.V2), g.Degree(s.W1), g.Degree(s.W2)},
		ExtV1:     v[0].sorted(),
		ExtV2:     v[1].sorted(),
		ExtW1:     w[0].sorted(),
		ExtW2:     w[1].sorted(),
		VV:        len(v[0].and(v[1])),
		WW:        len(w[0].and(w[1])),
		ParallelV: g.HasEdge(s.V1, s.V2),
		ParallelW: g.HasEdge(s.W1, s.W2),
		Triangles: [2]int{common(g, s.V1, s.W1), common(g, s.V2, s.W2)},
	}
	for i := range v {
		for j := range w {
			cell := v[i].and(w[j])
			d.Cross[i][j] = len(cell)
			d.WeightedCross[i][j] = weightedSum(g, cell)
		}
	}

	shared := w[0].and(w[1])
	unique := [2]vset{w[0].minus(w[1]), w[1].minus(w[0])}
	d.Shared = shared.sorted()
	d.Unique1, d.Unique2 = unique[0].sorted(), unique[1].sorted()
	d.UniqueDegrees1, d.UniqueDegrees2 = degreesOf(g, d.Unique1), degreesOf(g, d.Unique2)
	for j := range unique {
		top, bottom := unique[j].and(v[0]).sorted(), unique[j].and(v[1]).sorted()
		for _, x := range top {
			for _, y := range bottom {
				if x != y && g.HasEdge(x, y) {
					d.ColumnEdges[j] = append(d.ColumnEdges[j], core.Edge{U: x, V: y}.Canonical())
				}
			}
		}
	}

	return d
}

func common(g *core.Graph, a, b int) int {
	c := 0
	for _, x := range g.Neighbors(a) {
		if g.HasEdge(b, x) {
			c++
		}
	}

	return c
}

func diagnoseSwap(g *core.Graph, s BipartiteSwap) *SwapDiagnostics {
	region := regionOf(s.Region())
	hubs := [2]vset{external(g, s.H1, region), external(g, s.H2, region)}
	leaves := [2][]int{s.L1, s.L2}

	d := &SwapDiagnostics{
		HubDegrees:  [2]int{g.Degree(s.H1), g.Degree(s.H2)},
		LeafDegrees: [2][]int{degreesOf(g, s.L1), degreesOf(g, s.L2)},
		ExtH1:       hubs[0].sorted(),
		ExtH2:       hubs[1].sorted(),
		LeafCount:   [2]int{len(s.L1), len(s.L2)},
	}
	for i, ls := range leaves {
		for _, l := range ls {
			el := external(g, l, region)
			for j := range hubs {
				d.CrossSums[i][j] += len(el.and(hubs[j]))
			}
		}
	}

	return d
}
