// SPDX-License-Identifier: MIT

package switching

import (
	"fmt"
	"sort"

	"github.com/leotrs/smol/core"
)

// MechanismType tags a family of switching configurations. The strings are
// persisted.
type MechanismType string

const (
	// TwoEdgeSwitch removes v1w1, v2w2 and adds v1w2, v2w1.
	TwoEdgeSwitch MechanismType = "2-edge-switch"
	// BipartiteSwapType moves leaf sets between two hubs.
	BipartiteSwapType MechanismType = "bipartite-swap"
)

// Configuration is one concrete switch on a concrete graph.
type Configuration interface {
	// Type names the mechanism family.
	Type() MechanismType
	// Region returns the switched vertices, sorted.
	Region() []int
	// Validate checks the precondition on g.
	Validate(g *core.Graph) error
	// Apply returns the switched graph.
	Apply(g *core.Graph) (*core.Graph, error)
	fmt.Stringer
}

// TwoEdge is the 2-edge switch (v1,v2,w1,w2): v1w1 and v2w2 are replaced by
// v1w2 and v2w1. The v's index rows and the w's columns of the
// cross-intersection matrix, so (V1,V2,W1,W2) and (W1,W2,V1,V2) are the same
// edge change under different theorem roles.
type TwoEdge struct {
	V1 int `json:"v1" yaml:"v1"`
	V2 int `json:"v2" yaml:"v2"`
	W1 int `json:"w1" yaml:"w1"`
	W2 int `json:"w2" yaml:"w2"`
}

var _ Configuration = TwoEdge{}

// Type implements Configuration.
func (s TwoEdge) Type() MechanismType { return TwoEdgeSwitch }

// Region implements Configuration.
func (s TwoEdge) Region() []int {
	r := []int{s.V1, s.V2, s.W1, s.W2}
	sort.Ints(r)

	return r
}

func (s TwoEdge) String() string {
	return fmt.Sprintf("switch(v1=%d,v2=%d,w1=%d,w2=%d)", s.V1, s.V2, s.W1, s.W2)
}

// Transpose swaps the v and w roles.
func (s TwoEdge) Transpose() TwoEdge {
	return TwoEdge{V1: s.W1, V2: s.W2, W1: s.V1, W2: s.V2}
}

// Validate implements Configuration.
func (s TwoEdge) Validate(g *core.Graph) error {
	if g == nil {
		return ErrGraphNil
	}
	seen := map[int]bool{}
	for _, v := range []int{s.V1, s.V2, s.W1, s.W2} {
		if v < 0 || v >= g.N() || seen[v] {
			return switchErrorf(opApply, ErrBadConfiguration, "%v: vertices not distinct in [0,%d)", s, g.N())
		}
		seen[v] = true
	}
	if !g.HasEdge(s.V1, s.W1) || !g.HasEdge(s.V2, s.W2) {
		return switchErrorf(opApply, ErrBadConfiguration, "%v: removed pair is not an edge", s)
	}
	if g.HasEdge(s.V1, s.W2) || g.HasEdge(s.V2, s.W1) {
		return switchErrorf(opApply, ErrBadConfiguration, "%v: added pair is already an edge", s)
	}

	return nil
}

// Apply implements Configuration.
func (s TwoEdge) Apply(g *core.Graph) (*core.Graph, error) {
	if err := s.Validate(g); err != nil {
		return nil, err
	}

	return g.Switch(
		[]core.Edge{{U: s.V1, V: s.W1}, {U: s.V2, V: s.W2}},
		[]core.Edge{{U: s.V1, V: s.W2}, {U: s.V2, V: s.W1}},
	)
}

// BipartiteSwap moves every leaf of L1 from hub H1 to hub H2 and every leaf of
// L2 from H2 to H1. Each leaf must be adjacent to its own hub only.
type BipartiteSwap struct {
	H1 int   `json:"h1" yaml:"h1"`
	H2 int   `json:"h2" yaml:"h2"`
	L1 []int `json:"l1" yaml:"l1"`
	L2 []int `json:"l2" yaml:"l2"`
}

var _ Configuration = BipartiteSwap{}

// Type implements Configuration.
func (s BipartiteSwap) Type() MechanismType { return BipartiteSwapType }

// Region implements Configuration.
func (s BipartiteSwap) Region() []int {
	r := append([]int{s.H1, s.H2}, s.L1...)
	r = append(r, s.L2...)
	sort.Ints(r)

	return r
}

func (s BipartiteSwap) String() string {
	return fmt.Sprintf("swap(h1=%d,h2=%d,L1=%v,L2=%v)", s.H1, s.H2, s.L1, s.L2)
}

// Validate implements Configuration.
func (s BipartiteSwap) Validate(g *core.Graph) error {
	if g == nil {
		return ErrGraphNil
	}
	if len(s.L1) == 0 || len(s.L1) != len(s.L2) {
		return switchErrorf(opApply, ErrBadConfiguration, "%v: leaf sets must be non-empty and equal in size", s)
	}
	seen := map[int]bool{}
	for _, v := range s.Region() {
		if v < 0 || v >= g.N() || seen[v] {
			return switchErrorf(opApply, ErrBadConfiguration, "%v: vertices not distinct in [0,%d)", s, g.N())
		}
		seen[v] = true
	}
	for _, l := range s.L1 {
		if !g.HasEdge(l, s.H1) || g.HasEdge(l, s.H2) {
			return switchErrorf(opApply, ErrBadConfiguration, "%v: leaf %d is not exclusive to h1", s, l)
		}
	}
	for _, l := range s.L2 {
		if !g.HasEdge(l, s.H2) || g.HasEdge(l, s.H1) {
			return switchErrorf(opApply, ErrBadConfiguration, "%v: leaf %d is not exclusive to h2", s, l)
		}
	}

	return nil
}

// Apply implements Configuration.
func (s BipartiteSwap) Apply(g *core.Graph) (*core.Graph, error) {
	if err := s.Validate(g); err != nil {
		return nil, err
	}
	var remove, add []core.Edge
	for _, l := range s.L1 {
		remove = append(remove, core.Edge{U: l, V: s.H1})
		add = append(add, core.Edge{U: l, V: s.H2})
	}
	for _, l := range s.L2 {
		remove = append(remove, core.Edge{U: l, V: s.H2})
		add = append(add, core.Edge{U: l, V: s.H1})
	}

	return g.Switch(remove, add)
}
