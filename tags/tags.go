// SPDX-License-Identifier: MIT

package tags

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/leotrs/smol/bfs"
	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/iso"
)

// Tag names. The persisted tag list uses these exact strings.
const (
	Regular              = "regular"
	Eulerian             = "eulerian"
	Tree                 = "tree"
	Forest               = "forest"
	Complete             = "complete"
	Cycle                = "cycle"
	Path                 = "path"
	Star                 = "star"
	Wheel                = "wheel"
	CompleteBipartite    = "complete-bipartite"
	Petersen             = "petersen"
	Cubic                = "cubic"
	TriangleFree         = "triangle-free"
	CompleteMultipartite = "complete-multipartite"
	Prism                = "prism"
	Ladder               = "ladder"
	StronglyRegular      = "strongly-regular"
	Fan                  = "fan"
	Windmill             = "windmill"
	VertexTransitive     = "vertex-transitive"
)

// MaxTransitiveOrder bounds the automorphism search used for
// vertex-transitivity on graphs that no cheaper rule settles.
const MaxTransitiveOrder = 10

// ErrGraphNil is returned when Compute receives a nil graph.
var ErrGraphNil = errors.New("tags: graph is nil")

const opCompute = "tags.Compute"

// rule is one family test over the shared facts.
type rule struct {
	name string
	test func(f *facts) (bool, error)
}

// rules run in this order; vertex-transitivity comes last because it reads
// the tags produced before it.
var rules = []rule{
	{Regular, plain(func(f *facts) bool { return f.minDeg == f.maxDeg })},
	{Eulerian, plain(isEulerian)},
	{Tree, plain(isTree)},
	{Forest, plain(func(f *facts) bool { return f.m == f.n-len(f.comps) })},
	{Complete, plain(func(f *facts) bool { return f.m == f.n*(f.n-1)/2 })},
	{Cycle, plain(func(f *facts) bool { return f.minDeg == 2 && f.maxDeg == 2 && f.connected && f.n == f.m })},
	{Path, plain(func(f *facts) bool { return isTree(f) && f.maxDeg <= 2 })},
	{Star, plain(isStar)},
	{Wheel, plain(isWheel)},
	{CompleteBipartite, plain(isCompleteBipartite)},
	{Petersen, plain(isPetersen)},
	{Cubic, plain(func(f *facts) bool { return f.minDeg == 3 && f.maxDeg == 3 })},
	{TriangleFree, plain(func(f *facts) bool { return f.triangles == 0 })},
	{CompleteMultipartite, plain(isCompleteMultipartite)},
	{Prism, isPrism},
	{Ladder, isLadder},
	{StronglyRegular, plain(isStronglyRegular)},
	{Fan, plain(isFan)},
	{Windmill, plain(isWindmill)},
	{VertexTransitive, isVertexTransitive},
}

func plain(fn func(*facts) bool) func(*facts) (bool, error) {
	return func(f *facts) (bool, error) { return fn(f), nil }
}

// Compute returns the sorted family tags of g. ctx bounds the isomorphism
// searches behind prism, ladder and vertex-transitive.
func Compute(ctx context.Context, g *core.Graph) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	f := gather(ctx, g)

	out := []string{}
	for _, r := range rules {
		ok, err := r.test(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", opCompute, r.name, err)
		}
		if ok {
			out = append(out, r.name)
			f.tagged[r.name] = true
		}
	}
	sort.Strings(out)

	return out, nil
}

// facts are the invariants shared by several rules, computed once.
type facts struct {
	ctx       context.Context
	g         *core.Graph
	n, m      int
	degs      []int
	minDeg    int
	maxDeg    int
	comps     [][]int
	connected bool
	triangles int
	tagged    map[string]bool
}

func gather(ctx context.Context, g *core.Graph) *facts {
	f := &facts{
		ctx:    ctx,
		g:      g,
		n:      g.N(),
		m:      g.M(),
		degs:   g.Degrees(),
		comps:  g.Components(),
		tagged: map[string]bool{},
	}
	f.connected = len(f.comps) == 1
	f.minDeg, f.maxDeg = f.degs[0], f.degs[0]
	for _, d := range f.degs {
		f.minDeg = min(f.minDeg, d)
		f.maxDeg = max(f.maxDeg, d)
	}
	for v := 0; v < f.n; v++ {
		nb := g.Neighbors(v)
		for i := range nb {
			for j := i + 1; j < len(nb); j++ {
				if nb[i] > v && nb[j] > v && g.HasEdge(nb[i], nb[j]) {
					f.triangles++
				}
			}
		}
	}

	return f
}

func isTree(f *facts) bool { return f.connected && f.m == f.n-1 }

func isEulerian(f *facts) bool {
	if !f.connected {
		return false
	}
	for _, d := range f.degs {
		if d%2 != 0 {
			return false
		}
	}

	return true
}

// degreeProfile reports whether the degree multiset is {hi} ∪ {lo × (n-1)}.
// K4 satisfies it with hi = lo = 3.
func degreeProfile(f *facts, hi, lo int) bool {
	ds := f.g.DegreeSequence()
	if ds[0] != hi {
		return false
	}
	for _, d := range ds[1:] {
		if d != lo {
			return false
		}
	}

	return true
}

func isStar(f *facts) bool {
	return isTree(f) && f.n >= 3 && degreeProfile(f, f.n-1, 1)
}

func isWheel(f *facts) bool {
	return f.n >= 4 && f.connected && degreeProfile(f, f.n-1, 3)
}

func isCompleteBipartite(f *facts) bool {
	if !f.connected || f.n < 2 {
		return false
	}
	side, ok := bipartition(f.g)
	if !ok {
		return false
	}
	a := 0
	for _, s := range side {
		a += s
	}

	return f.m == a*(f.n-a)
}

// bipartition 2-colours g by BFS depth parity per component.
func bipartition(g *core.Graph) ([]int, bool) {
	side := make([]int, g.N())
	for i := range side {
		side[i] = -1
	}
	for s := 0; s < g.N(); s++ {
		if side[s] >= 0 {
			continue
		}
		res, err := bfs.BFS(g, s)
		if err != nil {
			return nil, false
		}
		for _, v := range res.Order {
			side[v] = res.Depth[v] % 2
		}
	}
	for _, e := range g.Edges() {
		if side[e.U] == side[e.V] {
			return nil, false
		}
	}

	return side, true
}

func isPetersen(f *facts) bool {
	if f.n != 10 || f.minDeg != 3 || f.maxDeg != 3 {
		return false
	}
	girth, ok := bfs.Girth(f.g)
	if !ok || girth != 5 {
		return false
	}
	dist, err := bfs.AllPairs(f.ctx, f.g)
	if err != nil {
		return false
	}
	ecc, ok := bfs.Eccentricities(dist)
	if !ok {
		return false
	}
	for _, e := range ecc {
		if e != 2 {
			return false
		}
	}

	return true
}

// isCompleteMultipartite: the complement is a disjoint union of at least
// three cliques. Two parts is already complete-bipartite.
func isCompleteMultipartite(f *facts) bool {
	if !f.connected || f.n < 2 {
		return false
	}
	comp := f.g.Complement()
	parts := comp.Components()
	for _, p := range parts {
		if !isClique(comp, p) {
			return false
		}
	}

	return len(parts) >= 3
}

func isClique(g *core.Graph, vs []int) bool {
	for i := range vs {
		for j := i + 1; j < len(vs); j++ {
			if !g.HasEdge(vs[i], vs[j]) {
				return false
			}
		}
	}

	return true
}

func isStronglyRegular(f *facts) bool {
	k := f.minDeg
	if k != f.maxDeg || !f.connected || f.n < 4 || k <= 0 || k >= f.n-1 {
		return false
	}
	lambda, mu := -1, -1
	for u := 0; u < f.n; u++ {
		for v := u + 1; v < f.n; v++ {
			c := common(f.g, u, v)
			target := &mu
			if f.g.HasEdge(u, v) {
				target = &lambda
			}
			switch {
			case *target < 0:
				*target = c
			case *target != c:
				return false
			}
		}
	}

	return lambda >= 0 && mu >= 0
}

func common(g *core.Graph, u, v int) int {
	c := 0
	for _, w := range g.Neighbors(u) {
		if g.HasEdge(v, w) {
			c++
		}
	}

	return c
}

// isFan looks for an apex adjacent to everything whose removal leaves P_{n-1}.
func isFan(f *facts) bool {
	k := f.n - 1
	if !f.connected || k < 2 || f.m != 2*k-1 {
		return false
	}
	for apex := 0; apex < f.n; apex++ {
		if f.degs[apex] != k {
			continue
		}
		ends := 0
		ok := true
		for v := 0; v < f.n && ok; v++ {
			if v == apex {
				continue
			}
			switch f.degs[v] - 1 {
			case 1:
				ends++
			case 2:
			default:
				ok = false
			}
		}
		// k-1 rim edges with degrees (1,1,2,…,2) is a path only if connected.
		if ok && ends == 2 && rimConnected(f.g, apex) {
			return true
		}
	}

	return false
}

func rimConnected(g *core.Graph, apex int) bool {
	rest := make([]int, 0, g.N()-1)
	for v := 0; v < g.N(); v++ {
		if v != apex {
			rest = append(rest, v)
		}
	}
	h, err := g.Induced(rest)

	return err == nil && h.IsConnected()
}

// isWindmill: a unique vertex of maximum degree whose removal leaves at
// least two equal cliques of order ≥ 2, each fully joined to it.
func isWindmill(f *facts) bool {
	if !f.connected || f.n < 4 {
		return false
	}
	centre := -1
	for v, d := range f.degs {
		if d != f.maxDeg {
			continue
		}
		if centre >= 0 {
			return false
		}
		centre = v
	}
	if f.degs[centre] != f.n-1 {
		return false
	}
	rest := make([]int, 0, f.n-1)
	for v := 0; v < f.n; v++ {
		if v != centre {
			rest = append(rest, v)
		}
	}
	h, err := f.g.Induced(rest)
	if err != nil {
		return false
	}
	blades := h.Components()
	if len(blades) < 2 {
		return false
	}
	size := len(blades[0])
	for _, b := range blades {
		if len(b) < 2 || len(b) != size || !isClique(h, b) {
			return false
		}
	}

	return true
}

func isVertexTransitive(f *facts) (bool, error) {
	if f.tagged[Complete] || f.tagged[Cycle] || f.tagged[Petersen] {
		return true, nil
	}
	if !f.connected || f.minDeg != f.maxDeg || f.n < 2 || f.n > MaxTransitiveOrder {
		return false, nil
	}
	for to := 1; to < f.n; to++ {
		m, err := iso.Automorphism(f.ctx, f.g, 0, to)
		if err != nil {
			return false, err
		}
		if m == nil {
			return false, nil
		}
	}

	return true, nil
}
