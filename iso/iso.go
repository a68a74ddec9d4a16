// SPDX-License-Identifier: MIT

// Package iso decides graph isomorphism exactly.
//
// Pipeline:
//
//	1. Invariant filters: order, size, degree sequence.
//	2. Colour refinement run jointly on both graphs, seeded with
//	   (degree, triangles through v, sorted neighbour degrees). Colours are
//	   interned in one table so classes are comparable across the graphs;
//	   differing class sizes prove non-isomorphism.
//	3. Backtracking over vertices of g, smallest colour class first, trying
//	   only same-colour targets in h and checking adjacency against every
//	   vertex already mapped.
//
// A true answer always carries a verified mapping. The search checks its
// context every few hundred steps and returns ErrTimeout (wrapping the
// context error) when the deadline passes: a timeout is never reported as
// "not isomorphic".
package iso

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/leotrs/smol/core"
)

var (
	// ErrGraphNil is returned when either graph is nil.
	ErrGraphNil = errors.New("iso: graph is nil")

	// ErrTimeout is returned when the context expires before a verdict.
	ErrTimeout = errors.New("iso: search timed out")

	// ErrVertexOutOfRange is returned by Automorphism for bad pins.
	ErrVertexOutOfRange = errors.New("iso: vertex out of range")
)

// checkEvery is the number of backtracking steps between context checks.
const checkEvery = 256

// Isomorphic reports whether g and h are isomorphic.
func Isomorphic(ctx context.Context, g, h *core.Graph) (bool, error) {
	m, err := Find(ctx, g, h)
	if err != nil {
		return false, err
	}

	return m != nil, nil
}

// Find returns a mapping m with g.Relabel(m) equal to h, or nil when none
// exists.
func Find(ctx context.Context, g, h *core.Graph) ([]int, error) {
	if g == nil || h == nil {
		return nil, ErrGraphNil
	}

	return search(ctx, g, h, -1, -1)
}

// Automorphism returns an automorphism of g sending from to to, or nil if
// the two vertices lie in different orbits.
func Automorphism(ctx context.Context, g *core.Graph, from, to int) ([]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if from < 0 || from >= g.N() || to < 0 || to >= g.N() {
		return nil, fmt.Errorf("%w: %d -> %d (n=%d)", ErrVertexOutOfRange, from, to, g.N())
	}

	return search(ctx, g, g, from, to)
}

func search(ctx context.Context, g, h *core.Graph, pinG, pinH int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	if g.N() != h.N() || g.M() != h.M() || !equalInts(g.DegreeSequence(), h.DegreeSequence()) {
		return nil, nil
	}

	cg, ch, ok := refine(g, h, pinG, pinH)
	if !ok {
		return nil, nil
	}

	s := &state{
		ctx:   ctx,
		g:     g,
		h:     h,
		cg:    cg,
		ch:    ch,
		order: searchOrder(g, cg),
		fwd:   make([]int, g.N()),
		used:  make([]bool, h.N()),
	}
	for i := range s.fwd {
		s.fwd[i] = -1
	}

	found, err := s.extend(0)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	m := append([]int(nil), s.fwd...)
	if img, err := g.Relabel(m); err != nil || !img.Equal(h) {
		return nil, fmt.Errorf("iso: internal error: mapping %v does not verify", m)
	}

	return m, nil
}

// refine runs joint colour refinement and returns the stable colourings.
// ok is false when the colour class sizes differ between g and h.
func refine(g, h *core.Graph, pinG, pinH int) (cg, ch []int, ok bool) {
	table := map[string]int{}
	intern := func(key string) int {
		if c, seen := table[key]; seen {
			return c
		}
		c := len(table)
		table[key] = c
		return c
	}

	seed := func(x *core.Graph, pin int) []int {
		out := make([]int, x.N())
		for v := range out {
			nd := make([]int, 0, x.Degree(v))
			for _, w := range x.Neighbors(v) {
				nd = append(nd, x.Degree(w))
			}
			sort.Ints(nd)
			key := fmt.Sprintf("%d|%d|%v|%t", x.Degree(v), trianglesAt(x, v), nd, v == pin)
			out[v] = intern(key)
		}
		return out
	}
	cg, ch = seed(g, pinG), seed(h, pinH)

	for round := 0; round < g.N(); round++ {
		if !sameHistogram(cg, ch) {
			return nil, nil, false
		}
		table = map[string]int{}
		ng, nh := step(g, cg, intern), step(h, ch, intern)
		if classes(ng) == classes(cg) && classes(nh) == classes(ch) {
			cg, ch = ng, nh
			break
		}
		cg, ch = ng, nh
	}

	return cg, ch, sameHistogram(cg, ch)
}

// step recolours each vertex by its colour and the multiset of its
// neighbours' colours.
func step(x *core.Graph, col []int, intern func(string) int) []int {
	out := make([]int, len(col))
	for v := range col {
		nc := make([]int, 0, x.Degree(v))
		for _, w := range x.Neighbors(v) {
			nc = append(nc, col[w])
		}
		sort.Ints(nc)
		var b strings.Builder
		b.WriteString(strconv.Itoa(col[v]))
		for _, c := range nc {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(c))
		}
		out[v] = intern(b.String())
	}

	return out
}

func trianglesAt(x *core.Graph, v int) int {
	nb := x.Neighbors(v)
	t := 0
	for i := range nb {
		for j := i + 1; j < len(nb); j++ {
			if x.HasEdge(nb[i], nb[j]) {
				t++
			}
		}
	}

	return t
}

func classes(col []int) int {
	seen := map[int]struct{}{}
	for _, c := range col {
		seen[c] = struct{}{}
	}

	return len(seen)
}

func sameHistogram(a, b []int) bool {
	count := map[int]int{}
	for _, c := range a {
		count[c]++
	}
	for _, c := range b {
		count[c]--
	}
	for _, k := range count {
		if k != 0 {
			return false
		}
	}

	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// searchOrder lists g's vertices smallest colour class first, then by
// index, so forced choices are made early.
func searchOrder(g *core.Graph, col []int) []int {
	size := map[int]int{}
	for _, c := range col {
		size[c]++
	}
	order := make([]int, g.N())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return size[col[order[i]]] < size[col[order[j]]]
	})

	return order
}

type state struct {
	ctx    context.Context
	g, h   *core.Graph
	cg, ch []int
	order  []int
	fwd    []int
	used   []bool
	steps  int
}

func (s *state) extend(depth int) (bool, error) {
	if depth == len(s.order) {
		return true, nil
	}
	s.steps++
	if s.steps%checkEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			return false, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
	}

	v := s.order[depth]
	for w := 0; w < s.h.N(); w++ {
		if s.used[w] || s.ch[w] != s.cg[v] || !s.consistent(v, w) {
			continue
		}
		s.fwd[v], s.used[w] = w, true
		ok, err := s.extend(depth + 1)
		if err != nil || ok {
			return ok, err
		}
		s.fwd[v], s.used[w] = -1, false
	}

	return false, nil
}

// consistent checks that mapping v→w preserves adjacency with every vertex
// mapped so far.
func (s *state) consistent(v, w int) bool {
	for u, x := range s.fwd {
		if x < 0 {
			continue
		}
		if s.g.HasEdge(u, v) != s.h.HasEdge(x, w) {
			return false
		}
	}

	return true
}
