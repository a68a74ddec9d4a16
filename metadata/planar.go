// SPDX-License-Identifier: MIT

package metadata

import (
	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/dfs"
)

// IsPlanar reports whether g has a planar embedding.
//
// A graph is planar iff each of its blocks is, so the test runs per block
// from dfs.Biconnected. Blocks with fewer than 5 vertices or 9 edges are
// planar outright (K5 and K3,3 are the smallest obstructions); blocks with
// m > 3n-6 are not. The rest go through Demoucron–Malgrange–Pertuiset path
// addition.
func IsPlanar(g *core.Graph) (bool, error) {
	blocks, _, err := dfs.Biconnected(g)
	if err != nil {
		return false, err
	}
	for _, b := range blocks {
		nv, ne := len(b.Vertices), len(b.Edges)
		if nv < 5 || ne < 9 {
			continue
		}
		if ne > 3*nv-6 {
			return false, nil
		}
		if !embedBlock(b.Subgraph()) {
			return false, nil
		}
	}

	return true, nil
}

// fragment is a bridge of G relative to the embedded subgraph H: either a
// single chord between two embedded vertices, or a component of G-V(H)
// with its attachment edges.
type fragment struct {
	chord    *core.Edge
	inner    []int // component vertices (nil for a chord)
	attach   []int // embedded vertices the fragment touches
	admitted []int // indices of faces containing every attachment
}

// dmp holds the partial embedding.
type dmp struct {
	g        *core.Graph
	embedded []bool
	edgeIn   map[core.Edge]bool
	faces    [][]int // each face is a cycle of vertices in boundary order
}

// embedBlock runs DMP on a 2-connected graph and reports success.
func embedBlock(g *core.Graph) bool {
	cyc := findCycle(g)
	d := &dmp{
		g:        g,
		embedded: make([]bool, g.N()),
		edgeIn:   make(map[core.Edge]bool, g.M()),
	}
	for i, v := range cyc {
		d.embedded[v] = true
		d.edgeIn[core.Edge{U: v, V: cyc[(i+1)%len(cyc)]}.Canonical()] = true
	}
	d.faces = [][]int{cyc, append([]int(nil), cyc...)}

	for len(d.edgeIn) < g.M() {
		frags := d.fragments()
		pick := -1
		for i, f := range frags {
			if len(f.admitted) == 0 {
				return false
			}
			if len(f.admitted) == 1 {
				pick = i
				break
			}
		}
		if pick < 0 {
			pick = 0
		}
		f := frags[pick]
		d.embedPath(f.admitted[0], d.path(f))
	}

	return true
}

// findCycle returns any cycle of g as a vertex sequence, found as the tree
// path closed by the first back edge of a DFS from vertex 0.
func findCycle(g *core.Graph) []int {
	parent := make([]int, g.N())
	depth := make([]int, g.N())
	for i := range depth {
		depth[i] = -1
	}

	var cycle []int
	var walk func(v int) bool
	walk = func(v int) bool {
		for _, w := range g.Neighbors(v) {
			if depth[w] < 0 {
				parent[w], depth[w] = v, depth[v]+1
				if walk(w) {
					return true
				}
				continue
			}
			if w != parent[v] && depth[w] < depth[v] {
				for x := v; x != w; x = parent[x] {
					cycle = append(cycle, x)
				}
				cycle = append(cycle, w)
				return true
			}
		}
		return false
	}
	parent[0], depth[0] = -1, 0
	walk(0)

	return cycle
}

// fragments lists every fragment with its admissible faces.
func (d *dmp) fragments() []fragment {
	var out []fragment

	for _, e := range d.g.Edges() {
		if d.edgeIn[e] || !d.embedded[e.U] || !d.embedded[e.V] {
			continue
		}
		e := e
		out = append(out, fragment{chord: &e, attach: []int{e.U, e.V}})
	}

	seen := make([]bool, d.g.N())
	for s := 0; s < d.g.N(); s++ {
		if d.embedded[s] || seen[s] {
			continue
		}
		var f fragment
		touch := map[int]bool{}
		stack := []int{s}
		seen[s] = true
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			f.inner = append(f.inner, v)
			for _, w := range d.g.Neighbors(v) {
				switch {
				case d.embedded[w]:
					if !touch[w] {
						touch[w] = true
						f.attach = append(f.attach, w)
					}
				case !seen[w]:
					seen[w] = true
					stack = append(stack, w)
				}
			}
		}
		out = append(out, f)
	}

	for i := range out {
		for fi, face := range d.faces {
			if containsAll(face, out[i].attach) {
				out[i].admitted = append(out[i].admitted, fi)
			}
		}
	}

	return out
}

func containsAll(face, vs []int) bool {
	on := make(map[int]bool, len(face))
	for _, v := range face {
		on[v] = true
	}
	for _, v := range vs {
		if !on[v] {
			return false
		}
	}

	return true
}

// path returns a path through f joining two distinct attachments. In a
// 2-connected graph every non-chord fragment has at least two.
func (d *dmp) path(f fragment) []int {
	if f.chord != nil {
		return []int{f.chord.U, f.chord.V}
	}

	inside := make(map[int]bool, len(f.inner))
	for _, v := range f.inner {
		inside[v] = true
	}
	a := f.attach[0]

	// BFS through the component from a's neighbours until a vertex adjacent
	// to another attachment is found.
	prev := map[int]int{}
	var queue []int
	for _, w := range d.g.Neighbors(a) {
		if inside[w] {
			if _, ok := prev[w]; !ok {
				prev[w] = a
				queue = append(queue, w)
			}
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range d.g.Neighbors(v) {
			if d.embedded[w] && w != a {
				p := []int{w, v}
				for x := prev[v]; ; x = prev[x] {
					p = append(p, x)
					if x == a {
						break
					}
				}
				reverse(p)
				return p
			}
			if inside[w] {
				if _, ok := prev[w]; !ok {
					prev[w] = v
					queue = append(queue, w)
				}
			}
		}
	}

	return nil
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// embedPath draws p inside face fi, splitting it in two. p starts and ends
// on the face boundary; its interior vertices are new.
func (d *dmp) embedPath(fi int, p []int) {
	face := d.faces[fi]
	a, b := p[0], p[len(p)-1]
	i, j := indexOf(face, a), indexOf(face, b)
	inner := p[1 : len(p)-1]

	// face1: a..b along the boundary, then back through the path interior.
	var f1 []int
	for k := i; ; k = (k + 1) % len(face) {
		f1 = append(f1, face[k])
		if k == j {
			break
		}
	}
	for k := len(inner) - 1; k >= 0; k-- {
		f1 = append(f1, inner[k])
	}

	// face2: b..a along the boundary, then forward through the interior.
	var f2 []int
	for k := j; ; k = (k + 1) % len(face) {
		f2 = append(f2, face[k])
		if k == i {
			break
		}
	}
	f2 = append(f2, inner...)

	d.faces[fi] = f1
	d.faces = append(d.faces, f2)

	for _, v := range p {
		d.embedded[v] = true
	}
	for k := 0; k+1 < len(p); k++ {
		d.edgeIn[core.Edge{U: p[k], V: p[k+1]}.Canonical()] = true
	}
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}

	return -1
}
