package dfs

import (
	"sort"

	"github.com/leotrs/smol/core"
)

// Block is one biconnected component: a maximal subgraph with no cut vertex.
// A bridge forms a block with a single edge.
type Block struct {
	Vertices []int       // sorted
	Edges    []core.Edge // canonical, sorted
}

// lowpoint carries the Hopcroft–Tarjan state.
type lowpoint struct {
	g     *core.Graph
	disc  []int
	low   []int
	timer int
	stack []core.Edge
	cut   []bool
	out   []Block
}

// Biconnected splits g into blocks and reports its articulation points.
// Isolated vertices belong to no block. Blocks are returned sorted by their
// first edge; articulation points ascending.
//
// Complexity: O(V + E).
func Biconnected(g *core.Graph) (blocks []Block, cuts []int, err error) {
	if g == nil {
		return nil, nil, ErrGraphNil
	}

	n := g.N()
	lp := &lowpoint{
		g:    g,
		disc: make([]int, n),
		low:  make([]int, n),
		cut:  make([]bool, n),
	}
	for v := range lp.disc {
		lp.disc[v] = None
	}

	for v := 0; v < n; v++ {
		if lp.disc[v] != None {
			continue
		}
		lp.cut[v] = lp.visit(v, None) > 1
	}

	for v, c := range lp.cut {
		if c {
			cuts = append(cuts, v)
		}
	}
	sort.Slice(lp.out, func(i, j int) bool {
		a, b := lp.out[i].Edges[0], lp.out[j].Edges[0]
		if a.U != b.U {
			return a.U < b.U
		}
		return a.V < b.V
	})

	return lp.out, cuts, nil
}

// visit runs the lowpoint recursion from v and returns the number of DFS
// children (used for the root rule).
func (lp *lowpoint) visit(v, parent int) int {
	lp.disc[v] = lp.timer
	lp.low[v] = lp.timer
	lp.timer++

	children := 0
	for _, w := range lp.g.Neighbors(v) {
		switch {
		case lp.disc[w] == None:
			children++
			lp.stack = append(lp.stack, core.Edge{U: v, V: w})
			lp.visit(w, v)
			if lp.low[w] < lp.low[v] {
				lp.low[v] = lp.low[w]
			}
			if lp.low[w] >= lp.disc[v] {
				if parent != None {
					lp.cut[v] = true
				}
				lp.pop(core.Edge{U: v, V: w})
			}
		case w != parent && lp.disc[w] < lp.disc[v]:
			lp.stack = append(lp.stack, core.Edge{U: v, V: w})
			if lp.disc[w] < lp.low[v] {
				lp.low[v] = lp.disc[w]
			}
		}
	}

	return children
}

// pop unwinds the edge stack down to and including stop as one block.
func (lp *lowpoint) pop(stop core.Edge) {
	var b Block
	seen := map[int]bool{}
	for {
		top := lp.stack[len(lp.stack)-1]
		lp.stack = lp.stack[:len(lp.stack)-1]
		b.Edges = append(b.Edges, top.Canonical())
		for _, x := range []int{top.U, top.V} {
			if !seen[x] {
				seen[x] = true
				b.Vertices = append(b.Vertices, x)
			}
		}
		if top == stop {
			break
		}
	}
	sort.Ints(b.Vertices)
	sort.Slice(b.Edges, func(i, j int) bool {
		if b.Edges[i].U != b.Edges[j].U {
			return b.Edges[i].U < b.Edges[j].U
		}
		return b.Edges[i].V < b.Edges[j].V
	})
	lp.out = append(lp.out, b)
}

// Subgraph returns the block as a standalone graph with vertices relabelled
// 0..len(Vertices)-1 in Vertices order.
func (b Block) Subgraph() *core.Graph {
	index := make(map[int]int, len(b.Vertices))
	for i, v := range b.Vertices {
		index[v] = i
	}
	edges := make([]core.Edge, len(b.Edges))
	for i, e := range b.Edges {
		edges[i] = core.Edge{U: index[e.U], V: index[e.V]}
	}

	return core.MustNew(len(b.Vertices), edges)
}
