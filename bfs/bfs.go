package bfs

import (
	"context"
	"fmt"
	"math"

	"github.com/leotrs/smol/core"
)

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  Options
	ctx   context.Context
	queue []int
	res   *Result
}

// BFS runs breadth-first search on g starting from start, applying any
// number of functional Options.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation,
// or any user-supplied hook error.
func BFS(g *core.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if start < 0 || start >= g.N() {
		return nil, fmt.Errorf("%w: %d (n=%d)", ErrStartVertexNotFound, start, g.N())
	}

	n := g.N()
	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]int, 0, n),
		res: &Result{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  filled(n, Unreached),
			Parent: filled(n, Unreached),
		},
	}

	w.enqueue(start, 0, Unreached)

	return w.res, w.loop()
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}

	return s
}

// enqueue marks v reached at depth d, records its parent and queues it.
func (w *walker) enqueue(v, d, parent int) {
	w.res.Depth[v] = d
	w.res.Parent[v] = parent
	w.opts.OnEnqueue(v, d)
	w.queue = append(w.queue, v)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		v := w.queue[0]
		w.queue = w.queue[1:]
		if err := w.visit(v); err != nil {
			return err
		}
		w.enqueueNeighbors(v)
	}

	return nil
}

// visit records the vertex in Order and calls OnVisit.
func (w *walker) visit(v int) error {
	w.res.Order = append(w.res.Order, v)
	if err := w.opts.OnVisit(v, w.res.Depth[v]); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", v, err)
	}

	return nil
}

// enqueueNeighbors applies filtering and MaxDepth and enqueues each unseen
// neighbour in sorted order.
func (w *walker) enqueueNeighbors(v int) {
	next := w.res.Depth[v] + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, nbr := range w.graph.Neighbors(v) {
		if !w.opts.FilterNeighbor(v, nbr) {
			continue
		}
		if w.res.Depth[nbr] == Unreached {
			w.enqueue(nbr, next, v)
		}
	}
}

// AllPairs returns the n×n hop-distance table, Unreached for pairs in
// different components. One BFS per source; ctx is checked between sources.
func AllPairs(ctx context.Context, g *core.Graph) ([][]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	dist := make([][]int, g.N())
	for s := range dist {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := BFS(g, s, WithContext(ctx))
		if err != nil {
			return nil, err
		}
		dist[s] = res.Depth
	}

	return dist, nil
}

// Eccentricities returns max distance per vertex from an AllPairs table.
// ok is false if any pair is unreached (the graph is disconnected).
func Eccentricities(dist [][]int) (ecc []int, ok bool) {
	ecc = make([]int, len(dist))
	for i, row := range dist {
		for _, d := range row {
			if d == Unreached {
				return nil, false
			}
			if d > ecc[i] {
				ecc[i] = d
			}
		}
	}

	return ecc, true
}

// Girth returns the length of a shortest cycle in g, or ok=false if g is
// acyclic. For every root the first non-tree edge (x,y) closes a closed walk
// of length depth(x)+depth(y)+1; the minimum over all roots is the girth.
func Girth(g *core.Graph) (girth int, ok bool) {
	if g == nil {
		return 0, false
	}
	best := math.MaxInt
	for s := 0; s < g.N(); s++ {
		res, err := BFS(g, s)
		if err != nil {
			return 0, false
		}
		for _, x := range res.Order {
			for _, y := range g.Neighbors(x) {
				if y == res.Parent[x] || res.Parent[y] == x {
					continue
				}
				if c := res.Depth[x] + res.Depth[y] + 1; c < best {
					best = c
				}
			}
		}
	}
	if best == math.MaxInt {
		return 0, false
	}

	return best, true
}
