package dfs

import (
	"fmt"

	"github.com/leotrs/smol/core"
)

// walker encapsulates state during DFS.
type walker struct {
	graph *core.Graph
	opts  Options
	res   *Result
}

// DFS performs depth-first search on g. With WithFullTraversal it covers all
// components and start is ignored; otherwise it explores start's component.
// Returns the Result or an error if aborted by context or hook.
func DFS(g *core.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	n := g.N()
	if !o.FullTraversal && (start < 0 || start >= n) {
		return nil, fmt.Errorf("%w: %d (n=%d)", ErrStartVertexNotFound, start, n)
	}

	res := &Result{
		Order:  make([]int, 0, n),
		Depth:  make([]int, n),
		Parent: make([]int, n),
		State:  make([]int, n),
	}
	for v := 0; v < n; v++ {
		res.Depth[v], res.Parent[v] = None, None
	}
	w := &walker{graph: g, opts: o, res: res}

	if o.FullTraversal {
		for v := 0; v < n; v++ {
			if res.State[v] == White {
				if err := w.traverse(v, 0); err != nil {
					return res, err
				}
			}
		}
		return res, nil
	}

	return res, w.traverse(start, 0)
}

// traverse visits v at the given depth, recursing into unvisited neighbours.
func (w *walker) traverse(v, depth int) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	w.res.State[v] = Gray
	w.res.Depth[v] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(v); err != nil {
			w.res.Order = nil
			return fmt.Errorf("dfs: OnVisit hook for %d: %w", v, err)
		}
	}

	descend := w.opts.MaxDepth < 0 || depth < w.opts.MaxDepth
	for _, nb := range w.graph.Neighbors(v) {
		if !descend {
			break
		}
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(nb) {
			w.res.SkippedNeighbors++
			continue
		}
		if w.res.State[nb] == White {
			w.res.Parent[nb] = v
			if err := w.traverse(nb, depth+1); err != nil {
				return err
			}
		}
	}

	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(v); err != nil {
			w.res.Order = nil
			return fmt.Errorf("dfs: OnExit hook for %d: %w", v, err)
		}
	}

	w.res.State[v] = Black
	w.res.Order = append(w.res.Order, v)

	return nil
}
