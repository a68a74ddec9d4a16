// Package dfs defines types and options for depth-first search traversal,
// including cancellation, pre-/post-order hooks, depth limiting, neighbor
// filtering and full-graph (forest) traversal.
package dfs

import (
	"context"
	"errors"
)

// Vertex visitation states.
const (
	White = iota // not visited yet
	Gray         // on the recursion stack
	Black        // fully explored
)

// None marks the absence of a parent (tree roots, unvisited vertices).
const None = -1

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the start vertex is out of range.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")
)

// Option configures optional behavior of DFS traversal.
type Option func(*Options)

// Options holds configurable parameters for DFS traversal.
type Options struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked on discovery (pre-order).
	// Returning an error aborts traversal with that error.
	OnVisit func(v int) error

	// OnExit, if non-nil, is invoked after all descendants are explored
	// (post-order). Returning an error aborts traversal.
	OnExit func(v int) error

	// MaxDepth, if non-negative, limits recursion to the given depth.
	// A depth of 0 visits only the start vertex. Default is -1 (no limit).
	MaxDepth int

	// FilterNeighbor, if non-nil, is called for each neighbor before recursing.
	FilterNeighbor func(v int) bool

	// FullTraversal restarts from every unvisited vertex (forest traversal).
	FullTraversal bool
}

// DefaultOptions returns background context, no hooks, no depth limit,
// no filtering and single-source traversal.
func DefaultOptions() Options {
	return Options{Ctx: context.Background(), MaxDepth: -1}
}

// WithContext sets the Context for DFS traversal. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as a pre-order hook.
func WithOnVisit(fn func(v int) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit installs fn as a post-order hook.
func WithOnExit(fn func(v int) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithMaxDepth limits traversal depth to limit.
func WithMaxDepth(limit int) Option {
	return func(o *Options) { o.MaxDepth = limit }
}

// WithFilterNeighbor skips neighbors for which fn returns false.
func WithFilterNeighbor(fn func(v int) bool) Option {
	return func(o *Options) { o.FilterNeighbor = fn }
}

// WithFullTraversal covers every component, rooting a new tree at each
// unvisited vertex in increasing order.
func WithFullTraversal() Option {
	return func(o *Options) { o.FullTraversal = true }
}

// Result captures the outcome of a depth-first traversal. Slices are
// indexed by vertex.
type Result struct {
	// Order records vertices in the sequence they finished (post-order).
	Order []int

	// Depth is the tree depth of each visited vertex, None if unvisited.
	Depth []int

	// Parent is the tree parent, None for roots and unvisited vertices.
	Parent []int

	// State is White, Gray or Black per vertex at the end of traversal.
	State []int

	// SkippedNeighbors counts neighbors rejected by FilterNeighbor.
	SkippedNeighbors int
}

// Visited reports whether v was reached.
func (r *Result) Visited(v int) bool {
	return v >= 0 && v < len(r.State) && r.State[v] != White
}
