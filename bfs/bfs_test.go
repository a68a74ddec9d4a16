package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leotrs/smol/bfs"
	"github.com/leotrs/smol/core"
)

func cycle(n int) *core.Graph {
	edges := make([]core.Edge, n)
	for i := 0; i < n; i++ {
		edges[i] = core.Edge{U: i, V: (i + 1) % n}
	}

	return core.MustNew(n, edges)
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	if _, err := bfs.BFS(nil, 0); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	g := core.MustNew(2, []core.Edge{{U: 0, V: 1}})
	if _, err := bfs.BFS(g, 5); !errors.Is(err, bfs.ErrStartVertexNotFound) {
		t.Errorf("missing start: want ErrStartVertexNotFound, got %v", err)
	}
	if _, err := bfs.BFS(g, 0, bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
}

// TestBFS_CycleDepths covers a simple cycle and checks depths and layering.
func TestBFS_CycleDepths(t *testing.T) {
	res, err := bfs.BFS(cycle(6), 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 5, 2, 4, 3}, res.Order)
	assert.Equal(t, []int{0, 1, 2, 3, 2, 1}, res.Depth)

	path, err := res.PathTo(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, path)
}

func TestBFS_Unreached(t *testing.T) {
	g := core.MustNew(4, []core.Edge{{U: 0, V: 1}, {U: 2, V: 3}})
	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	assert.False(t, res.Reached(2))
	assert.Equal(t, bfs.Unreached, res.Depth[3])
	_, err = res.PathTo(3)
	assert.Error(t, err)
}

func TestBFS_OptionsAndHooks(t *testing.T) {
	g := cycle(8)

	var enq []int
	res, err := bfs.BFS(g, 0,
		bfs.WithMaxDepth(2),
		bfs.WithOnEnqueue(func(v, _ int) { enq = append(enq, v) }),
	)
	require.NoError(t, err)
	assert.Len(t, res.Order, 5)
	assert.Equal(t, res.Order, enq)

	// Filtering out the 0-7 edge turns the cycle into a path.
	res, err = bfs.BFS(g, 0, bfs.WithFilterNeighbor(func(c, n int) bool {
		return !(c == 0 && n == 7) && !(c == 7 && n == 0)
	}))
	require.NoError(t, err)
	assert.Equal(t, 7, res.Depth[7])

	stop := errors.New("stop")
	_, err = bfs.BFS(g, 0, bfs.WithOnVisit(func(v, _ int) error {
		if v == 2 {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
}

func TestBFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bfs.BFS(cycle(4), 0, bfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = bfs.AllPairs(ctx, cycle(4))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAllPairsAndEccentricities(t *testing.T) {
	// Path 0-1-2-3.
	p4 := core.MustNew(4, []core.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}})
	dist, err := bfs.AllPairs(context.Background(), p4)
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{0, 1, 2, 3},
		{1, 0, 1, 2},
		{2, 1, 0, 1},
		{3, 2, 1, 0},
	}, dist)

	ecc, ok := bfs.Eccentricities(dist)
	require.True(t, ok)
	assert.Equal(t, []int{3, 2, 2, 3}, ecc)

	split := core.MustNew(3, []core.Edge{{U: 0, V: 1}})
	dist, err = bfs.AllPairs(context.Background(), split)
	require.NoError(t, err)
	_, ok = bfs.Eccentricities(dist)
	assert.False(t, ok)
}

func TestGirth(t *testing.T) {
	for n := 3; n <= 7; n++ {
		g, ok := bfs.Girth(cycle(n))
		assert.True(t, ok)
		assert.Equal(t, n, g, "C%d", n)
	}

	// House: square with a roof triangle.
	house := core.MustNew(5, []core.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 0}, {U: 2, V: 4}, {U: 3, V: 4}})
	g, ok := bfs.Girth(house)
	assert.True(t, ok)
	assert.Equal(t, 3, g)

	tree := core.MustNew(4, []core.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 0, V: 3}})
	_, ok = bfs.Girth(tree)
	assert.False(t, ok)
}
