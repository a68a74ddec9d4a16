package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leotrs/smol/core"
)

func TestRelabel(t *testing.T) {
	g := core.MustNew(4, []core.Edge{{0, 1}, {1, 2}, {2, 3}})

	h, err := g.Relabel([]int{3, 2, 1, 0})
	require.NoError(t, err)
	// The reversed path has the same labelled edge set.
	assert.True(t, g.Equal(h))

	h, err = g.Relabel([]int{1, 0, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{0, 1}, {0, 2}, {2, 3}}, h.Edges())
	assert.Equal(t, g.DegreeSequence(), h.DegreeSequence())

	for _, bad := range [][]int{{0, 1, 2}, {0, 0, 1, 2}, {0, 1, 2, 4}} {
		if _, err := g.Relabel(bad); !errors.Is(err, core.ErrBadPermutation) {
			t.Errorf("Relabel(%v) error = %v; want ErrBadPermutation", bad, err)
		}
	}
}

// TestRelabel_RoundTrip applies a random permutation and its inverse.
func TestRelabel_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := core.MustNew(8, []core.Edge{{0, 4}, {0, 5}, {0, 7}, {1, 5}, {1, 6}, {2, 6}, {2, 7}, {3, 6}, {3, 7}, {4, 7}})
	for i := 0; i < 20; i++ {
		perm := rng.Perm(g.N())
		inv := make([]int, len(perm))
		for v, p := range perm {
			inv[p] = v
		}
		h, err := g.Relabel(perm)
		require.NoError(t, err)
		back, err := h.Relabel(inv)
		require.NoError(t, err)
		assert.True(t, g.Equal(back), "perm %v", perm)
	}
}

func TestSwitch(t *testing.T) {
	// 0-1, 2-3 -> 0-3, 2-1
	g := core.MustNew(4, []core.Edge{{0, 1}, {2, 3}})
	h, err := g.Switch([]core.Edge{{0, 1}, {3, 2}}, []core.Edge{{0, 3}, {1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{0, 3}, {1, 2}}, h.Edges())
	assert.Equal(t, g.Degrees(), h.Degrees())
	// receiver untouched
	assert.True(t, g.HasEdge(0, 1))

	_, err = g.Switch([]core.Edge{{0, 2}}, nil)
	assert.ErrorIs(t, err, core.ErrEdgeNotFound)

	_, err = g.Switch(nil, []core.Edge{{1, 0}})
	assert.ErrorIs(t, err, core.ErrMultiEdge)

	_, err = g.Switch(nil, []core.Edge{{1, 1}})
	assert.ErrorIs(t, err, core.ErrSelfLoop)

	_, err = g.Switch(nil, []core.Edge{{1, 4}})
	assert.ErrorIs(t, err, core.ErrVertexOutOfRange)
}

func TestComplement(t *testing.T) {
	g := core.MustNew(4, []core.Edge{{0, 1}, {1, 2}, {2, 3}})
	c := g.Complement()
	assert.Equal(t, []core.Edge{{0, 2}, {0, 3}, {1, 3}}, c.Edges())
	assert.True(t, g.Equal(c.Complement()))
}

func TestInduced(t *testing.T) {
	g := core.MustNew(5, []core.Edge{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}})
	h, err := g.Induced([]int{4, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, h.N())
	assert.Equal(t, []core.Edge{{0, 1}, {1, 2}}, h.Edges())

	_, err = g.Induced([]int{0, 0})
	assert.ErrorIs(t, err, core.ErrBadPermutation)
	_, err = g.Induced([]int{7})
	assert.ErrorIs(t, err, core.ErrVertexOutOfRange)
	_, err = g.Induced(nil)
	assert.ErrorIs(t, err, core.ErrInvalidOrder)
}
