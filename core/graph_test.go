package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leotrs/smol/core"
)

// TestNew_Validation covers every rejection path of New.
func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		edges []core.Edge
		want  error
	}{
		{"zero order", 0, nil, core.ErrInvalidOrder},
		{"negative order", -3, nil, core.ErrInvalidOrder},
		{"self loop", 3, []core.Edge{{1, 1}}, core.ErrSelfLoop},
		{"out of range", 3, []core.Edge{{0, 3}}, core.ErrVertexOutOfRange},
		{"negative vertex", 3, []core.Edge{{-1, 2}}, core.ErrVertexOutOfRange},
		{"duplicate", 3, []core.Edge{{0, 1}, {0, 1}}, core.ErrMultiEdge},
		{"reversed duplicate", 3, []core.Edge{{0, 1}, {1, 0}}, core.ErrMultiEdge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.New(tc.n, tc.edges)
			if !errors.Is(err, tc.want) {
				t.Errorf("New error = %v; want %v", err, tc.want)
			}
		})
	}
}

// TestNew_Canonical checks that edges are canonicalised and sorted.
func TestNew_Canonical(t *testing.T) {
	g, err := core.New(4, []core.Edge{{3, 2}, {1, 0}, {2, 0}})
	require.NoError(t, err)

	want := []core.Edge{{0, 1}, {0, 2}, {2, 3}}
	if got := g.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Edges = %v; want %v", got, want)
	}
	assert.Equal(t, 4, g.N())
	assert.Equal(t, 3, g.M())
	assert.Equal(t, []int{1, 2}, g.Neighbors(0))
	assert.Equal(t, []int{2, 1, 2, 1}, g.Degrees())
	assert.Equal(t, []int{2, 2, 1, 1}, g.DegreeSequence())
	assert.True(t, g.HasEdge(2, 3))
	assert.True(t, g.HasEdge(3, 2))
	assert.False(t, g.HasEdge(1, 2))
	assert.False(t, g.HasEdge(0, 0))
	assert.False(t, g.HasEdge(0, 9))
	assert.Nil(t, g.Neighbors(7))
	assert.Equal(t, "n=4 [0-1 0-2 2-3]", g.String())
}

// TestGraph_Immutable ensures returned slices are copies.
func TestGraph_Immutable(t *testing.T) {
	g := core.MustNew(3, []core.Edge{{0, 1}, {1, 2}})
	es := g.Edges()
	es[0] = core.Edge{U: 0, V: 2}
	nb := g.Neighbors(1)
	nb[0] = 2

	assert.True(t, g.HasEdge(0, 1))
	assert.Equal(t, []int{0, 2}, g.Neighbors(1))
}

// TestComponents covers connected, disconnected and isolated-vertex graphs.
func TestComponents(t *testing.T) {
	g := core.MustNew(7, []core.Edge{{0, 1}, {1, 2}, {2, 0}, {4, 5}, {5, 3}})
	want := [][]int{{0, 1, 2}, {3, 4, 5}, {6}}
	if got := g.Components(); !reflect.DeepEqual(got, want) {
		t.Errorf("Components = %v; want %v", got, want)
	}
	assert.False(t, g.IsConnected())

	single := core.MustNew(1, nil)
	assert.True(t, single.IsConnected())

	path := core.MustNew(4, []core.Edge{{0, 1}, {1, 2}, {2, 3}})
	assert.True(t, path.IsConnected())
	assert.Len(t, path.Components(), 1)
}

// TestMustNew_Panics documents the fixture helper contract.
func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { core.MustNew(2, []core.Edge{{0, 0}}) })
}
