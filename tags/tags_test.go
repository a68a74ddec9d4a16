package tags_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leotrs/smol/builder"
	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/graph6"
	"github.com/leotrs/smol/tags"
)

func TestCompute_Families(t *testing.T) {
	cases := []struct {
		name string
		code string
		want []string
	}{
		{"petersen", "IheA@GUAo", []string{"cubic", "petersen", "regular", "strongly-regular", "triangle-free", "vertex-transitive"}},
		{"K4", "C~", []string{"complete", "complete-multipartite", "cubic", "regular", "vertex-transitive", "wheel"}},
		{"C5", "Dhc", []string{"cycle", "eulerian", "regular", "strongly-regular", "triangle-free", "vertex-transitive"}},
		{"star", "Cs", []string{"complete-bipartite", "forest", "star", "tree", "triangle-free"}},
		{"P4", "Ch", []string{"forest", "path", "tree", "triangle-free"}},
		{"W4", "Dl{", []string{"complete-multipartite", "wheel"}},
		{"bowtie", "D{c", []string{"eulerian", "windmill"}},
		{"prism", "E{Sw", []string{"cubic", "prism", "regular", "vertex-transitive"}},
		{"K33", "EFz_", []string{"complete-bipartite", "cubic", "regular", "strongly-regular", "triangle-free", "vertex-transitive"}},
		{"two triangles", "EwCW", []string{"regular"}},
		{"K1", "@", []string{"complete", "eulerian", "forest", "path", "regular", "tree", "triangle-free", "vertex-transitive"}},
		{"cube", "Gl`HGs", []string{"cubic", "prism", "regular", "triangle-free", "vertex-transitive"}},
		{"K2", "A_", []string{"complete", "complete-bipartite", "forest", "path", "regular", "tree", "triangle-free", "vertex-transitive"}},
		{"house", "Dxc", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := graph6.Decode(tc.code)
			require.NoError(t, err)
			got, err := tags.Compute(context.Background(), g)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompute_BuilderFamilies(t *testing.T) {
	ctx := context.Background()
	check := func(g *core.Graph, err error, want ...string) {
		t.Helper()
		require.NoError(t, err)
		got, err := tags.Compute(ctx, g)
		require.NoError(t, err)
		for _, w := range want {
			assert.Contains(t, got, w)
		}
	}

	g, err := builder.Ladder(4)
	check(g, err, tags.Ladder, tags.TriangleFree)
	g, err = builder.Fan(5)
	check(g, err, tags.Fan)
	g, err = builder.Windmill(4, 3)
	check(g, err, tags.Windmill)
	g, err = builder.Prism(5)
	check(g, err, tags.Prism, tags.VertexTransitive)
	g, err = builder.Wheel(7)
	check(g, err, tags.Wheel)
	g, err = builder.Star(6)
	check(g, err, tags.Star, tags.CompleteBipartite)
}

func TestCompute_RelabelInvariant(t *testing.T) {
	ctx := context.Background()
	g, err := builder.Ladder(5)
	require.NoError(t, err)
	want, err := tags.Compute(ctx, g)
	require.NoError(t, err)

	h, err := g.Relabel([]int{9, 3, 5, 0, 7, 1, 8, 2, 6, 4})
	require.NoError(t, err)
	got, err := tags.Compute(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCompute_Errors(t *testing.T) {
	_, err := tags.Compute(context.Background(), nil)
	assert.ErrorIs(t, err, tags.ErrGraphNil)
}
