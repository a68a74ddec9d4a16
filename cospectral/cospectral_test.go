package cospectral_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/cospectral"
	"github.com/leotrs/smol/graph6"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/spectrum"
)

func entry(t *testing.T, code string) cospectral.Entry {
	t.Helper()
	g, err := graph6.Decode(code)
	require.NoError(t, err)
	results, failures := spectrum.ComputeAll(g)
	require.Empty(t, failures)

	e := cospectral.Entry{ID: code, N: g.N(), Fingerprints: map[matrix.Kind]spectrum.Fingerprint{}}
	for k, r := range results {
		if r.Applicable {
			e.Fingerprints[k] = r.Fingerprint
		}
	}

	return e
}

func lookup(id string) (*core.Graph, error) { return graph6.Decode(id) }

func TestIndex_StarAndSquarePlusVertex(t *testing.T) {
	// K1,4 and C4 ∪ K1 share the adjacency spectrum {±2, 0, 0, 0} and the
	// normalized Laplacian spectrum {0, 1, 1, 1, 2}, but not the Kirchhoff one.
	pairs, err := cospectral.Index([]cospectral.Entry{
		entry(t, "Ds_"),
		entry(t, "Dl?"),
		entry(t, "Dxc"),
	})
	require.NoError(t, err)
	require.Equal(t, []cospectral.Pair{
		{First: "Dl?", Second: "Ds_", Kind: matrix.Adjacency},
		{First: "Dl?", Second: "Ds_", Kind: matrix.NormalizedLaplacian},
	}, pairs)
}

func TestIndex_NBLMates(t *testing.T) {
	pairs, err := cospectral.Index([]cospectral.Entry{
		entry(t, "I?qadhik_"),
		entry(t, "I?qa`ngk_"),
		entry(t, "IheA@GUAo"),
	})
	require.NoError(t, err)

	want := cospectral.NewPair("I?qa`ngk_", "I?qadhik_", matrix.NBLTransition)
	assert.Contains(t, pairs, want)
	assert.Contains(t, pairs, cospectral.NewPair("I?qa`ngk_", "I?qadhik_", matrix.Adjacency))
	for _, p := range pairs {
		assert.Less(t, p.First, p.Second)
		assert.NotEqual(t, "IheA@GUAo", p.First)
		assert.NotEqual(t, "IheA@GUAo", p.Second)
	}
}

func TestIndex_SyntheticFamilies(t *testing.T) {
	fp := func(s string) map[matrix.Kind]spectrum.Fingerprint {
		return map[matrix.Kind]spectrum.Fingerprint{matrix.Adjacency: spectrum.Fingerprint(s)}
	}
	batch := []cospectral.Entry{
		{ID: "d", N: 6, Fingerprints: fp("x")},
		{ID: "b", N: 6, Fingerprints: fp("x")},
		{ID: "a", N: 6, Fingerprints: fp("y")},
		{ID: "c", N: 6, Fingerprints: fp("x")},
		{ID: "e", N: 6, Fingerprints: fp("z")},
		{ID: "f", N: 6, Fingerprints: nil},
	}

	fams, err := cospectral.Families(batch)
	require.NoError(t, err)
	require.Len(t, fams, 1)
	assert.Equal(t, []string{"b", "c", "d"}, fams[0].Members)

	first, err := cospectral.Index(batch)
	require.NoError(t, err)
	assert.Equal(t, []cospectral.Pair{
		{First: "b", Second: "c", Kind: matrix.Adjacency},
		{First: "b", Second: "d", Kind: matrix.Adjacency},
		{First: "c", Second: "d", Kind: matrix.Adjacency},
	}, first)

	// Idempotent under re-run and input order.
	reversed := make([]cospectral.Entry, len(batch))
	for i := range batch {
		reversed[len(batch)-1-i] = batch[i]
	}
	again, err := cospectral.Index(reversed)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestIndex_FamilySizes(t *testing.T) {
	for k := 2; k <= 5; k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			batch := make([]cospectral.Entry, k)
			for i := range batch {
				batch[i] = cospectral.Entry{
					ID:           fmt.Sprintf("g%d", i),
					N:            7,
					Fingerprints: map[matrix.Kind]spectrum.Fingerprint{matrix.NBLTransition: "same"},
				}
			}
			pairs, err := cospectral.Index(batch)
			require.NoError(t, err)
			assert.Len(t, pairs, k*(k-1)/2)
		})
	}
}

func TestIndex_Errors(t *testing.T) {
	_, err := cospectral.Index([]cospectral.Entry{{ID: "a", N: 5}, {ID: "b", N: 6}})
	assert.ErrorIs(t, err, cospectral.ErrMixedOrder)

	_, err = cospectral.Index([]cospectral.Entry{{ID: "a", N: 5}, {ID: "a", N: 5}})
	assert.ErrorIs(t, err, cospectral.ErrDuplicateID)

	pairs, err := cospectral.Index(nil)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestVerify_Symmetric(t *testing.T) {
	p := cospectral.NewPair("I?qadhik_", "I?qa`ngk_", matrix.NBLTransition)
	assert.Equal(t, "I?qa`ngk_", p.First)

	ok, err := cospectral.Verify(p, lookup)
	require.NoError(t, err)
	assert.True(t, ok)

	swapped := cospectral.Pair{First: p.Second, Second: p.First, Kind: p.Kind}
	ok, err = cospectral.Verify(swapped, lookup)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cospectral.Verify(cospectral.NewPair("Ds_", "Dl?", matrix.Kirchhoff), lookup)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = cospectral.Verify(cospectral.Pair{First: "Ch", Second: "Ch", Kind: matrix.Adjacency}, lookup)
	assert.ErrorIs(t, err, cospectral.ErrSelfPair)
}
