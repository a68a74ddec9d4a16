package spectrum_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leotrs/smol/builder"
	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/graph6"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/spectrum"
)

// Graphs whose non-backtracking and transition matrices are diagonalizable,
// so their complex spectra are numerically stable under relabelling.
var diagonalizable = map[string]string{
	"house":  "Dxc",
	"wheel":  "Dl{",
	"K4":     "C~",
	"C5":     "Dhc",
	"K33":    "EFz_",
	"prism":  "E{Sw",
	"bowtie": "D{c",
	"G8":     "G?bBdo",
}

// Trees have defective transition matrices; only symmetric kinds are tested.
var trees = map[string]string{
	"P4":     "Ch",
	"P5":     "DhC",
	"star":   "Cs",
	"spider": "EqO_",
}

func decode(t *testing.T, s string) *core.Graph {
	t.Helper()
	g, err := graph6.Decode(s)
	require.NoError(t, err, "decode %q", s)

	return g
}

func randomPerm(rng *rand.Rand, n int) []int {
	return rng.Perm(n)
}

func fingerprint(t *testing.T, g *core.Graph, k matrix.Kind) spectrum.Fingerprint {
	t.Helper()
	r, err := spectrum.Compute(g, k)
	require.NoError(t, err)
	require.True(t, r.Applicable)

	return r.Fingerprint
}

func TestPermutationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	check := func(name, code string, kinds []matrix.Kind) {
		g := decode(t, code)
		for _, k := range kinds {
			want := fingerprint(t, g, k)
			for trial := 0; trial < 3; trial++ {
				h, err := g.Relabel(randomPerm(rng, g.N()))
				require.NoError(t, err)
				assert.Equal(t, want, fingerprint(t, h, k), "%s/%v trial %d", name, k, trial)
			}
		}
	}

	for name, code := range diagonalizable {
		check(name, code, matrix.Kinds())
	}
	symmetric := []matrix.Kind{
		matrix.Adjacency, matrix.Kirchhoff, matrix.Signless,
		matrix.NormalizedLaplacian, matrix.Distance,
	}
	for name, code := range trees {
		check(name, code, symmetric)
	}
}

func TestPermutationInvariance_RandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 5; n <= 10; n++ {
		for _, p := range []float64{0.3, 0.5, 0.7} {
			for rep := 0; rep < 5; rep++ {
				g, err := builder.RandomSparse(n, p, rng)
				require.NoError(t, err)
				code := graph6.Encode(g)
				for _, k := range matrix.Kinds() {
					want, err := spectrum.Compute(g, k)
					require.NoError(t, err)
					for trial := 0; trial < 3; trial++ {
						h, err := g.Relabel(randomPerm(rng, n))
						require.NoError(t, err)
						got, err := spectrum.Compute(h, k)
						require.NoError(t, err)
						assert.Equal(t, want.Applicable, got.Applicable, "%s/%v", code, k)
						assert.Equal(t, want.Fingerprint, got.Fingerprint, "%s/%v trial %d", code, k, trial)
					}
				}
			}
		}
	}
}

// I_O@eqKDw has a defective non-backtracking eigenvalue pair near
// -0.5±1.3229i that the eigensolver splits differently per vertex order.
func TestPermutationInvariance_DefectiveRoot(t *testing.T) {
	g := decode(t, "I_O@eqKDw")
	rng := rand.New(rand.NewSource(11))
	for _, k := range []matrix.Kind{matrix.NonBacktracking, matrix.NBLTransition} {
		want := fingerprint(t, g, k)
		for trial := 0; trial < 50; trial++ {
			h, err := g.Relabel(randomPerm(rng, g.N()))
			require.NoError(t, err)
			assert.Equal(t, want, fingerprint(t, h, k), "%v trial %d", k, trial)
		}
	}
}

func TestCanonical_CollapsesSplitRoot(t *testing.T) {
	// One defective root -0.5+1.3i as two labelings might report it.
	a := spectrum.Spectrum{
		Kind:    matrix.NonBacktracking,
		Complex: true,
		Values:  []complex128{complex(-0.5+3e-8, 1.3), complex(-0.5-3e-8, 1.3), 2},
	}
	b := spectrum.Spectrum{
		Kind:    matrix.NonBacktracking,
		Complex: true,
		Values:  []complex128{2, complex(-0.5, 1.3+2e-8), complex(-0.5, 1.3-2e-8)},
	}
	want := []spectrum.Value{{Re: -0.5, Im: 1.3}, {Re: -0.5, Im: 1.3}, {Re: 2, Im: 0}}
	assert.Equal(t, want, spectrum.Canonical(a, spectrum.DefaultPrecision))
	assert.Equal(t, want, spectrum.Canonical(b, spectrum.DefaultPrecision))
	assert.Equal(t, spectrum.Hash(a), spectrum.Hash(b))

	// Symmetric spectra are left as computed.
	sym := spectrum.Spectrum{Kind: matrix.Adjacency, Values: []complex128{1, 1 + 2e-5}}
	assert.Equal(t,
		[]spectrum.Value{{Re: 1}, {Re: 1.00002}},
		spectrum.Canonical(sym, spectrum.DefaultPrecision),
	)
}

func TestDeterminism(t *testing.T) {
	g := decode(t, "Dxc")
	for _, k := range matrix.Kinds() {
		a, err := spectrum.Compute(g, k)
		require.NoError(t, err)
		b, err := spectrum.Compute(g, k)
		require.NoError(t, err)
		assert.Equal(t, a.Text, b.Text, k.String())
		assert.Equal(t, a.Fingerprint, b.Fingerprint, k.String())
		assert.Len(t, string(a.Fingerprint), spectrum.DefaultHashLength)
	}
}

func TestStarVsPath(t *testing.T) {
	star := decode(t, "Cs")
	path := decode(t, "Ch")
	assert.Equal(t, []int{3, 1, 1, 1}, star.DegreeSequence())

	rs, err := spectrum.Compute(star, matrix.Adjacency)
	require.NoError(t, err)
	rp, err := spectrum.Compute(path, matrix.Adjacency)
	require.NoError(t, err)

	assert.NotEqual(t, rs.Fingerprint, rp.Fingerprint)
	assert.Equal(t, "-1.61803399,-0.61803399,0.61803399,1.61803399", rp.Text)
	assert.False(t, spectrum.Equal(rs.Spectrum, rp.Spectrum, 1e-6))
}

func TestTransitionTraceVanishes(t *testing.T) {
	codes := []string{"DxC", "Dxc", "C~", "Dhc", "EFz_", "Ch", "Cs", "G?bBdo", "I?qa`ngk_"}
	for _, code := range codes {
		rep, err := matrix.Build(decode(t, code), matrix.NBLTransition)
		require.NoError(t, err)
		tr, err := spectrum.TracePowers(rep.M, 4)
		require.NoError(t, err)
		require.Len(t, tr, 4)
		assert.InDelta(t, 0, tr[0], 1e-12, code)
		assert.InDelta(t, 0, tr[1], 1e-12, code)
	}
}

func TestTracePowers(t *testing.T) {
	// Triangle adjacency: tr(A)=0, tr(A²)=2m=6, tr(A³)=6·triangles=6.
	rep, err := matrix.Build(decode(t, "Bw"), matrix.Adjacency)
	require.NoError(t, err)
	tr, err := spectrum.TracePowers(rep.M, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 6, 6}, tr)

	tr, err = spectrum.TracePowers(rep.M, 0)
	require.NoError(t, err)
	assert.Empty(t, tr)

	_, err = spectrum.TracePowers(nil, 3)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	nonSquare, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = spectrum.TracePowers(nonSquare, 3)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestCanonical_RoundBeforeSort(t *testing.T) {
	// Raw order puts the first value ahead by re; after rounding both re
	// parts are 1 and the sort must fall back to im.
	s := spectrum.Spectrum{
		Kind:    matrix.NonBacktracking,
		Complex: true,
		Values:  []complex128{complex(1.0000000001, -0.5), complex(0.9999999999, 0.5)},
	}
	got := spectrum.Canonical(s, spectrum.DefaultPrecision)
	assert.Equal(t, []spectrum.Value{{Re: 1, Im: -0.5}, {Re: 1, Im: 0.5}}, got)

	swapped := spectrum.Spectrum{
		Kind:    matrix.NonBacktracking,
		Complex: true,
		Values:  []complex128{complex(0.9999999999, -0.5), complex(1.0000000001, 0.5)},
	}
	assert.Equal(t, spectrum.Hash(s), spectrum.Hash(swapped))
}

func TestCanonical_NegativeZero(t *testing.T) {
	s := spectrum.Spectrum{Kind: matrix.Adjacency, Values: []complex128{complex(-1e-12, 0), complex(math.Copysign(0, -1), 0)}}
	got := spectrum.Canonical(s, spectrum.DefaultPrecision)
	for _, v := range got {
		assert.False(t, math.Signbit(v.Re), "value %v keeps negative sign", v)
	}
	assert.Equal(t, "0.00000000,0.00000000", spectrum.Serialize(got, false, spectrum.DefaultPrecision))
}

func TestPrecisionBand(t *testing.T) {
	base := []complex128{-2, 0.5, 3}
	mk := func(delta float64) spectrum.Spectrum {
		vals := append([]complex128(nil), base...)
		vals[1] += complex(delta, 0)
		return spectrum.Spectrum{Kind: matrix.Adjacency, Values: vals}
	}

	ref := spectrum.Hash(mk(0))
	assert.Equal(t, ref, spectrum.Hash(mk(1e-10)), "difference below precision must collide")
	assert.NotEqual(t, ref, spectrum.Hash(mk(1e-6)), "difference above precision must separate")

	// A coarser precision merges what the default keeps apart.
	assert.Equal(t,
		spectrum.Hash(mk(0), spectrum.WithPrecision(4)),
		spectrum.Hash(mk(1e-6), spectrum.WithPrecision(4)),
	)
}

func TestHash_DomainSeparation(t *testing.T) {
	vals := []complex128{1, 2}
	a := spectrum.Hash(spectrum.Spectrum{Kind: matrix.Kirchhoff, Values: vals})
	b := spectrum.Hash(spectrum.Spectrum{Kind: matrix.Signless, Values: vals})
	assert.NotEqual(t, a, b)

	long := spectrum.Hash(spectrum.Spectrum{Kind: matrix.Kirchhoff, Values: vals}, spectrum.WithHashLength(64))
	assert.Len(t, string(long), 64)
	assert.Equal(t, string(a), string(long)[:spectrum.DefaultHashLength])
}

func TestOptionsPanic(t *testing.T) {
	assert.Panics(t, func() { spectrum.WithPrecision(-1) })
	assert.Panics(t, func() { spectrum.WithPrecision(16) })
	assert.Panics(t, func() { spectrum.WithHashLength(7) })
	assert.Panics(t, func() { spectrum.WithHashLength(65) })
	assert.NotPanics(t, func() { spectrum.WithHashLength(8) })
}

func TestEmptyAndNotApplicable(t *testing.T) {
	// Edgeless graph: 0×0 arc matrices.
	g, err := core.New(3, nil)
	require.NoError(t, err)
	r, err := spectrum.Compute(g, matrix.NonBacktracking)
	require.NoError(t, err)
	assert.True(t, r.Applicable)
	assert.Equal(t, "empty", r.Text)
	assert.Equal(t, 0, r.Spectrum.Len())

	// Two disjoint triangles: distance is typed absence, not an error.
	two := decode(t, "EwCW")
	r, err = spectrum.Compute(two, matrix.Distance)
	require.NoError(t, err)
	assert.False(t, r.Applicable)
	assert.Empty(t, r.Fingerprint)

	rep, err := matrix.Build(two, matrix.Distance)
	require.NoError(t, err)
	_, err = spectrum.Eigenvalues(rep)
	assert.True(t, errors.Is(err, spectrum.ErrNotApplicable), "got %v", err)
}

func TestComputeAll(t *testing.T) {
	results, failures := spectrum.ComputeAll(decode(t, "EwCW"))
	assert.Nil(t, failures)
	assert.Len(t, results, len(matrix.Kinds()))
	assert.False(t, results[matrix.Distance].Applicable)
	assert.True(t, results[matrix.NBLTransition].Applicable)
}

func TestSymmetricSpectraAreReal(t *testing.T) {
	r, err := spectrum.Compute(decode(t, "Dxc"), matrix.Kirchhoff)
	require.NoError(t, err)
	assert.False(t, r.Spectrum.Complex)
	for _, v := range r.Spectrum.Values {
		assert.Zero(t, imag(v))
	}
	// Kirchhoff of a connected graph has exactly one zero eigenvalue.
	assert.Equal(t, spectrum.Value{}, r.Canonical[0])
	assert.NotEqual(t, spectrum.Value{}, r.Canonical[1])
	assert.InDelta(t, 12.0, sum(r.Spectrum.Real()), 1e-9) // tr(L) = 2m
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}

	return s
}

func TestNBLCospectralSwitchPair(t *testing.T) {
	g := decode(t, "I?qa`ngk_")
	h := decode(t, "I?qadhik_")

	assert.Equal(t, fingerprint(t, g, matrix.NBLTransition), fingerprint(t, h, matrix.NBLTransition))

	rg, err := matrix.Build(g, matrix.NBLTransition)
	require.NoError(t, err)
	rh, err := matrix.Build(h, matrix.NBLTransition)
	require.NoError(t, err)
	tg, err := spectrum.TracePowers(rg.M, 10)
	require.NoError(t, err)
	th, err := spectrum.TracePowers(rh.M, 10)
	require.NoError(t, err)
	assert.InDeltaSlice(t, tg, th, 1e-9)

	// The switch is degree-preserving and this pair is also A-cospectral.
	assert.Equal(t, fingerprint(t, g, matrix.Adjacency), fingerprint(t, h, matrix.Adjacency))
	assert.False(t, g.Equal(h))
}

func TestGoldenSerialization(t *testing.T) {
	cases := []struct {
		name string
		code string
		kind matrix.Kind
	}{
		{"star", "Cs", matrix.Adjacency},
		{"star", "Cs", matrix.Kirchhoff},
		{"star", "Cs", matrix.Signless},
		{"star", "Cs", matrix.NormalizedLaplacian},
		{"star", "Cs", matrix.Distance},
		{"triangle", "Bw", matrix.NonBacktracking},
		{"triangle", "Bw", matrix.NBLTransition},
	}

	var buf bytes.Buffer
	for _, tc := range cases {
		r, err := spectrum.Compute(decode(t, tc.code), tc.kind)
		require.NoError(t, err)
		fmt.Fprintf(&buf, "%s %s %s\n", tc.name, tc.kind, r.Text)
	}

	gd := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	gd.Assert(t, "canonical_serialization", buf.Bytes())
}
