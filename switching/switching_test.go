package switching_test

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/graph6"
	"github.com/leotrs/smol/switching"
)

const (
	nblFirst  = "I?qa`ngk_"
	nblSecond = "I?qadhik_"
	naive     = "G?bBdo"
	naiveMate = "G_B@to"
	swapFirst = "I?CAYicf?"
	swapMate  = "I?CYQac`o"
	cycle6    = "EhEG"
	triangles = "EwCW"
)

func decode(t *testing.T, code string) *core.Graph {
	t.Helper()
	g, err := graph6.Decode(code)
	require.NoError(t, err)

	return g
}

func pairOf(t *testing.T, a, b string) switching.PairGraphs {
	t.Helper()

	return switching.PairGraphs{FirstID: a, SecondID: b, First: decode(t, a), Second: decode(t, b)}
}

func TestCandidates_Path(t *testing.T) {
	got := switching.Candidates(decode(t, "Ch"))
	assert.Equal(t, []switching.TwoEdge{
		{V1: 0, V2: 3, W1: 1, W2: 2},
		{V1: 1, V2: 2, W1: 0, W2: 3},
	}, got)
	assert.Nil(t, switching.Candidates(nil))
}

func TestCandidates_AllValid(t *testing.T) {
	g := decode(t, nblFirst)
	cs := switching.Candidates(g)
	require.Len(t, cs, 224)
	for _, c := range cs {
		require.NoError(t, c.Validate(g), c.String())
	}
}

func TestBipartiteCandidates_Cycle(t *testing.T) {
	got := switching.BipartiteCandidates(decode(t, cycle6), 2)
	assert.Equal(t, []switching.BipartiteSwap{
		{H1: 0, H2: 3, L1: []int{1, 5}, L2: []int{2, 4}},
		{H1: 1, H2: 4, L1: []int{0, 2}, L2: []int{3, 5}},
		{H1: 2, H2: 5, L1: []int{1, 3}, L2: []int{0, 4}},
	}, got)
	assert.Nil(t, switching.BipartiteCandidates(decode(t, cycle6), 0))
}

func TestTwoEdge_Apply(t *testing.T) {
	g := decode(t, nblFirst)
	s := switching.TwoEdge{V1: 0, V2: 6, W1: 8, W2: 7}
	h, err := s.Apply(g)
	require.NoError(t, err)
	assert.Equal(t, nblSecond, graph6.Encode(h))
	assert.Equal(t, g.DegreeSequence(), h.DegreeSequence())
	assert.Equal(t, []int{0, 6, 7, 8}, s.Region())
	assert.Equal(t, switching.TwoEdge{V1: 8, V2: 7, W1: 0, W2: 6}, s.Transpose())
}

func TestConfiguration_Preconditions(t *testing.T) {
	g := decode(t, "Ch") // path 0-1-2-3
	cases := []struct {
		name string
		cfg  switching.Configuration
	}{
		{"repeated vertex", switching.TwoEdge{V1: 0, V2: 0, W1: 1, W2: 1}},
		{"out of range", switching.TwoEdge{V1: 0, V2: 3, W1: 1, W2: 9}},
		{"missing edge", switching.TwoEdge{V1: 0, V2: 2, W1: 3, W2: 1}},
		{"present non-edge", switching.TwoEdge{V1: 0, V2: 2, W1: 1, W2: 3}},
		{"uneven leaves", switching.BipartiteSwap{H1: 1, H2: 2, L1: []int{0}}},
		{"leaf not exclusive", switching.BipartiteSwap{H1: 1, H2: 3, L1: []int{2}, L2: []int{0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.Apply(g)
			require.ErrorIs(t, err, switching.ErrBadConfiguration)
		})
	}
	_, err := switching.TwoEdge{}.Apply(nil)
	require.ErrorIs(t, err, switching.ErrGraphNil)
}

func TestDiagnose_Switch(t *testing.T) {
	d, err := switching.Diagnose(decode(t, nblFirst), switching.TwoEdge{V1: 0, V2: 6, W1: 8, W2: 7})
	require.NoError(t, err)
	require.NotNil(t, d.Switch)
	require.Nil(t, d.Swap)

	s := d.Switch
	assert.Equal(t, [4]int{4, 4, 4, 4}, s.Degrees)
	assert.Equal(t, []int{4, 5, 9}, s.ExtV1)
	assert.Equal(t, []int{1, 3, 9}, s.ExtV2)
	assert.Equal(t, []int{1, 2, 4}, s.ExtW1)
	assert.Equal(t, []int{2, 3, 5}, s.ExtW2)
	assert.Equal(t, [2][2]int{{1, 1}, {1, 1}}, s.Cross)
	half := big.NewRat(1, 2)
	for i := range s.WeightedCross {
		for j := range s.WeightedCross[i] {
			assert.Zero(t, s.WeightedCross[i][j].Cmp(half), "cell %d,%d", i, j)
		}
	}
	assert.Equal(t, 1, s.VV)
	assert.Equal(t, 1, s.WW)
	assert.Equal(t, []int{2}, s.Shared)
	assert.Equal(t, []int{1, 4}, s.Unique1)
	assert.Equal(t, []int{3, 5}, s.Unique2)
	assert.False(t, s.ParallelV)
	assert.False(t, s.ParallelW)
	assert.Equal(t, [2]int{1, 1}, s.Triangles)
}

func TestDiagnose_Invalid(t *testing.T) {
	_, err := switching.Diagnose(decode(t, "Ch"), switching.TwoEdge{V1: 0, V2: 2, W1: 1, W2: 3})
	require.ErrorIs(t, err, switching.ErrBadConfiguration)
}

func theorem(t *testing.T, name string) switching.Theorem {
	t.Helper()
	for _, th := range switching.DefaultTheorems() {
		if th.Name == name {
			return th
		}
	}
	t.Fatalf("theorem %q not registered", name)

	return switching.Theorem{}
}

func rats(a, b, c, d int64) [2][2]*big.Rat {
	return [2][2]*big.Rat{{big.NewRat(a, 2), big.NewRat(b, 2)}, {big.NewRat(c, 2), big.NewRat(d, 2)}}
}

func TestTheorems_Predicates(t *testing.T) {
	sw := func(s switching.SwitchDiagnostics) switching.Diagnostics {
		return switching.Diagnostics{Type: switching.TwoEdgeSwitch, Switch: &s}
	}
	balanced := switching.SwitchDiagnostics{
		Degrees:       [4]int{3, 3, 4, 4},
		Cross:         [2][2]int{{1, 0}, {1, 0}},
		WeightedCross: rats(1, 1, 1, 1),
		VV:            1,
		WW:            1,
		Triangles:     [2]int{0, 0},
	}
	unequalDegrees := balanced
	unequalDegrees.Degrees = [4]int{3, 2, 4, 4}
	pattern := balanced
	pattern.Cross = [2][2]int{{2, 2}, {2, 2}}
	pattern.VV, pattern.WW = 2, 2
	weightedOnly := balanced
	weightedOnly.Cross = [2][2]int{{1, 0}, {0, 1}}
	weightedOnly.WeightedCross = rats(1, 2, 1, 2)

	cases := []struct {
		name    string
		theorem string
		diag    switching.Diagnostics
		want    bool
	}{
		{"c1c2 balanced", switching.C1C2, sw(balanced), true},
		{"c1c2 degrees differ", switching.C1C2, sw(unequalDegrees), false},
		{"c1c2 crosses differ", switching.C1C2, sw(weightedOnly), false},
		{"weighted holds without c2", switching.C1C2Weighted, sw(weightedOnly), true},
		{"c3c6 balanced", switching.SufficientC3C6, sw(balanced), true},
		{"c3c6 uneven weighted sums", switching.SufficientC3C6, sw(weightedOnly), false},
		{"c3c6 excludes 2,2,2", switching.SufficientC3C6, sw(pattern), false},
		{"mechanism-a needs parallel edges", switching.MechanismA, sw(balanced), false},
		{"swap theorem ignores switches", switching.BipartiteSwapTheorem, sw(balanced), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, theorem(t, tc.theorem).Holds(tc.diag))
		})
	}
}

func TestTheorems_BipartiteSwap(t *testing.T) {
	d := switching.SwapDiagnostics{
		HubDegrees:  [2]int{4, 4},
		LeafDegrees: [2][]int{{2, 2}, {2, 2}},
		CrossSums:   [2][2]int{{1, 0}, {1, 0}},
		LeafCount:   [2]int{2, 2},
	}
	th := theorem(t, switching.BipartiteSwapTheorem)
	assert.True(t, th.Applies(switching.BipartiteSwap{}))
	assert.False(t, th.Applies(switching.TwoEdge{}))
	assert.True(t, th.Holds(switching.Diagnostics{Swap: &d}))

	d.LeafDegrees[1] = []int{2, 3}
	assert.False(t, th.Holds(switching.Diagnostics{Swap: &d}))
}

func TestDefaultTheorems_Order(t *testing.T) {
	var names []string
	for _, th := range switching.DefaultTheorems() {
		names = append(names, th.Name)
	}
	assert.Equal(t, []string{
		switching.MechanismA, switching.SufficientC3C6, switching.C1C2Weighted,
		switching.C1C2, switching.BipartiteSwapTheorem,
	}, names)
}

func TestState_Transitions(t *testing.T) {
	assert.True(t, switching.CanTransition(switching.Proposed, switching.StructurallyValid))
	assert.True(t, switching.CanTransition(switching.Proposed, switching.StructurallyInvalid))
	assert.True(t, switching.CanTransition(switching.StructurallyValid, switching.SpectrallyRejected))
	assert.False(t, switching.CanTransition(switching.Proposed, switching.SpectrallyConfirmed))
	assert.False(t, switching.CanTransition(switching.StructurallyInvalid, switching.StructurallyValid))

	c := switching.NewCandidate(switching.TwoEdge{})
	require.NoError(t, c.Transition(switching.StructurallyValid))
	require.NoError(t, c.Transition(switching.SpectrallyConfirmed))
	assert.True(t, c.State.Terminal())
	err := c.Transition(switching.SpectrallyRejected)
	require.ErrorIs(t, err, switching.ErrInvalidTransition)
	assert.Equal(t, []switching.State{
		switching.Proposed, switching.StructurallyValid, switching.SpectrallyConfirmed,
	}, c.History)
	assert.Equal(t, "spectrally-confirmed", c.State.String())
}

func TestCertify_Traces(t *testing.T) {
	cache, err := switching.NewTraceCache(8)
	require.NoError(t, err)
	c := switching.NewCertifier(switching.WithMaxPower(6), switching.WithTraceCache(cache))

	cert, err := c.Certify(decode(t, cycle6), decode(t, triangles))
	require.NoError(t, err)
	assert.Equal(t, 3, cert.FirstMismatch)
	assert.False(t, cert.TraceEqual)
	assert.False(t, cert.SpectrumEqual)
	assert.False(t, cert.Confirmed)
	assert.False(t, cert.Divergent)
	assert.InDelta(t, 12, cert.TracesFirst[5], 1e-9)
	assert.InDelta(t, 12, cert.TracesSecond[2], 1e-9)
	assert.Equal(t, 2, cache.Len())

	cert, err = c.Certify(decode(t, nblFirst), decode(t, nblSecond))
	require.NoError(t, err)
	assert.True(t, cert.Confirmed)
	assert.True(t, cert.SpectrumEqual)
	assert.Zero(t, cert.FirstMismatch)
	assert.InDelta(t, 0, cert.TracesFirst[0], 1e-12)
	assert.InDelta(t, 0, cert.TracesFirst[1], 1e-12)
	assert.InDelta(t, 11.0/6, cert.TracesFirst[2], 1e-9)
	assert.Equal(t, 4, cache.Len())
}

func TestCertify_Errors(t *testing.T) {
	c := switching.NewCertifier()
	_, err := c.Certify(nil, decode(t, cycle6))
	require.ErrorIs(t, err, switching.ErrGraphNil)
	_, err = c.Certify(decode(t, cycle6), decode(t, "Ch"))
	require.ErrorIs(t, err, switching.ErrOrderMismatch)
	assert.InDelta(t, 1e-8, c.Tolerance(), 1e-20)
	assert.Panics(t, func() { switching.WithMaxPower(0) })
	assert.Panics(t, func() { switching.WithSpectralTolerance(0) })
}

func TestEvaluate_NaiveCounterexample(t *testing.T) {
	g := decode(t, naive)
	cfg := switching.TwoEdge{V1: 4, V2: 1, W1: 0, W2: 6}
	h, err := cfg.Apply(g)
	require.NoError(t, err)
	require.Equal(t, naiveMate, graph6.Encode(h))

	c, err := switching.NewDetector().Evaluate(context.Background(), g, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{switching.C1C2}, c.Holding)
	assert.Equal(t, switching.C1C2, c.Theorem)
	assert.Equal(t, switching.SpectrallyRejected, c.State)
	assert.Equal(t, []switching.State{
		switching.Proposed, switching.StructurallyValid, switching.SpectrallyRejected,
	}, c.History)
	require.NotNil(t, c.Certification)
	assert.Equal(t, 3, c.Certification.FirstMismatch)
	assert.InDelta(t, 1, c.Certification.TracesFirst[2], 1e-9)
	assert.InDelta(t, 3, c.Certification.TracesSecond[2], 1e-9)
}

func TestEvaluate_StructurallyInvalid(t *testing.T) {
	d := switching.NewDetector()
	g := decode(t, nblFirst)

	c, err := d.Evaluate(context.Background(), g, switching.TwoEdge{V1: 0, V2: 6, W1: 5, W2: 3})
	require.NoError(t, err)
	assert.Equal(t, switching.StructurallyInvalid, c.State)
	assert.Empty(t, c.Holding)
	assert.Nil(t, c.Certification)

	c, err = d.Evaluate(context.Background(), g, switching.TwoEdge{V1: 0, V2: 0, W1: 1, W2: 1})
	require.NoError(t, err)
	assert.Equal(t, switching.StructurallyInvalid, c.State)
}

func TestDetect_TwoEdgeMechanism(t *testing.T) {
	pair := pairOf(t, nblFirst, nblSecond)
	out, err := switching.NewDetector().Detect(context.Background(), pair)
	require.NoError(t, err)
	require.Equal(t, switching.Explained, out.Status)
	require.NotNil(t, out.Mechanism)

	m := out.Mechanism
	assert.Equal(t, switching.TwoEdge{V1: 0, V2: 6, W1: 8, W2: 7}, m.Config)
	assert.Equal(t, switching.SufficientC3C6, m.Theorem)
	assert.Equal(t, []string{switching.SufficientC3C6, switching.C1C2Weighted, switching.C1C2}, m.Holding)
	assert.False(t, m.Reversed)
	assert.Equal(t, "nbl", m.Kind.String())
	assert.True(t, m.Certification.Confirmed)
	assert.Equal(t, 73, out.Examined)
	assert.Equal(t, 3, out.Matches)
	assert.Equal(t, 2, out.Invalid)
	assert.Zero(t, out.Rejected)

	h, err := m.Config.Apply(pair.First)
	require.NoError(t, err)
	assert.Equal(t, pair.First.DegreeSequence(), h.DegreeSequence())
}

func TestDetect_BipartiteMechanism(t *testing.T) {
	out, err := switching.NewDetector().Detect(context.Background(), pairOf(t, swapFirst, swapMate))
	require.NoError(t, err)
	require.Equal(t, switching.Explained, out.Status)

	m := out.Mechanism
	assert.Equal(t, switching.BipartiteSwapType, m.Type)
	assert.Equal(t, switching.BipartiteSwap{H1: 5, H2: 9, L1: []int{6, 7}, L2: []int{3, 4}}, m.Config)
	assert.Equal(t, switching.BipartiteSwapTheorem, m.Theorem)
	assert.True(t, m.Certification.TraceEqual)
	assert.Equal(t, 200, out.Examined)
	assert.Equal(t, 3, out.Matches)
	assert.Equal(t, 2, out.Invalid)
}

func TestDetect_NoBipartiteWithSingleLeaves(t *testing.T) {
	out, err := switching.NewDetector(switching.WithMaxLeaves(1)).Detect(context.Background(), pairOf(t, swapFirst, swapMate))
	require.NoError(t, err)
	assert.Equal(t, switching.MechanismUnknown, out.Status)
	assert.Nil(t, out.Mechanism)
	assert.Equal(t, 4, out.Matches)
	assert.Equal(t, 4, out.Invalid)
}

func TestDetect_MechanismUnknown(t *testing.T) {
	cases := []struct {
		name                                 string
		first, second                        string
		examined, matches, invalid, rejected int
	}{
		{"cycle vs two triangles", cycle6, triangles, 72, 42, 42, 0},
		{"naive counterexample", naive, naiveMate, 193, 35, 28, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := switching.NewDetector().Detect(context.Background(), pairOf(t, tc.first, tc.second))
			require.NoError(t, err)
			assert.Equal(t, switching.MechanismUnknown, out.Status)
			assert.Nil(t, out.Mechanism)
			assert.Equal(t, tc.examined, out.Examined)
			assert.Equal(t, tc.matches, out.Matches)
			assert.Equal(t, tc.invalid, out.Invalid)
			assert.Equal(t, tc.rejected, out.Rejected)
			assert.Zero(t, out.TimedOut)
		})
	}
}

func TestDetect_Errors(t *testing.T) {
	d := switching.NewDetector(switching.WithIsoTimeout(time.Second))
	_, err := d.Detect(context.Background(), switching.PairGraphs{First: decode(t, cycle6)})
	require.ErrorIs(t, err, switching.ErrGraphNil)

	_, err = d.Detect(context.Background(), pairOf(t, cycle6, "Ch"))
	require.ErrorIs(t, err, switching.ErrOrderMismatch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Detect(ctx, pairOf(t, cycle6, triangles))
	require.ErrorIs(t, err, context.Canceled)
}

func TestPayload_RoundTrip(t *testing.T) {
	out, err := switching.NewDetector().Detect(context.Background(), pairOf(t, nblFirst, nblSecond))
	require.NoError(t, err)

	b, err := json.Marshal(out.Mechanism.Payload())
	require.NoError(t, err)
	p, err := switching.ParsePayload(b)
	require.NoError(t, err)
	cfg, err := p.Configuration()
	require.NoError(t, err)
	assert.Equal(t, out.Mechanism.Config, cfg)
	assert.Equal(t, switching.SufficientC3C6, p.Theorem)

	_, err = switching.ParsePayload([]byte(`{"type":"triangle-flip"}`))
	require.ErrorIs(t, err, switching.ErrUnknownType)
}

func TestReverify(t *testing.T) {
	d := switching.NewDetector()
	first, second := decode(t, nblFirst), decode(t, nblSecond)
	p := switching.Payload{
		Type:    switching.TwoEdgeSwitch,
		Theorem: switching.SufficientC3C6,
		TwoEdge: &switching.TwoEdge{V1: 0, V2: 6, W1: 8, W2: 7},
	}

	cert, err := d.Reverify(context.Background(), first, second, p)
	require.NoError(t, err)
	assert.True(t, cert.Confirmed)

	_, err = d.Reverify(context.Background(), first, first, p)
	require.ErrorIs(t, err, switching.ErrNotReproduced)

	p.Reversed = true
	_, err = d.Reverify(context.Background(), first, second, p)
	require.ErrorIs(t, err, switching.ErrNotReproduced)
}
