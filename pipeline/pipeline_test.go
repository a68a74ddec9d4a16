package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leotrs/smol/cospectral"
	"github.com/leotrs/smol/graph6"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/pipeline"
	"github.com/leotrs/smol/spectrum"
	"github.com/leotrs/smol/switching"
	"github.com/leotrs/smol/tags"
)

var errDiskFull = errors.New("disk full")

// memory is an in-process Sink and Catalog.
type memory struct {
	mu      sync.Mutex
	records map[string]pipeline.Record
	pairs   map[cospectral.Pair]int
	status  map[cospectral.Pair]switching.Status
	mechs   []pipeline.StoredMechanism
	failPut bool
}

func newMemory() *memory {
	return &memory{
		records: map[string]pipeline.Record{},
		pairs:   map[cospectral.Pair]int{},
		status:  map[cospectral.Pair]switching.Status{},
	}
}

func (m *memory) Has(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]

	return ok && rec.Complete(), nil
}

func (m *memory) PutRecord(_ context.Context, rec pipeline.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errDiskFull
	}
	m.records[rec.ID] = rec

	return nil
}

func (m *memory) Fingerprints(_ context.Context, n int, kind matrix.Kind) (map[string]spectrum.Fingerprint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]spectrum.Fingerprint{}
	for id, r := range m.records {
		if s, ok := r.Spectra[kind]; ok && r.N == n && s.Applicable {
			out[id] = s.Fingerprint
		}
	}

	return out, nil
}

func (m *memory) PutPairs(_ context.Context, n int, pairs []cospectral.Pair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range pairs {
		m.pairs[p] = n
	}

	return nil
}

func (m *memory) Pairs(_ context.Context, n int, kind matrix.Kind) ([]cospectral.Pair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []cospectral.Pair
	for p, pn := range m.pairs {
		if pn == n && p.Kind == kind {
			out = append(out, p)
		}
	}
	cospectral.SortPairs(out)

	return out, nil
}

func (m *memory) SetPairStatus(_ context.Context, p cospectral.Pair, s switching.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status[p] = s

	return nil
}

func (m *memory) PutMechanism(_ context.Context, mech *switching.Mechanism) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mechs = append(m.mechs, pipeline.StoredMechanism{
		First: mech.First, Second: mech.Second, Kind: mech.Kind, Payload: mech.Payload(),
	})

	return nil
}

func (m *memory) Mechanisms(_ context.Context, kind matrix.Kind) ([]pipeline.StoredMechanism, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []pipeline.StoredMechanism
	for _, s := range m.mechs {
		if s.Kind == kind {
			out = append(out, s)
		}
	}

	return out, nil
}

func scanner(lines ...string) *graph6.Scanner {
	return graph6.NewScanner(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestBuildRecord_Star(t *testing.T) {
	g, err := graph6.Decode("Ds_")
	require.NoError(t, err)

	rec, failures, err := pipeline.BuildRecord(context.Background(), "Ds_", g)
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Equal(t, 5, rec.N)
	assert.Equal(t, 4, rec.M)
	assert.Len(t, rec.Spectra, len(matrix.Kinds()))

	adj := rec.Spectra[matrix.Adjacency]
	require.True(t, adj.Applicable)
	assert.InDeltaSlice(t, []float64{-2, 0, 0, 0, 2}, adj.Re, 1e-9)
	assert.Nil(t, adj.Im)
	assert.Len(t, adj.Fingerprint, spectrum.DefaultHashLength)

	nbl := rec.Spectra[matrix.NBLTransition]
	assert.Len(t, nbl.Re, 8)
	assert.Len(t, nbl.Im, 8)
	assert.True(t, rec.Spectra[matrix.Distance].Applicable)
	assert.Contains(t, rec.Tags, tags.Star)
	assert.Contains(t, rec.Tags, tags.Tree)
	assert.True(t, rec.Metadata.Connected)
}

func TestBuildRecord_DisconnectedHasNoDistance(t *testing.T) {
	g, err := graph6.Decode("Dl?")
	require.NoError(t, err)

	rec, _, err := pipeline.BuildRecord(context.Background(), "Dl?", g)
	require.NoError(t, err)
	dist, ok := rec.Spectra[matrix.Distance]
	require.True(t, ok)
	assert.False(t, dist.Applicable)
	assert.Empty(t, dist.Re)
	assert.NotContains(t, rec.Entry().Fingerprints, matrix.Distance)
	assert.Contains(t, rec.Entry().Fingerprints, matrix.Adjacency)
}

func TestBuildRecord_Nil(t *testing.T) {
	_, _, err := pipeline.BuildRecord(context.Background(), "x", nil)
	require.ErrorIs(t, err, pipeline.ErrGraphNil)
}

func TestRun_ResumesFromSink(t *testing.T) {
	mem := newMemory()
	r := pipeline.NewRunner(pipeline.WithWorkers(2))

	sum, err := r.Run(context.Background(), scanner("Ds_", "Dl?", "Dxc"), mem)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Processed)
	assert.Zero(t, sum.Skipped)
	assert.Empty(t, sum.Failed)
	_, err = uuid.Parse(sum.RunID)
	require.NoError(t, err)
	assert.False(t, sum.FinishedAt.Before(sum.StartedAt))

	again, err := r.Run(context.Background(), scanner("Ds_", "Dl?", "Dxc", "Ch"), mem)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Processed)
	assert.Equal(t, 3, again.Skipped)
	assert.NotEqual(t, sum.RunID, again.RunID)
	assert.Len(t, mem.records, 4)
}

func TestRun_MalformedLineIsAFailure(t *testing.T) {
	mem := newMemory()
	sum, err := pipeline.NewRunner(pipeline.WithWorkers(1)).
		Run(context.Background(), scanner("Ds_", "!!", "Dl?", "Dhc"), mem)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Processed)
	require.Len(t, sum.Failed, 1)
	assert.Equal(t, "!!", sum.Failed[0].ID)
	assert.Equal(t, pipeline.StageDecode, sum.Failed[0].Kind)
	assert.Contains(t, sum.Failed[0].Reason, "line 2")
	assert.Contains(t, mem.records, "Dl?")
	assert.Contains(t, mem.records, "Dhc")

	again, err := pipeline.NewRunner().Run(context.Background(), scanner("Ds_", "!!", "Dl?", "Dhc"), mem)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Skipped)
	assert.Len(t, again.Failed, 1)
}

func TestRecord_Complete(t *testing.T) {
	g, err := graph6.Decode("Dl?")
	require.NoError(t, err)
	rec, _, err := pipeline.BuildRecord(context.Background(), "Dl?", g)
	require.NoError(t, err)
	assert.True(t, rec.Complete(), "not-applicable distance still counts")

	adj := rec.Spectra[matrix.Adjacency]
	adj.Fingerprint = ""
	rec.Spectra[matrix.Adjacency] = adj
	assert.False(t, rec.Complete())

	delete(rec.Spectra, matrix.Adjacency)
	assert.False(t, rec.Complete())
}

func TestRun_RebuildsIncompleteRecord(t *testing.T) {
	mem := newMemory()
	for _, code := range []string{"Dxc", "Ds_"} {
		g, err := graph6.Decode(code)
		require.NoError(t, err)
		rec, _, err := pipeline.BuildRecord(context.Background(), code, g)
		require.NoError(t, err)
		mem.records[code] = rec
	}
	// As stored by a run whose Kirchhoff eigensolve failed for Dxc.
	delete(mem.records["Dxc"].Spectra, matrix.Kirchhoff)

	sum, err := pipeline.NewRunner().Run(context.Background(), scanner("Dxc", "Ds_"), mem)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 1, sum.Skipped)
	assert.True(t, mem.records["Dxc"].Complete())
	assert.Contains(t, mem.records["Dxc"].Spectra, matrix.Kirchhoff)
}

// cancelOnPut cancels the run from inside a write and, like a database
// driver, refuses writes whose context is already done.
type cancelOnPut struct {
	*memory
	cancel context.CancelFunc
}

func (c cancelOnPut) PutRecord(ctx context.Context, rec pipeline.Record) error {
	c.cancel()
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.memory.PutRecord(ctx, rec)
}

func TestRun_CancelKeepsFinishedRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mem := newMemory()

	sum, err := pipeline.NewRunner(pipeline.WithWorkers(1)).
		Run(ctx, scanner("Ds_"), cancelOnPut{memory: mem, cancel: cancel})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sum.Processed)
	assert.Contains(t, mem.records, "Ds_")
}

func TestRun_Errors(t *testing.T) {
	t.Run("sink failure", func(t *testing.T) {
		mem := newMemory()
		mem.failPut = true
		_, err := pipeline.NewRunner().Run(context.Background(), scanner("Ds_"), mem)
		require.ErrorIs(t, err, pipeline.ErrSink)
		require.ErrorIs(t, err, errDiskFull)
	})
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sum, err := pipeline.NewRunner().Run(ctx, scanner("Ds_", "Dl?"), newMemory())
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, sum.Processed)
	})
	assert.Panics(t, func() { pipeline.WithWorkers(0) })
}

func TestIndexBatch(t *testing.T) {
	mem := newMemory()
	r := pipeline.NewRunner()
	_, err := r.Run(context.Background(), scanner("Ds_", "Dl?", "Dxc", "Ch"), mem)
	require.NoError(t, err)

	pairs, err := r.IndexBatch(context.Background(), mem, 5)
	require.NoError(t, err)
	assert.Equal(t, []cospectral.Pair{
		{First: "Dl?", Second: "Ds_", Kind: matrix.Adjacency},
		{First: "Dl?", Second: "Ds_", Kind: matrix.NormalizedLaplacian},
	}, pairs)

	again, err := r.IndexBatch(context.Background(), mem, 5)
	require.NoError(t, err)
	assert.Equal(t, pairs, again)
	assert.Len(t, mem.pairs, 2)

	none, err := r.IndexBatch(context.Background(), mem, 4)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDetectAndVerifyBatch(t *testing.T) {
	const first, second = "I?qa`ngk_", "I?qadhik_"
	mem := newMemory()
	r := pipeline.NewRunner()
	det := switching.NewDetector()
	ctx := context.Background()

	_, err := r.Run(ctx, scanner(first, second), mem)
	require.NoError(t, err)
	_, err = r.IndexBatch(ctx, mem, 10)
	require.NoError(t, err)

	sum, err := r.DetectBatch(ctx, mem, det, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Pairs)
	assert.Equal(t, 1, sum.Explained)
	assert.Zero(t, sum.Unknown)
	require.Len(t, mem.mechs, 1)
	assert.Equal(t, switching.SufficientC3C6, mem.mechs[0].Payload.Theorem)
	assert.Equal(t, switching.Explained, mem.status[cospectral.NewPair(first, second, matrix.NBLTransition)])

	v, err := r.VerifyBatch(ctx, mem, det, 10)
	require.NoError(t, err)
	assert.True(t, v.OK(), "%v", v.Failed)
	assert.Equal(t, 1, v.Mechanisms)
	assert.GreaterOrEqual(t, v.Pairs, 1)

	mem.mechs[0].Payload.TwoEdge = &switching.TwoEdge{V1: 0, V2: 0, W1: 8, W2: 8}
	v, err = r.VerifyBatch(ctx, mem, det, 10)
	require.NoError(t, err)
	assert.False(t, v.OK())
	require.Len(t, v.Failed, 1)
	assert.Equal(t, pipeline.StageVerify, v.Failed[0].Kind)
}
