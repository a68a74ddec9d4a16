// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/leotrs/smol/cospectral"
	"github.com/leotrs/smol/graph6"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/spectrum"
	"github.com/leotrs/smol/switching"
)

// StoredMechanism is a persisted mechanism as read back for verification.
type StoredMechanism struct {
	First   string            `json:"first" yaml:"first"`
	Second  string            `json:"second" yaml:"second"`
	Kind    matrix.Kind       `json:"kind" yaml:"kind"`
	Payload switching.Payload `json:"payload" yaml:"payload"`
}

// Catalog is the persisted view the barrier stages read and write.
type Catalog interface {
	Fingerprints(ctx context.Context, n int, kind matrix.Kind) (map[string]spectrum.Fingerprint, error)
	PutPairs(ctx context.Context, n int, pairs []cospectral.Pair) error
	Pairs(ctx context.Context, n int, kind matrix.Kind) ([]cospectral.Pair, error)
	SetPairStatus(ctx context.Context, p cospectral.Pair, status switching.Status) error
	PutMechanism(ctx context.Context, m *switching.Mechanism) error
	Mechanisms(ctx context.Context, kind matrix.Kind) ([]StoredMechanism, error)
}

// IndexBatch loads every fingerprint of order n and persists the cospectral
// pairs among them. It must run after every record of order n is stored.
// Re-running it upserts the same pairs.
func (r *Runner) IndexBatch(ctx context.Context, cat Catalog, n int) ([]cospectral.Pair, error) {
	byID := map[string]cospectral.Entry{}
	for _, k := range matrix.Kinds() {
		fps, err := cat.Fingerprints(ctx, n, k)
		if err != nil {
			return nil, fmt.Errorf("%s: n=%d: %s: %w", opIndex, n, k, err)
		}
		for id, fp := range fps {
			e, ok := byID[id]
			if !ok {
				e = cospectral.Entry{ID: id, N: n, Fingerprints: map[matrix.Kind]spectrum.Fingerprint{}}
				byID[id] = e
			}
			e.Fingerprints[k] = fp
		}
	}
	entries := make([]cospectral.Entry, 0, len(byID))
	for _, e := range byID {
		entries = append(entries, e)
	}

	pairs, err := cospectral.Index(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: n=%d: %w", opIndex, n, err)
	}
	if err := cat.PutPairs(ctx, n, pairs); err != nil {
		return nil, fmt.Errorf("%s: n=%d: %w", opIndex, n, err)
	}
	r.log.Info().Int("n", n).Int("graphs", len(entries)).Int("pairs", len(pairs)).Msg("indexed")

	return pairs, nil
}

// DetectSummary reports a DetectBatch run.
type DetectSummary struct {
	Pairs     int       `json:"pairs" yaml:"pairs"`
	Explained int       `json:"explained" yaml:"explained"`
	Unknown   int       `json:"unknown" yaml:"unknown"`
	Failed    []Failure `json:"failed" yaml:"failed"`
}

// DetectBatch runs det over every NBL pair of order n, stores each confirmed
// mechanism and marks every pair with its outcome status.
func (r *Runner) DetectBatch(ctx context.Context, cat Catalog, det *switching.Detector, n int) (DetectSummary, error) {
	pairs, err := cat.Pairs(ctx, n, matrix.NBLTransition)
	if err != nil {
		return DetectSummary{}, fmt.Errorf("%s: n=%d: %w", opDetect, n, err)
	}

	sum := DetectSummary{Pairs: len(pairs), Failed: []Failure{}}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, p := range pairs {
		p := p
		g.Go(func() error {
			out, err := detectPair(gctx, det, p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				r.log.Warn().Stringer("pair", p).Err(err).Msg("detection failed")
				sum.Failed = append(sum.Failed, Failure{ID: p.String(), Kind: StageDetect, Reason: err.Error()})
				return nil
			}
			if out.Mechanism != nil {
				if err := cat.PutMechanism(gctx, out.Mechanism); err != nil {
					return fmt.Errorf("%s: %s: %w: %w", opDetect, p, ErrSink, err)
				}
				sum.Explained++
			} else {
				sum.Unknown++
			}
			if err := cat.SetPairStatus(gctx, p, out.Status); err != nil {
				return fmt.Errorf("%s: %s: %w: %w", opDetect, p, ErrSink, err)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("%s: %w", opDetect, err)
	}
	r.log.Info().
		Int("n", n).
		Int("pairs", sum.Pairs).
		Int("explained", sum.Explained).
		Int("unknown", sum.Unknown).
		Msg("switch detection finished")

	return sum, nil
}

func detectPair(ctx context.Context, det *switching.Detector, p cospectral.Pair) (switching.Outcome, error) {
	first, err := graph6.Decode(p.First)
	if err != nil {
		return switching.Outcome{}, err
	}
	second, err := graph6.Decode(p.Second)
	if err != nil {
		return switching.Outcome{}, err
	}

	return det.Detect(ctx, switching.PairGraphs{FirstID: p.First, SecondID: p.Second, First: first, Second: second})
}

// VerifySummary reports a VerifyBatch run.
type VerifySummary struct {
	Pairs      int       `json:"pairs" yaml:"pairs"`
	Mechanisms int       `json:"mechanisms" yaml:"mechanisms"`
	Failed     []Failure `json:"failed" yaml:"failed"`
}

// OK reports whether every check passed.
func (s VerifySummary) OK() bool { return len(s.Failed) == 0 }

// VerifyBatch re-checks stored results: every pair of order n must still be
// cospectral with the two graphs fingerprinted independently, and every
// stored NBL mechanism between graphs of order n must still map one graph
// onto the other and certify.
func (r *Runner) VerifyBatch(ctx context.Context, cat Catalog, det *switching.Detector, n int) (VerifySummary, error) {
	sum := VerifySummary{Failed: []Failure{}}
	fail := func(id, reason string) {
		r.log.Warn().Str("subject", id).Str("reason", reason).Msg("verification failed")
		sum.Failed = append(sum.Failed, Failure{ID: id, Kind: StageVerify, Reason: reason})
	}

	for _, k := range matrix.Kinds() {
		pairs, err := cat.Pairs(ctx, n, k)
		if err != nil {
			return sum, fmt.Errorf("%s: n=%d: %w", opVerify, n, err)
		}
		for _, p := range pairs {
			sum.Pairs++
			ok, err := cospectral.Verify(p, graph6.Decode, r.spectrumOpts...)
			switch {
			case err != nil:
				fail(p.String(), err.Error())
			case !ok:
				fail(p.String(), "fingerprints no longer agree")
			}
		}
	}

	mechs, err := cat.Mechanisms(ctx, matrix.NBLTransition)
	if err != nil {
		return sum, fmt.Errorf("%s: %w", opVerify, err)
	}
	for _, m := range mechs {
		first, err := graph6.Decode(m.First)
		if err != nil {
			fail(m.First, err.Error())
			continue
		}
		if first.N() != n {
			continue
		}
		second, err := graph6.Decode(m.Second)
		if err != nil {
			fail(m.Second, err.Error())
			continue
		}
		sum.Mechanisms++

		id := cospectral.NewPair(m.First, m.Second, m.Kind).String()
		cert, err := det.Reverify(ctx, first, second, m.Payload)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return sum, fmt.Errorf("%s: %w", opVerify, err)
		case err != nil:
			fail(id, err.Error())
		case !cert.Confirmed:
			fail(id, fmt.Sprintf("traces differ at power %d", cert.FirstMismatch))
		}
	}

	return sum, nil
}
