// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/cospectral"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/metadata"
	"github.com/leotrs/smol/spectrum"
	"github.com/leotrs/smol/tags"
)

// SpectrumRecord is the stored form of one kind's spectrum: canonical values
// (rounded, sorted) split into real and imaginary parts. Im is empty for
// symmetric kinds.
type SpectrumRecord struct {
	Applicable  bool                 `json:"applicable"`
	Re          []float64            `json:"re,omitempty"`
	Im          []float64            `json:"im,omitempty"`
	Fingerprint spectrum.Fingerprint `json:"fingerprint,omitempty"`
}

// Record is everything persisted for one graph.
type Record struct {
	ID       string                         `json:"id"`
	N        int                            `json:"n"`
	M        int                            `json:"m"`
	Spectra  map[matrix.Kind]SpectrumRecord `json:"spectra"`
	Metadata metadata.Metadata              `json:"metadata"`
	Tags     []string                       `json:"tags"`
}

// Complete reports whether every kind is accounted for: present and either
// fingerprinted or marked not applicable. A record left incomplete by a
// per-kind failure is rebuilt on the next run.
func (r Record) Complete() bool {
	for _, k := range matrix.Kinds() {
		s, ok := r.Spectra[k]
		if !ok || (s.Applicable && s.Fingerprint == "") {
			return false
		}
	}

	return true
}

// KindFailure is a numerical failure confined to one kind.
type KindFailure struct {
	Kind matrix.Kind
	Err  error
}

func (f KindFailure) Error() string { return fmt.Sprintf("%s: %v", f.Kind, f.Err) }

func (f KindFailure) Unwrap() error { return f.Err }

// BuildRecord computes the full record of g. A kind whose computation fails
// is left out of Spectra and reported in the failure list; the record is
// still produced. The error is reserved for failures that leave no record
// (nil graph, metadata, tags, cancellation).
func BuildRecord(ctx context.Context, id string, g *core.Graph, opts ...spectrum.Option) (Record, []KindFailure, error) {
	if g == nil {
		return Record{}, nil, fmt.Errorf("%s: %s: %w", opBuildRecord, id, ErrGraphNil)
	}

	rec := Record{ID: id, N: g.N(), M: g.M(), Spectra: make(map[matrix.Kind]SpectrumRecord, len(matrix.Kinds()))}
	results, failed := spectrum.ComputeAll(g, opts...)
	var failures []KindFailure
	for _, k := range matrix.Kinds() {
		if err, ok := failed[k]; ok {
			failures = append(failures, KindFailure{Kind: k, Err: err})
			continue
		}
		rec.Spectra[k] = spectrumRecord(results[k])
	}

	md, err := metadata.Compute(g)
	if err != nil {
		return Record{}, failures, fmt.Errorf("%s: %s: %w", opBuildRecord, id, err)
	}
	rec.Metadata = md

	if rec.Tags, err = tags.Compute(ctx, g); err != nil {
		return Record{}, failures, fmt.Errorf("%s: %s: %w", opBuildRecord, id, err)
	}

	return rec, failures, nil
}

func spectrumRecord(r spectrum.Result) SpectrumRecord {
	if !r.Applicable {
		return SpectrumRecord{}
	}
	sr := SpectrumRecord{Applicable: true, Fingerprint: r.Fingerprint, Re: make([]float64, len(r.Canonical))}
	if r.Spectrum.Complex {
		sr.Im = make([]float64, len(r.Canonical))
	}
	for i, v := range r.Canonical {
		sr.Re[i] = v.Re
		if sr.Im != nil {
			sr.Im[i] = v.Im
		}
	}

	return sr
}

// Entry returns the record as the cospectral indexer sees it.
func (r Record) Entry() cospectral.Entry {
	e := cospectral.Entry{ID: r.ID, N: r.N, Fingerprints: make(map[matrix.Kind]spectrum.Fingerprint, len(r.Spectra))}
	for k, s := range r.Spectra {
		if s.Applicable {
			e.Fingerprints[k] = s.Fingerprint
		}
	}

	return e
}
