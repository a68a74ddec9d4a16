// SPDX-License-Identifier: MIT

package spectrum

import (
	"fmt"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/matrix"
)

// Result is everything the engine produces for one (graph, kind).
// When Applicable is false every other field except Kind is zero.
type Result struct {
	Kind        matrix.Kind
	Applicable  bool
	Spectrum    Spectrum
	Canonical   []Value
	Text        string
	Fingerprint Fingerprint
}

// Compute builds the representation of g, solves for its eigenvalues and
// fingerprints the result. A representation that is not applicable is not an
// error: the Result comes back with Applicable=false.
func Compute(g *core.Graph, kind matrix.Kind, opts ...Option) (Result, error) {
	rep, err := matrix.Build(g, kind)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", opCompute, err)
	}
	if !rep.Applicable {
		return Result{Kind: kind}, nil
	}

	s, err := Eigenvalues(rep)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", opCompute, err)
	}

	o := gatherOptions(opts)
	canon := Canonical(s, o.Precision)
	text := Serialize(canon, s.Complex, o.Precision)

	return Result{
		Kind:        kind,
		Applicable:  true,
		Spectrum:    s,
		Canonical:   canon,
		Text:        text,
		Fingerprint: hashText(kind, text, o.HashLength),
	}, nil
}

// ComputeAll runs Compute for every kind. A failure in one kind never hides
// the others: successful results are returned alongside a per-kind error map.
func ComputeAll(g *core.Graph, opts ...Option) (map[matrix.Kind]Result, map[matrix.Kind]error) {
	results := make(map[matrix.Kind]Result, len(matrix.Kinds()))
	var failures map[matrix.Kind]error
	for _, k := range matrix.Kinds() {
		r, err := Compute(g, k, opts...)
		if err != nil {
			if failures == nil {
				failures = make(map[matrix.Kind]error)
			}
			failures[k] = err
			continue
		}
		results[k] = r
	}

	return results, failures
}
