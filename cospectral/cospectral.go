// SPDX-License-Identifier: MIT

package cospectral

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/spectrum"
)

var (
	// ErrMixedOrder is returned when a batch holds entries of different n.
	ErrMixedOrder = errors.New("cospectral: batch mixes vertex counts")

	// ErrDuplicateID is returned when an ID occurs twice in one batch.
	ErrDuplicateID = errors.New("cospectral: duplicate graph id")

	// ErrSelfPair is returned by Verify for a pair with First == Second.
	ErrSelfPair = errors.New("cospectral: pair joins a graph to itself")
)

const (
	opIndex    = "cospectral.Index"
	opFamilies = "cospectral.Families"
	opVerify   = "cospectral.Verify"
)

// Entry is one graph's fingerprints as the indexer sees them. A kind that is
// missing from Fingerprints (not applicable, or its computation failed) takes
// no part in that kind's partition.
type Entry struct {
	ID           string
	N            int
	Fingerprints map[matrix.Kind]spectrum.Fingerprint
}

// Pair is an unordered cospectral pair stored with First < Second.
type Pair struct {
	First  string      `json:"first"`
	Second string      `json:"second"`
	Kind   matrix.Kind `json:"kind"`
}

// NewPair orders a and b.
func NewPair(a, b string, kind matrix.Kind) Pair {
	if b < a {
		a, b = b, a
	}

	return Pair{First: a, Second: b, Kind: kind}
}

func (p Pair) String() string {
	return fmt.Sprintf("%s~%s[%s]", p.First, p.Second, p.Kind)
}

// Family is one equivalence class of size ≥ 2 with its members sorted.
type Family struct {
	Kind        matrix.Kind
	N           int
	Fingerprint spectrum.Fingerprint
	Members     []string
}

// Pairs expands the family into all C(k,2) pairs.
func (f Family) Pairs() []Pair {
	out := make([]Pair, 0, len(f.Members)*(len(f.Members)-1)/2)
	for i := range f.Members {
		for j := i + 1; j < len(f.Members); j++ {
			out = append(out, Pair{First: f.Members[i], Second: f.Members[j], Kind: f.Kind})
		}
	}

	return out
}

// Families partitions a batch of one vertex count by fingerprint per kind
// and keeps the classes with at least two members. Output is sorted by kind
// storage order, then by first member.
func Families(entries []Entry) ([]Family, error) {
	if err := checkBatch(entries); err != nil {
		return nil, fmt.Errorf("%s: %w", opFamilies, err)
	}

	var out []Family
	for _, kind := range matrix.Kinds() {
		classes := map[spectrum.Fingerprint][]string{}
		for _, e := range entries {
			fp, ok := e.Fingerprints[kind]
			if !ok || fp == "" {
				continue
			}
			classes[fp] = append(classes[fp], e.ID)
		}

		var fams []Family
		for fp, ids := range classes {
			if len(ids) < 2 {
				continue
			}
			sort.Strings(ids)
			fams = append(fams, Family{Kind: kind, N: entries[0].N, Fingerprint: fp, Members: ids})
		}
		sort.Slice(fams, func(i, j int) bool { return fams[i].Members[0] < fams[j].Members[0] })
		out = append(out, fams...)
	}

	return out, nil
}

// Index returns every cospectral pair in the batch, sorted by (kind, first,
// second). The same batch always yields the same slice.
func Index(entries []Entry) ([]Pair, error) {
	fams, err := Families(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opIndex, err)
	}

	var out []Pair
	for _, f := range fams {
		out = append(out, f.Pairs()...)
	}
	SortPairs(out)

	return out, nil
}

// SortPairs orders pairs by (kind, first, second).
func SortPairs(ps []Pair) {
	sort.Slice(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.First != b.First {
			return a.First < b.First
		}
		return a.Second < b.Second
	})
}

func checkBatch(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.N != entries[0].N {
			return fmt.Errorf("%w: %d and %d", ErrMixedOrder, entries[0].N, e.N)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = struct{}{}
	}

	return nil
}

// Lookup resolves a graph ID to its graph.
type Lookup func(id string) (*core.Graph, error)

// Verify recomputes both fingerprints of the pair's kind and reports whether
// they still agree. It checks symmetry too: the two graphs are fingerprinted
// independently, so the order of First and Second is irrelevant.
func Verify(p Pair, lookup Lookup, opts ...spectrum.Option) (bool, error) {
	if p.First == p.Second {
		return false, fmt.Errorf("%s: %s: %w", opVerify, p, ErrSelfPair)
	}

	fps := make([]spectrum.Fingerprint, 2)
	for i, id := range []string{p.First, p.Second} {
		g, err := lookup(id)
		if err != nil {
			return false, fmt.Errorf("%s: %s: %w", opVerify, id, err)
		}
		r, err := spectrum.Compute(g, p.Kind, opts...)
		if err != nil {
			return false, fmt.Errorf("%s: %s: %w", opVerify, id, err)
		}
		if !r.Applicable {
			return false, nil
		}
		fps[i] = r.Fingerprint
	}

	return fps[0] == fps[1], nil
}
