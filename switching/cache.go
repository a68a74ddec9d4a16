// SPDX-License-Identifier: MIT

package switching

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/graph6"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/spectrum"
)

// DefaultCacheSize is the number of trace sequences a TraceCache keeps.
const DefaultCacheSize = 4096

// TraceCache memoises tr(T^k), k = 1..K, per graph. Keys are the graph6 code
// plus K, so graphs met again under another candidate (the mate of a pair is
// compared against every matching switch) are multiplied out once. Safe for
// concurrent use.
type TraceCache struct {
	c *lru.Cache[string, []float64]
}

// NewTraceCache returns a cache holding up to size sequences.
func NewTraceCache(size int) (*TraceCache, error) {
	c, err := lru.New[string, []float64](size)
	if err != nil {
		return nil, fmt.Errorf("switching: trace cache: %w", err)
	}

	return &TraceCache{c: c}, nil
}

// Len returns the number of cached sequences.
func (tc *TraceCache) Len() int { return tc.c.Len() }

// Traces returns tr(T_g^k) for k = 1..kmax, computing on a miss. A nil
// receiver computes without caching.
func (tc *TraceCache) Traces(g *core.Graph, kmax int) ([]float64, error) {
	var key string
	if tc != nil {
		key = fmt.Sprintf("%s/%d", graph6.Encode(g), kmax)
		if tr, ok := tc.c.Get(key); ok {
			return tr, nil
		}
	}

	rep, err := matrix.Build(g, matrix.NBLTransition)
	if err != nil {
		return nil, err
	}
	tr, err := spectrum.TracePowers(rep.M, kmax)
	if err != nil {
		return nil, err
	}
	if tc != nil {
		tc.c.Add(key, tr)
	}

	return tr, nil
}
