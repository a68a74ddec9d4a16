// SPDX-License-Identifier: MIT

package tags

import (
	"github.com/leotrs/smol/builder"
	"github.com/leotrs/smol/iso"
)

// isPrism compares cubic graphs on 2k vertices with C_k □ K_2.
func isPrism(f *facts) (bool, error) {
	if f.n < 6 || f.n%2 != 0 || f.minDeg != 3 || f.maxDeg != 3 || !f.connected {
		return false, nil
	}
	ref, err := builder.Prism(f.n / 2)
	if err != nil {
		return false, err
	}

	return iso.Isomorphic(f.ctx, f.g, ref)
}

// isLadder compares graphs with 3k-2 edges and exactly four corners of
// degree 2 with P_k □ K_2.
func isLadder(f *facts) (bool, error) {
	if f.n < 4 || f.n%2 != 0 || !f.connected {
		return false, nil
	}
	half := f.n / 2
	if f.m != 3*half-2 || f.minDeg != 2 || f.maxDeg != 3 {
		return false, nil
	}
	corners := 0
	for _, d := range f.degs {
		if d == 2 {
			corners++
		}
	}
	if corners != 4 {
		return false, nil
	}
	ref, err := builder.Ladder(half)
	if err != nil {
		return false, err
	}

	return iso.Isomorphic(f.ctx, f.g, ref)
}
