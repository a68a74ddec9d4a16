// SPDX-License-Identifier: MIT

package spectrum

import (
	"math"
	"math/cmplx"
	"sort"
	"strconv"
	"strings"
)

// emptySerialization is the canonical text of a spectrum with no eigenvalues.
const emptySerialization = "empty"

// Value is one canonical eigenvalue: both parts already rounded.
type Value struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// Complex128 converts v back to a complex number.
func (v Value) Complex128() complex128 { return complex(v.Re, v.Im) }

// round rounds x to p decimals and maps −0 to +0.
func round(x float64, p int) float64 {
	scale := math.Pow10(p)
	r := math.Round(x*scale) / scale
	if r == 0 {
		return 0
	}

	return r
}

// Canonical rounds every eigenvalue of s to precision decimals and sorts the
// rounded values by (Re, Im) ascending. Rounding happens before sorting so
// that values differing only below the precision land in the same position.
//
// Complex spectra come from a general eigensolver, which splits a defective
// root into a ring of nearby values whose spread depends on vertex order.
// Such rings are collapsed to their mean first (see ClusterTolerance).
func Canonical(s Spectrum, precision int) []Value {
	vals := s.Values
	if s.Complex {
		vals = clusterMeans(vals, ClusterTolerance)
	}
	out := make([]Value, len(vals))
	for i, v := range vals {
		out[i] = Value{Re: round(real(v), precision), Im: round(imag(v), precision)}
	}
	sortValues(out)

	return out
}

// clusterMeans links values within tol of each other (single linkage) and
// replaces every member of a cluster by the cluster mean. The mean of a
// perturbed multiple root is accurate to machine precision even when the
// individual roots are not.
func clusterMeans(vals []complex128, tol float64) []complex128 {
	n := len(vals)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cmplx.Abs(vals[i]-vals[j]) <= tol {
				if ri, rj := find(i), find(j); ri != rj {
					parent[rj] = ri
				}
			}
		}
	}

	sum := make([]complex128, n)
	count := make([]int, n)
	for i, v := range vals {
		r := find(i)
		sum[r] += v
		count[r]++
	}
	out := make([]complex128, n)
	for i := range vals {
		r := find(i)
		out[i] = sum[r] / complex(float64(count[r]), 0)
	}

	return out
}

func sortValues(vs []Value) {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].Re != vs[j].Re {
			return vs[i].Re < vs[j].Re
		}
		return vs[i].Im < vs[j].Im
	})
}

// Serialize renders canonical values as ASCII text. Real spectra are a comma
// list of fixed-point numbers; complex spectra are a comma list of "(re,im)".
// The empty list serialises to "empty".
func Serialize(vals []Value, complexValued bool, precision int) string {
	if len(vals) == 0 {
		return emptySerialization
	}

	var b strings.Builder
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		if complexValued {
			b.WriteByte('(')
			b.WriteString(strconv.FormatFloat(v.Re, 'f', precision, 64))
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(v.Im, 'f', precision, 64))
			b.WriteByte(')')
			continue
		}
		b.WriteString(strconv.FormatFloat(v.Re, 'f', precision, 64))
	}

	return b.String()
}

// Equal reports whether a and b are the same multiset of eigenvalues up to an
// absolute tolerance tol per value. Each value of a is paired with its nearest
// unpaired value of b.
func Equal(a, b Spectrum, tol float64) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}

	used := make([]bool, len(b.Values))
	for _, x := range a.Values {
		best, bestDist := -1, math.Inf(1)
		for j, y := range b.Values {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(x - y); d < bestDist {
				best, bestDist = j, d
			}
		}
		if best < 0 || bestDist > tol {
			return false
		}
		used[best] = true
	}

	return true
}
