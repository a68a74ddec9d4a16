// SPDX-License-Identifier: MIT

package switching

// Theorem is an immutable sufficient-condition predicate. Applies selects the
// configuration family the theorem speaks about; Holds reads only the exact
// diagnostics of that configuration.
type Theorem struct {
	Name    string
	Applies func(Configuration) bool
	Holds   func(Diagnostics) bool
}

// Theorem names, persisted on mechanism records.
const (
	MechanismA           = "mechanism-a"
	SufficientC3C6       = "sufficient-c3c6"
	C1C2Weighted         = "c1c2-weighted"
	C1C2                 = "c1c2"
	BipartiteSwapTheorem = "bipartite-swap"
)

// DefaultTheorems returns the registry, most specific first. The slice is
// fresh on every call; extending it never touches the entries it holds.
func DefaultTheorems() []Theorem {
	return []Theorem{
		{Name: MechanismA, Applies: isType(TwoEdgeSwitch), Holds: onSwitch(mechanismA)},
		{Name: SufficientC3C6, Applies: isType(TwoEdgeSwitch), Holds: onSwitch(sufficientC3C6)},
		{Name: C1C2Weighted, Applies: isType(TwoEdgeSwitch), Holds: onSwitch(c1c2Weighted)},
		{Name: C1C2, Applies: isType(TwoEdgeSwitch), Holds: onSwitch(c1c2)},
		{Name: BipartiteSwapTheorem, Applies: isType(BipartiteSwapType), Holds: onSwap(bipartiteSwap)},
	}
}

func isType(t MechanismType) func(Configuration) bool {
	return func(c Configuration) bool { return c.Type() == t }
}

func onSwitch(fn func(*SwitchDiagnostics) bool) func(Diagnostics) bool {
	return func(d Diagnostics) bool { return d.Switch != nil && fn(d.Switch) }
}

func onSwap(fn func(*SwapDiagnostics) bool) func(Diagnostics) bool {
	return func(d Diagnostics) bool { return d.Swap != nil && fn(d.Swap) }
}

// c1: deg(v1) = deg(v2) and deg(w1) = deg(w2).
func c1(d *SwitchDiagnostics) bool {
	return d.Degrees[0] == d.Degrees[1] && d.Degrees[2] == d.Degrees[3]
}

// c2: both rows of the cross matrix agree, column by column.
func c2(d *SwitchDiagnostics) bool {
	return d.Cross[0] == d.Cross[1]
}

// c1c2 is the naive degree + cross-intersection condition. It is known to
// admit counterexamples; certification catches them.
func c1c2(d *SwitchDiagnostics) bool { return c1(d) && c2(d) }

// c1c2Weighted replaces c2 by equality of the weighted cross sums per column.
func c1c2Weighted(d *SwitchDiagnostics) bool {
	w := d.WeightedCross
	return c1(d) && w[0][0].Cmp(w[1][0]) == 0 && w[0][1].Cmp(w[1][1]) == 0
}

// sufficientC3C6: c1, c2, all four weighted sums equal, triangle balance
// tri(v1,w1) = tri(v2,w2), the v's and the w's share an external neighbour,
// and not the (2,2,2) pattern |ext(v1)∩ext(w1)| = VV = WW = 2.
func sufficientC3C6(d *SwitchDiagnostics) bool {
	if !c1c2(d) {
		return false
	}
	w := d.WeightedCross
	if w[0][0].Cmp(w[0][1]) != 0 || w[0][0].Cmp(w[1][0]) != 0 || w[0][0].Cmp(w[1][1]) != 0 {
		return false
	}
	if d.Triangles[0] != d.Triangles[1] || d.VV == 0 || d.WW == 0 {
		return false
	}

	return !(d.Cross[0][0] == 2 && d.VV == 2 && d.WW == 2)
}

// mechanismA: c1, both parallel edges, two shared w-neighbours, a constant
// cross matrix, two unique neighbours per w-hub, all of one degree.
func mechanismA(d *SwitchDiagnostics) bool {
	if !c1(d) || !d.ParallelV || !d.ParallelW || len(d.Shared) != 2 {
		return false
	}
	x := d.Cross[0][0]
	if d.Cross[0][1] != x || d.Cross[1][0] != x || d.Cross[1][1] != x {
		return false
	}
	if len(d.Unique1) != 2 || len(d.Unique2) != 2 {
		return false
	}
	all := append(append([]int(nil), d.UniqueDegrees1...), d.UniqueDegrees2...)
	for _, deg := range all {
		if deg != all[0] {
			return false
		}
	}

	return true
}

// bipartiteSwap: C1′ equal hub degrees and one common leaf degree, C2′ the
// aggregate cross sums of L1 and L2 agree against each hub, C3′ |L1| = |L2|.
func bipartiteSwap(d *SwapDiagnostics) bool {
	if d.HubDegrees[0] != d.HubDegrees[1] || d.LeafCount[0] != d.LeafCount[1] {
		return false
	}
	ref := -1
	for _, side := range d.LeafDegrees {
		for _, deg := range side {
			if ref < 0 {
				ref = deg
			}
			if deg != ref {
				return false
			}
		}
	}

	return d.CrossSums[0] == d.CrossSums[1]
}

// holding returns the names of the theorems in ts that apply to cfg and hold
// on d, in registry order.
func holding(ts []Theorem, cfg Configuration, d Diagnostics) []string {
	var out []string
	for _, t := range ts {
		if t.Applies(cfg) && t.Holds(d) {
			out = append(out, t.Name)
		}
	}

	return out
}
