// SPDX-License-Identifier: MIT

package metadata

import (
	"sort"

	"github.com/leotrs/smol/core"
)

// GreedyColouring colours vertices largest-degree first (ties by index),
// each taking the smallest colour unused by its neighbours, and returns the
// number of colours. This is an upper bound on the chromatic number; an
// edgeless graph needs 1.
func GreedyColouring(g *core.Graph) int {
	n := g.N()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.Degree(order[i]) > g.Degree(order[j])
	})

	colour := make([]int, n)
	for i := range colour {
		colour[i] = -1
	}
	used := 0
	for _, v := range order {
		taken := make([]bool, used+1)
		for _, w := range g.Neighbors(v) {
			if c := colour[w]; c >= 0 {
				taken[c] = true
			}
		}
		c := 0
		for taken[c] {
			c++
		}
		colour[v] = c
		if c+1 > used {
			used = c + 1
		}
	}

	return used
}

// Degeneracy returns the largest minimum degree seen while repeatedly
// deleting a minimum-degree vertex (smallest-last order).
func Degeneracy(g *core.Graph) int {
	n := g.N()
	deg := g.Degrees()
	removed := make([]bool, n)

	k := 0
	for step := 0; step < n; step++ {
		v := -1
		for u := 0; u < n; u++ {
			if !removed[u] && (v < 0 || deg[u] < deg[v]) {
				v = u
			}
		}
		if deg[v] > k {
			k = deg[v]
		}
		removed[v] = true
		for _, w := range g.Neighbors(v) {
			if !removed[w] {
				deg[w]--
			}
		}
	}

	return k
}
