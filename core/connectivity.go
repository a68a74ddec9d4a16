// SPDX-License-Identifier: MIT

package core

import "sort"

// Components returns the connected components of g. Each component is sorted
// ascending and the components are ordered by their smallest vertex, so the
// result is fully deterministic.
//
// Complexity: O(n + m) time, O(n) extra space.
func (g *Graph) Components() [][]int {
	comp := make([]int, g.n)
	for i := range comp {
		comp[i] = -1
	}

	var (
		out   [][]int
		stack []int
	)
	for s := 0; s < g.n; s++ {
		if comp[s] >= 0 {
			continue
		}
		id := len(out)
		members := []int{}
		comp[s] = id
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, v)
			for _, w := range g.neighbors(v) {
				if comp[w] < 0 {
					comp[w] = id
					stack = append(stack, w)
				}
			}
		}
		sort.Ints(members)
		out = append(out, members)
	}

	return out
}

// IsConnected reports whether g has exactly one component.
// The single-vertex graph is connected.
func (g *Graph) IsConnected() bool {
	seen := make([]bool, g.n)
	stack := []int{0}
	seen[0] = true
	count := 1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, w := range g.neighbors(v) {
			if !seen[w] {
				seen[w] = true
				count++
				stack = append(stack, w)
			}
		}
	}

	return count == g.n
}
