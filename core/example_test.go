package core_test

import (
	"fmt"

	"github.com/leotrs/smol/core"
)

// ExampleGraph_Switch performs the 2-edge switch 0-1,2-3 -> 0-3,2-1 on a
// 4-cycle and shows that every degree is preserved.
func ExampleGraph_Switch() {
	g := core.MustNew(4, []core.Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}})

	h, err := g.Switch(
		[]core.Edge{{0, 1}, {2, 3}},
		[]core.Edge{{0, 2}, {1, 3}},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(h)
	fmt.Println(g.Degrees(), h.Degrees())
	// Output:
	// n=4 [0-2 0-3 1-2 1-3]
	// [2 2 2 2] [2 2 2 2]
}
