package flow_test

import (
	"fmt"

	"github.com/katalvlaran/mfpc/flow"
	"github.com/katalvlaran/mfpc/network"
)

// ExampleDinic computes the classical max flow of a diamond network and
// reports which arcs are used.
func ExampleDinic() {
	inst, _ := network.ParseString("4 5 0\n0\n3\n0 1 3 1\n0 2 2 2\n1 3 2 3\n2 3 3 4\n1 2 1 5\n")
	res, err := flow.Dinic(inst)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("value:", res.Value)
	fmt.Println("active:", res.Active())
	// Output:
	// value: 5
	// active: [1 2 3 4 5]
}

// ExampleEdmondsKarp_excluded forbids one arc and recomputes.
func ExampleEdmondsKarp_excluded() {
	inst, _ := network.ParseString("4 5 0\n0\n3\n0 1 3 1\n0 2 2 2\n1 3 2 3\n2 3 3 4\n1 2 1 5\n")
	res, _ := flow.EdmondsKarp(inst, flow.WithExcluded(5))
	fmt.Println("value:", res.Value)
	// Output:
	// value: 4
}
